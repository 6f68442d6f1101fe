package frames

// Requirement is one declared (tag, min, max) triple. Zero counts mean
// unconstrained.
type Requirement struct {
	Tag string
	Min int
	Max int
}

// RequirementGroup is one block of requirements a recipe declares together.
// The same tag may appear in several groups with different windows.
type RequirementGroup []Requirement

// Recipe is the slice of a recipe this package needs: its declared frame
// requirements, its full tag vocabulary and its default tag for untagged
// input.
type Recipe interface {
	Name() string
	Tags() []string
	DefaultTag() string
	FrameRequirements() []RequirementGroup
}

// Image is an in-memory multi-extension image container. Recipes consume
// files, so an Image supplied as a frame is written out before execution.
// An Image is always a single frame, never expanded like a slice.
type Image interface {
	WriteFile(path string) error
}

// Codec opens product files back into in-memory images.
type Codec interface {
	OpenImage(path string) (Image, error)
}
