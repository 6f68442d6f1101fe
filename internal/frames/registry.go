package frames

import (
	"fmt"
	"strings"
)

// Registry tracks the frame configs a recipe declares and the frames the
// caller has assigned to each tag. It is not safe for concurrent use;
// callers sharing a registry across goroutines must serialize access.
type Registry struct {
	recipe Recipe
	values map[string]interface{} // lowercased tag -> assigned frame(s)
}

// NewRegistry creates an empty registry for a recipe.
func NewRegistry(r Recipe) *Registry {
	return &Registry{
		recipe: r,
		values: make(map[string]interface{}),
	}
}

// Recipe returns the owning recipe.
func (reg *Registry) Recipe() Recipe {
	return reg.recipe
}

// Configs rescans the recipe's requirement groups and returns one merged
// FrameConfig per distinct tag, in declaration order. Duplicate
// declarations widen the existing config, so repeated calls yield the same
// merged specs; callers wanting a snapshot keep the returned slice.
func (reg *Registry) Configs() []*FrameConfig {
	var order []string
	merged := make(map[string]*FrameConfig)
	for _, group := range reg.recipe.FrameRequirements() {
		for _, req := range group {
			key := strings.ToLower(req.Tag)
			fc, ok := merged[key]
			if !ok {
				fc = NewFrameConfig(req.Tag, req.Min, req.Max)
				merged[key] = fc
				order = append(order, key)
			}
			fc.Widen(BoundOf(req.Min), BoundOf(req.Max))
		}
	}

	configs := make([]*FrameConfig, 0, len(order))
	for _, key := range order {
		configs = append(configs, merged[key])
	}
	return configs
}

// Resolve maps name to the canonical tag string, first against the merged
// configs, then case-insensitively against the recipe's full tag
// vocabulary. It returns "" when the name is unknown.
func (reg *Registry) Resolve(name string) string {
	if tag := reg.resolveConfig(name); tag != "" {
		return tag
	}
	key := strings.ToLower(name)
	for _, tag := range reg.recipe.Tags() {
		if strings.ToLower(tag) == key {
			return tag
		}
	}
	return ""
}

// Set assigns a frame (a path, an Image, or a slice of either) to a tag.
// Only tags with a declared requirement can hold stored values; anything
// else is rejected so misspelled assignments fail loudly instead of
// disappearing at assembly time. Vocabulary tags without a requirement are
// supplied per call as keyword frames instead.
func (reg *Registry) Set(tag string, value interface{}) error {
	resolved := reg.resolveConfig(tag)
	if resolved == "" {
		return &UnknownTagError{Tag: tag, Recipe: reg.recipe.Name()}
	}
	reg.values[strings.ToLower(resolved)] = value
	return nil
}

// resolveConfig maps name to the canonical tag of a declared requirement,
// or "".
func (reg *Registry) resolveConfig(name string) string {
	key := strings.ToLower(name)
	for _, fc := range reg.Configs() {
		if strings.ToLower(fc.Tag) == key {
			return fc.Tag
		}
	}
	return ""
}

// Get returns the frames assigned to tag, or nil.
func (reg *Registry) Get(tag string) interface{} {
	return reg.values[strings.ToLower(tag)]
}

// Unset removes any assignment for tag.
func (reg *Registry) Unset(tag string) {
	delete(reg.values, strings.ToLower(tag))
}

// Documentation renders one line per declared tag with its count
// constraint.
func (reg *Registry) Documentation() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames for recipe %s.\n\nTags:\n", reg.recipe.Name())
	for _, fc := range reg.Configs() {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToLower(fc.Tag), fc.ConstraintText())
	}
	return b.String()
}
