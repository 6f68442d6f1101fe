package model

// RecipeDefinition is the top-level document for one recipe, loaded from a
// recipe.yaml in the recipe directory.
type RecipeDefinition struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Kind       string     `yaml:"kind" json:"kind"`
	Metadata   Metadata   `yaml:"metadata" json:"metadata"`
	Spec       RecipeSpec `yaml:"spec" json:"spec"`
}

// Metadata holds standard object metadata.
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version" json:"version"`
}

// RecipeSpec declares what a recipe consumes and produces and how to run it.
type RecipeSpec struct {
	Tags         []string               `yaml:"tags" json:"tags"`                               // full tag vocabulary
	DefaultTag   string                 `yaml:"defaultTag" json:"defaultTag"`                   // tag for untagged input frames
	Requirements []RequirementGroup     `yaml:"requirements" json:"requirements"`               // declared input constraints
	Products     []string               `yaml:"products,omitempty" json:"products,omitempty"`   // tags the recipe may produce
	Exec         ExecSpec               `yaml:"exec" json:"exec"`
	Parameters   map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty"` // JSON schema for run parameters
}

// RequirementGroup is one block of frame requirements declared together.
// The same tag may appear in several groups with different count windows.
type RequirementGroup struct {
	Name   string             `yaml:"name,omitempty" json:"name,omitempty"`
	Frames []FrameRequirement `yaml:"frames" json:"frames"`
}

// FrameRequirement constrains how many frames a tag accepts. A count of
// zero means unconstrained.
type FrameRequirement struct {
	Tag string `yaml:"tag" json:"tag"`
	Min int    `yaml:"min,omitempty" json:"min,omitempty"`
	Max int    `yaml:"max,omitempty" json:"max,omitempty"`
}

// ExecSpec tells the executor how to invoke the recipe. The command runs
// through the shell with FRAMERUN_SOF and FRAMERUN_PRODUCTS in its
// environment.
type ExecSpec struct {
	Command string `yaml:"command" json:"command"`
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}
