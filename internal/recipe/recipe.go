// Package recipe is the loaded, runnable form of a recipe definition.
package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sourceplane/framerun/internal/frames"
	"github.com/sourceplane/framerun/internal/model"
)

// Recipe is a loaded, normalized recipe definition together with its
// compiled parameter schema. It implements frames.Recipe.
type Recipe struct {
	Definition  *model.RecipeDefinition
	ParamSchema *jsonschema.Schema // nil when the recipe declares no parameters
	Dir         string             // directory the definition was loaded from
}

func (r *Recipe) Name() string {
	return r.Definition.Metadata.Name
}

func (r *Recipe) Description() string {
	return r.Definition.Metadata.Description
}

func (r *Recipe) Tags() []string {
	return r.Definition.Spec.Tags
}

func (r *Recipe) DefaultTag() string {
	return r.Definition.Spec.DefaultTag
}

// FrameRequirements flattens the declared requirement groups into the form
// the frame registry scans.
func (r *Recipe) FrameRequirements() []frames.RequirementGroup {
	groups := make([]frames.RequirementGroup, 0, len(r.Definition.Spec.Requirements))
	for _, g := range r.Definition.Spec.Requirements {
		group := make(frames.RequirementGroup, 0, len(g.Frames))
		for _, f := range g.Frames {
			group = append(group, frames.Requirement{Tag: f.Tag, Min: f.Min, Max: f.Max})
		}
		groups = append(groups, group)
	}
	return groups
}

// ValidateParams checks run parameters against the recipe's parameter
// schema. Recipes without a schema accept anything.
func (r *Recipe) ValidateParams(params map[string]interface{}) error {
	if r.ParamSchema == nil {
		return nil
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	// Roundtrip through JSON so parameter values carry the scalar types
	// the schema validator expects.
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters for recipe %s: %w", r.Name(), err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to normalize parameters for recipe %s: %w", r.Name(), err)
	}

	if err := r.ParamSchema.Validate(doc); err != nil {
		return fmt.Errorf("recipe %s parameter validation failed: %w", r.Name(), err)
	}
	return nil
}
