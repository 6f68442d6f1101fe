package normalize

import (
	"fmt"
	"strings"

	"github.com/sourceplane/framerun/internal/model"
)

// NormalizeDefinition applies defaults and sanity checks to a parsed recipe
// definition: the default tag falls back to the first vocabulary tag, and
// every tag the definition mentions must belong to the vocabulary.
func NormalizeDefinition(def *model.RecipeDefinition) (*model.RecipeDefinition, error) {
	if def == nil {
		return nil, fmt.Errorf("recipe definition cannot be nil")
	}
	if def.Metadata.Name == "" {
		return nil, fmt.Errorf("recipe must have a name")
	}
	name := def.Metadata.Name

	if len(def.Spec.Tags) == 0 {
		return nil, fmt.Errorf("recipe %s must declare a tag vocabulary", name)
	}
	vocab := make(map[string]bool, len(def.Spec.Tags))
	for _, tag := range def.Spec.Tags {
		key := strings.ToLower(tag)
		if vocab[key] {
			return nil, fmt.Errorf("recipe %s declares tag %s twice", name, tag)
		}
		vocab[key] = true
	}

	if def.Spec.DefaultTag == "" {
		def.Spec.DefaultTag = def.Spec.Tags[0]
	}
	if !vocab[strings.ToLower(def.Spec.DefaultTag)] {
		return nil, fmt.Errorf("recipe %s default tag %s is not in its tag vocabulary",
			name, def.Spec.DefaultTag)
	}

	for gi := range def.Spec.Requirements {
		group := &def.Spec.Requirements[gi]
		if len(group.Frames) == 0 {
			return nil, fmt.Errorf("recipe %s requirement group %d declares no frames", name, gi)
		}
		for _, req := range group.Frames {
			if !vocab[strings.ToLower(req.Tag)] {
				return nil, fmt.Errorf("recipe %s requires tag %s which is not in its tag vocabulary",
					name, req.Tag)
			}
			if req.Min < 0 || req.Max < 0 {
				return nil, fmt.Errorf("recipe %s tag %s declares a negative frame count", name, req.Tag)
			}
		}
	}

	if def.Spec.Exec.Command == "" {
		return nil, fmt.Errorf("recipe %s must declare an exec command", name)
	}

	return def, nil
}
