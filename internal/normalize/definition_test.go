package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sourceplane/framerun/internal/model"
)

func validDefinition() *model.RecipeDefinition {
	return &model.RecipeDefinition{
		APIVersion: "framerun.io/v1",
		Kind:       "Recipe",
		Metadata:   model.Metadata{Name: "cal_bias"},
		Spec: model.RecipeSpec{
			Tags:       []string{"RAW", "BIAS"},
			DefaultTag: "RAW",
			Requirements: []model.RequirementGroup{
				{Frames: []model.FrameRequirement{{Tag: "BIAS", Min: 3, Max: 5}}},
			},
			Exec: model.ExecSpec{Command: "cal_bias $FRAMERUN_SOF"},
		},
	}
}

func TestNormalizeDefinition_ValidPassesThrough(t *testing.T) {
	def, err := NormalizeDefinition(validDefinition())
	require.NoError(t, err)
	require.Equal(t, "RAW", def.Spec.DefaultTag)
}

func TestNormalizeDefinition_DefaultTagFallsBackToFirst(t *testing.T) {
	in := validDefinition()
	in.Spec.DefaultTag = ""

	def, err := NormalizeDefinition(in)
	require.NoError(t, err)
	require.Equal(t, "RAW", def.Spec.DefaultTag)
}

func TestNormalizeDefinition_RejectsUnknownDefaultTag(t *testing.T) {
	in := validDefinition()
	in.Spec.DefaultTag = "WAVECAL"

	_, err := NormalizeDefinition(in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "default tag WAVECAL")
}

func TestNormalizeDefinition_RejectsUnknownRequirementTag(t *testing.T) {
	in := validDefinition()
	in.Spec.Requirements[0].Frames[0].Tag = "DARK"

	_, err := NormalizeDefinition(in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires tag DARK")
}

func TestNormalizeDefinition_RejectsDuplicateVocabularyTag(t *testing.T) {
	in := validDefinition()
	in.Spec.Tags = []string{"RAW", "raw"}

	_, err := NormalizeDefinition(in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "twice")
}

func TestNormalizeDefinition_RejectsMissingPieces(t *testing.T) {
	_, err := NormalizeDefinition(nil)
	require.Error(t, err)

	in := validDefinition()
	in.Metadata.Name = ""
	_, err = NormalizeDefinition(in)
	require.Error(t, err)

	in = validDefinition()
	in.Spec.Tags = nil
	_, err = NormalizeDefinition(in)
	require.Error(t, err)

	in = validDefinition()
	in.Spec.Exec.Command = ""
	_, err = NormalizeDefinition(in)
	require.Error(t, err)

	in = validDefinition()
	in.Spec.Requirements[0].Frames = nil
	_, err = NormalizeDefinition(in)
	require.Error(t, err)
}
