package executor

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sourceplane/framerun/internal/frames"
	"github.com/sourceplane/framerun/internal/model"
	"github.com/sourceplane/framerun/internal/recipe"
)

func testRecipe(command string) *recipe.Recipe {
	return &recipe.Recipe{
		Definition: &model.RecipeDefinition{
			APIVersion: "framerun.io/v1",
			Kind:       "Recipe",
			Metadata:   model.Metadata{Name: "cal_test"},
			Spec: model.RecipeSpec{
				Tags:       []string{"RAW"},
				DefaultTag: "RAW",
				Exec:       model.ExecSpec{Command: command},
			},
		},
	}
}

func inputFrames() []frames.Frame {
	return []frames.Frame{{Tag: "RAW", Item: "/data/raw/science.fits"}}
}

func TestExecute_DryRunRunsNothing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	workRoot := t.TempDir()
	exe := New(workRoot, &stdout, &stderr, true)

	raw, err := exe.Execute(testRecipe("exit 7"), inputFrames(), nil)
	require.NoError(t, err, "a dry run must not execute the failing command")
	require.False(t, raw.Status.Failed)
	require.Empty(t, raw.Frames)
	require.Contains(t, stdout.String(), "exit 7", "dry run prints the command")
	require.Contains(t, stdout.String(), "/data/raw/science.fits RAW", "dry run prints the set-of-frames")

	entries, err := filepath.Glob(filepath.Join(workRoot, "*"))
	require.NoError(t, err)
	require.Empty(t, entries, "dry run must not create work directories")
}

func TestExecute_RunsCommandAndParsesProducts(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exe := New(t.TempDir(), &stdout, &stderr, false)

	cmd := `cp "$FRAMERUN_SOF" input-copy.sof
touch out.fits
printf 'MASTER_BIAS out.fits\n' > "$FRAMERUN_PRODUCTS"`
	raw, err := exe.Execute(testRecipe(cmd), inputFrames(), nil)
	require.NoError(t, err)
	require.False(t, raw.Status.Failed)
	require.Len(t, raw.Frames, 1)
	require.Equal(t, "MASTER_BIAS", raw.Frames[0].Tag)
	require.True(t, filepath.IsAbs(raw.Frames[0].Path), "relative product paths resolve against the work dir")
	require.Equal(t, "out.fits", filepath.Base(raw.Frames[0].Path))
}

func TestExecute_SetOfFramesReachesCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exe := New(t.TempDir(), &stdout, &stderr, false)

	raw, err := exe.Execute(testRecipe(`cat "$FRAMERUN_SOF"`), inputFrames(), nil)
	require.NoError(t, err)
	require.False(t, raw.Status.Failed)
	require.Contains(t, stdout.String(), "/data/raw/science.fits RAW")
}

func TestExecute_NonZeroExitSetsErrorSignal(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exe := New(t.TempDir(), &stdout, &stderr, false)

	cmd := `touch partial.fits
printf 'PARTIAL partial.fits\n' > "$FRAMERUN_PRODUCTS"
exit 3`
	raw, err := exe.Execute(testRecipe(cmd), inputFrames(), nil)
	require.NoError(t, err, "a failing recipe is reported through the error signal, not an exec error")
	require.True(t, raw.Status.Failed)
	require.Contains(t, raw.Status.Message, "exit status 3")
	require.Equal(t, "recipe cal_test", raw.Status.Location)
	require.Len(t, raw.Frames, 1, "frames reported before the failure are still returned")
}

func TestExecute_ParamsFileIsProvided(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exe := New(t.TempDir(), &stdout, &stderr, false)

	raw, err := exe.Execute(testRecipe(`cat "$FRAMERUN_PARAMS"`), inputFrames(),
		map[string]interface{}{"sigma": 3.5})
	require.NoError(t, err)
	require.False(t, raw.Status.Failed)
	require.Contains(t, stdout.String(), `"sigma":3.5`)
}

func TestExecute_MalformedProductsLineFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exe := New(t.TempDir(), &stdout, &stderr, false)

	raw, err := exe.Execute(testRecipe(`printf 'missing-path\n' > "$FRAMERUN_PRODUCTS"`), inputFrames(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed products line")
	require.Empty(t, raw.Frames)
}

func TestExecute_CommentsAndBlanksSkipped(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exe := New(t.TempDir(), &stdout, &stderr, false)

	cmd := `touch out.fits
{
  printf '# products written by cal_test\n'
  printf '\n'
  printf 'OUT out.fits\n'
} > "$FRAMERUN_PRODUCTS"`
	raw, err := exe.Execute(testRecipe(cmd), inputFrames(), nil)
	require.NoError(t, err)
	require.Len(t, raw.Frames, 1)
	require.Equal(t, "OUT", raw.Frames[0].Tag)
}
