// Package executor runs recipe commands against materialized frame lists.
//
// Contract with the recipe command: the command runs through the shell in a
// fresh per-invocation work directory with FRAMERUN_SOF pointing at the
// set-of-frames file ("path tag" lines) and FRAMERUN_PRODUCTS at the path
// where it reports produced frames ("TAG path" lines). A non-zero exit sets
// the error signal on the raw result; frames reported before the failure
// are still returned.
package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sourceplane/framerun/internal/frames"
	"github.com/sourceplane/framerun/internal/recipe"
	"github.com/sourceplane/framerun/internal/render"
)

// Executor invokes recipe commands.
type Executor struct {
	WorkRoot string
	Stdout   io.Writer
	Stderr   io.Writer
	DryRun   bool
}

// New creates an executor rooted at workRoot.
func New(workRoot string, stdout, stderr io.Writer, dryRun bool) *Executor {
	return &Executor{
		WorkRoot: workRoot,
		Stdout:   stdout,
		Stderr:   stderr,
		DryRun:   dryRun,
	}
}

// Execute runs rcp's command against the materialized frame list and
// returns the raw result for decoding. In dry-run mode it prints the
// set-of-frames and the command and runs nothing. The frame list must
// already be path-materialized.
func (e *Executor) Execute(rcp *recipe.Recipe, frameList []frames.Frame, params map[string]interface{}) (frames.RawResult, error) {
	var raw frames.RawResult

	id := uuid.NewString()
	fmt.Fprintf(e.Stdout, "→ Recipe %s (%s)\n", rcp.Name(), id)

	if e.DryRun {
		fmt.Fprintf(e.Stdout, "  %s\n", rcp.Definition.Spec.Exec.Command)
		for _, line := range strings.Split(strings.TrimRight(render.SetOfFrames(frameList), "\n"), "\n") {
			if line != "" {
				fmt.Fprintf(e.Stdout, "  %s\n", line)
			}
		}
		return raw, nil
	}

	workDir := filepath.Join(e.WorkRoot, fmt.Sprintf("%s-%s", rcp.Name(), id))
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return raw, fmt.Errorf("failed to create work directory %s: %w", workDir, err)
	}

	sofPath := filepath.Join(workDir, "input.sof")
	if err := os.WriteFile(sofPath, []byte(render.SetOfFrames(frameList)), 0644); err != nil {
		return raw, fmt.Errorf("failed to write set-of-frames file: %w", err)
	}
	productsPath := filepath.Join(workDir, "products.txt")

	env := append(os.Environ(),
		"FRAMERUN_SOF="+sofPath,
		"FRAMERUN_PRODUCTS="+productsPath,
	)
	if len(params) > 0 {
		data, err := json.Marshal(params)
		if err != nil {
			return raw, fmt.Errorf("failed to marshal recipe parameters: %w", err)
		}
		paramsPath := filepath.Join(workDir, "params.json")
		if err := os.WriteFile(paramsPath, data, 0644); err != nil {
			return raw, fmt.Errorf("failed to write recipe parameters: %w", err)
		}
		env = append(env, "FRAMERUN_PARAMS="+paramsPath)
	}

	cmd := exec.Command("sh", "-c", rcp.Definition.Spec.Exec.Command)
	cmd.Dir = workDir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Env = env

	runErr := cmd.Run()

	products, parseErr := readProducts(productsPath, workDir)
	if parseErr != nil && runErr == nil {
		return raw, parseErr
	}
	raw.Frames = products
	if runErr != nil {
		raw.Status = frames.ExecStatus{
			Failed:   true,
			Message:  runErr.Error(),
			Location: fmt.Sprintf("recipe %s", rcp.Name()),
		}
	}
	return raw, nil
}

// readProducts parses the products listing: one "TAG path" line per frame,
// blank lines and #-comments skipped. Relative paths resolve against the
// work directory. A missing file means the recipe produced nothing.
func readProducts(path, workDir string) ([]frames.OutputFrame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var out []frames.OutputFrame
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed products line %d: %q", i+1, line)
		}
		framePath := fields[1]
		if !filepath.IsAbs(framePath) {
			framePath = filepath.Join(workDir, framePath)
		}
		out = append(out, frames.OutputFrame{Tag: fields[0], Path: framePath})
	}
	return out, nil
}
