package frames

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OutputFrame is one (tag, path) pair reported by recipe execution.
type OutputFrame struct {
	Tag  string
	Path string
}

// ExecStatus is the error-signal half of a raw execution result.
type ExecStatus struct {
	Failed   bool
	Message  string
	Location string
}

// RawResult is what recipe execution hands back: the frames it produced
// and its error signal.
type RawResult struct {
	Frames []OutputFrame
	Status ExecStatus
}

// ExecutionError reports a failed recipe execution.
type ExecutionError struct {
	Message  string
	Location string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s in %s", e.Message, e.Location)
}

// DecodeOptions control result decoding.
type DecodeOptions struct {
	// Codec opens product files. Required.
	Codec Codec
	// Delete removes each product file once it has been opened.
	Delete bool
	// Progress receives per-frame report lines. Defaults to io.Discard.
	Progress io.Writer
}

// Result is the decoded output of one recipe execution: every product
// opened as an image, grouped by lowercased tag.
type Result struct {
	// Dir is the working directory at decode time.
	Dir string

	tags   []string
	values map[string]interface{} // lowercased tag -> Image or []Image
}

// DecodeResult validates and decodes a raw execution result. Produced
// frames are reported to opts.Progress first; a set error signal then
// fails the decode atomically with an *ExecutionError before any product
// is opened. A tag reported once holds a single image; a tag reported
// again is promoted to an ordered image list.
func DecodeResult(raw RawResult, opts DecodeOptions) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	if len(raw.Frames) > 0 {
		fmt.Fprintln(progress, "Result frames:")
		for _, of := range raw.Frames {
			fmt.Fprintf(progress, "  %s = %s\n", of.Tag, of.Path)
		}
	}
	if raw.Status.Failed {
		return nil, &ExecutionError{
			Message:  raw.Status.Message,
			Location: raw.Status.Location,
		}
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	res := &Result{
		Dir:    dir,
		values: make(map[string]interface{}),
	}

	for _, of := range raw.Frames {
		path, err := filepath.Abs(of.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product path %s: %w", of.Path, err)
		}
		img, err := opts.Codec.OpenImage(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open product %s: %w", path, err)
		}
		if opts.Delete {
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to remove product %s: %w", path, err)
			}
		}

		tag := strings.ToLower(of.Tag)
		switch existing := res.values[tag].(type) {
		case nil:
			res.values[tag] = img
			res.tags = append(res.tags, tag)
		case Image:
			res.values[tag] = []Image{existing, img}
		case []Image:
			res.values[tag] = append(existing, img)
		}
	}
	return res, nil
}

// Tags lists every distinct product tag, lowercased, in first-seen order.
func (r *Result) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// Has reports whether tag produced any output.
func (r *Result) Has(tag string) bool {
	_, ok := r.values[strings.ToLower(tag)]
	return ok
}

// Value returns the raw grouping for tag: an Image when the tag was
// reported exactly once, an ordered []Image when it recurred, nil when
// absent.
func (r *Result) Value(tag string) interface{} {
	return r.values[strings.ToLower(tag)]
}

// Image returns the single image for tag. When the tag recurred it returns
// the first reported image.
func (r *Result) Image(tag string) (Image, bool) {
	switch v := r.values[strings.ToLower(tag)].(type) {
	case Image:
		return v, true
	case []Image:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

// Images returns every image for tag in report order, regardless of how
// many there were.
func (r *Result) Images(tag string) []Image {
	switch v := r.values[strings.ToLower(tag)].(type) {
	case Image:
		return []Image{v}
	case []Image:
		return v
	}
	return nil
}
