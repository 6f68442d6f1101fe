// Package frames maps the named frame tags a recipe declares to the
// concrete frames a caller supplies, assembles the canonical recipe input
// and decodes the frames a recipe execution produced.
package frames

import "fmt"

// Bound is an optional frame-count limit. A declared count of zero means
// unconstrained and collapses to the unset bound.
type Bound struct {
	N   int
	Set bool
}

// BoundOf returns the bound for a declared count, treating zero as unset.
func BoundOf(n int) Bound {
	if n > 0 {
		return Bound{N: n, Set: true}
	}
	return Bound{}
}

// FrameConfig describes how many frames a recipe accepts under one tag.
// Min <= Max is not checked here; declarations violating it pass through
// as declared.
type FrameConfig struct {
	Tag string
	Min Bound
	Max Bound
}

// NewFrameConfig creates the config for a tag's first declaration.
func NewFrameConfig(tag string, minFrames, maxFrames int) *FrameConfig {
	return &FrameConfig{
		Tag: tag,
		Min: BoundOf(minFrames),
		Max: BoundOf(maxFrames),
	}
}

// Widen merges another declaration of the same tag into this config. An
// unconstrained side wins: once either declaration leaves a bound open, the
// merged bound stays open. Otherwise the window grows to cover both
// declarations (smaller min, larger max).
func (c *FrameConfig) Widen(minFrames, maxFrames Bound) {
	if c.Min.Set {
		if minFrames.Set {
			if minFrames.N < c.Min.N {
				c.Min.N = minFrames.N
			}
		} else {
			c.Min = Bound{}
		}
	}
	if c.Max.Set {
		if maxFrames.Set {
			if maxFrames.N > c.Max.N {
				c.Max.N = maxFrames.N
			}
		} else {
			c.Max = Bound{}
		}
	}
}

// ConstraintText renders the human-readable count constraint. The
// "list of min." branch formats the max bound; the original tool does the
// same and downstream docs match it, so the quirk is kept.
func (c *FrameConfig) ConstraintText() string {
	var r string
	switch {
	case c.Max.Set && c.Max.N == 1:
		r = "one frame"
	case c.Min.Set && c.Min.N > 1 && c.Max.Set && c.Max.N > c.Min.N:
		r = fmt.Sprintf("list of %d-%d frames", c.Min.N, c.Max.N)
	case c.Max.Set && c.Max.N > 1:
		r = fmt.Sprintf("one frame or list of max. %d frames", c.Max.N)
	case c.Min.Set && c.Min.N > 1:
		r = fmt.Sprintf("list of min. %d frames", c.Max.N)
	default:
		r = "one frame or list of frames"
	}
	if !c.Min.Set {
		r += " (optional)"
	}
	return r
}
