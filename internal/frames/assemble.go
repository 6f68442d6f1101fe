package frames

import (
	"fmt"
	"sort"
	"strings"
)

// Frame is one (tag, item) pair in the canonical recipe input. Item is a
// file path, an Image, or (before expansion) a slice of either.
type Frame struct {
	Tag  string
	Item interface{}
}

// UnknownTagError reports a frame assignment naming a tag the recipe does
// not know.
type UnknownTagError struct {
	Tag    string
	Recipe string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown frame tag %q for recipe %s", e.Tag, e.Recipe)
}

// AssembleOptions control canonical frame list assembly.
type AssembleOptions struct {
	// Strict surfaces keyword names that do not resolve instead of
	// dropping them.
	Strict bool
}

// Assemble flattens the registry's stored frames plus extra caller input
// into the canonical ordered (tag, item) list: stored values first, then
// positional items under the recipe's default tag, then keyword items under
// their resolved tags. Keyword names are processed in sorted order so
// assembly is deterministic. A keyword resolving to a tag that already
// holds a stored value replaces it rather than duplicating it; a keyword
// that resolves to nothing is dropped unless opts.Strict. Slice items
// expand to one frame per element; an Image stays a single frame no matter
// how many extensions it carries.
func (reg *Registry) Assemble(positional []interface{}, keyword map[string]interface{}, opts AssembleOptions) ([]Frame, error) {
	names := make([]string, 0, len(keyword))
	for name := range keyword {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[string]string, len(keyword)) // keyword name -> canonical tag
	shadowed := make(map[string]bool, len(keyword))   // lowercased canonical tag
	for _, name := range names {
		tag := reg.Resolve(name)
		if tag == "" {
			if opts.Strict {
				return nil, &UnknownTagError{Tag: name, Recipe: reg.recipe.Name()}
			}
			continue
		}
		resolved[name] = tag
		shadowed[strings.ToLower(tag)] = true
	}

	var pairs []Frame
	for _, fc := range reg.Configs() {
		key := strings.ToLower(fc.Tag)
		if value := reg.values[key]; !isEmpty(value) && !shadowed[key] {
			pairs = append(pairs, Frame{Tag: fc.Tag, Item: value})
		}
	}
	for _, item := range positional {
		pairs = append(pairs, Frame{Tag: reg.recipe.DefaultTag(), Item: item})
	}
	for _, name := range names {
		tag, ok := resolved[name]
		if !ok {
			continue
		}
		pairs = append(pairs, Frame{Tag: tag, Item: keyword[name]})
	}

	return expand(pairs), nil
}

// expand splits slice-valued items into one frame per element, preserving
// element order. Images pass through whole.
func expand(pairs []Frame) []Frame {
	out := make([]Frame, 0, len(pairs))
	for _, p := range pairs {
		switch items := p.Item.(type) {
		case []interface{}:
			for _, item := range items {
				out = append(out, Frame{Tag: p.Tag, Item: item})
			}
		case []string:
			for _, item := range items {
				out = append(out, Frame{Tag: p.Tag, Item: item})
			}
		case []Image:
			for _, item := range items {
				out = append(out, Frame{Tag: p.Tag, Item: item})
			}
		default:
			out = append(out, Frame{Tag: p.Tag, Item: p.Item})
		}
	}
	return out
}

// isEmpty reports whether a stored value holds no frames.
func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []interface{}:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case []Image:
		return len(x) == 0
	}
	return false
}
