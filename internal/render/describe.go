// Package render produces the human-readable and on-disk text forms of
// recipes and frame lists.
package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/framerun/internal/frames"
	"github.com/sourceplane/framerun/internal/recipe"
)

// SetOfFrames renders a materialized frame list in set-of-frames format:
// one "path tag" line per frame, in canonical order.
func SetOfFrames(frameList []frames.Frame) string {
	var b strings.Builder
	for _, f := range frameList {
		fmt.Fprintf(&b, "%v %s\n", f.Item, f.Tag)
	}
	return b.String()
}

// DescribeRecipe renders a recipe description: metadata, vocabulary and the
// per-tag frame constraint documentation.
func DescribeRecipe(rcp *recipe.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s\n", rcp.Name())
	if desc := rcp.Description(); desc != "" {
		fmt.Fprintf(&b, "Description: %s\n", desc)
	}
	if version := rcp.Definition.Metadata.Version; version != "" {
		fmt.Fprintf(&b, "Version: %s\n", version)
	}
	fmt.Fprintf(&b, "Default tag: %s\n", rcp.DefaultTag())
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(rcp.Tags(), ", "))
	if products := rcp.Definition.Spec.Products; len(products) > 0 {
		fmt.Fprintf(&b, "Products: %s\n", strings.Join(products, ", "))
	}
	b.WriteString("\n")
	b.WriteString(frames.NewRegistry(rcp).Documentation())
	return b.String()
}
