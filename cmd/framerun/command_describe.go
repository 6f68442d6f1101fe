package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/framerun/internal/render"
)

var describeCmd = &cobra.Command{
	Use:   "describe <recipe>",
	Short: "Show a recipe's frame requirements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeRecipe(args[0])
	},
}

func registerDescribeCommand(root *cobra.Command) {
	root.AddCommand(describeCmd)
}

func describeRecipe(name string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	rcp, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("recipe not found: %s", name)
	}

	fmt.Print(render.DescribeRecipe(rcp))
	return nil
}
