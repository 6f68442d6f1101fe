package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourceplane/framerun/internal/render"
)

var recipesLong bool

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List available recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRecipes()
	},
}

func registerRecipesCommand(root *cobra.Command) {
	root.AddCommand(recipesCmd)

	recipesCmd.Flags().BoolVarP(&recipesLong, "long", "l", false, "Show detailed information")
}

func listRecipes() error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	fmt.Println("Available recipes:")
	for _, name := range registry.Names() {
		rcp, _ := registry.Get(name)
		switch {
		case recipesLong:
			fmt.Println()
			fmt.Print(render.DescribeRecipe(rcp))
		case rcp.Description() != "":
			fmt.Printf("  %s - %s\n", name, rcp.Description())
		default:
			fmt.Printf("  %s\n", name)
		}
	}

	if !recipesLong {
		fmt.Println("\nRun 'framerun describe <name>' for detailed information")
	}
	return nil
}
