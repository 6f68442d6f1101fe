package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate recipe definition files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateRecipes()
	},
}

func registerValidateCommand(root *cobra.Command) {
	root.AddCommand(validateCmd)
}

func validateRecipes() error {
	fmt.Println("□ Loading recipe definitions...")
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	fmt.Printf("✓ %d recipe(s) are valid\n", len(registry.Recipes))
	return nil
}
