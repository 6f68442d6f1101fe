package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sourceplane/framerun/internal/loader"
)

var (
	cfgFile   string
	recipeDir string
)

var rootCmd = &cobra.Command{
	Use:   "framerun",
	Short: "Assemble tagged frames and run data-reduction recipes",
	Long:  "framerun maps tagged input frames onto a recipe's declared requirements, materializes them as files, runs the recipe command and decodes the products it reports back.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .framerun/config.yaml, then ~/.config/framerun/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&recipeDir, "recipe-dir", "c", "",
		"directory containing recipe definitions")
	_ = viper.BindPFlag("recipe_dir", rootCmd.PersistentFlags().Lookup("recipe-dir"))

	registerRecipesCommand(rootCmd)
	registerDescribeCommand(rootCmd)
	registerValidateCommand(rootCmd)
	registerRunCommand(rootCmd)
}

func initConfig() {
	viper.SetDefault("recipe_dir", "recipes")
	viper.SetDefault("work_dir", filepath.Join(".framerun", "work"))
	viper.SetDefault("tmp_dir", os.TempDir())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(filepath.Join(".framerun", "config.yaml")); err == nil {
		// Config lookup order:
		// 1. .framerun/config.yaml (current directory)
		// 2. ~/.config/framerun/config.yaml (user config)
		viper.SetConfigFile(filepath.Join(".framerun", "config.yaml"))
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "framerun"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "failed to read config %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

func loadRegistry() (*loader.Registry, error) {
	registry, err := loader.LoadRecipesFromDir(viper.GetString("recipe_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return registry, nil
}
