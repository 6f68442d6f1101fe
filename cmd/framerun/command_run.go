package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sourceplane/framerun/internal/executor"
	"github.com/sourceplane/framerun/internal/fits"
	"github.com/sourceplane/framerun/internal/frames"
)

var (
	runFrameArgs []string
	runParamArgs []string
	runExecute   bool
	runStrict    bool
	runDelete    bool
	runWorkDir   string
	runTmpDir    string
)

var runCmd = &cobra.Command{
	Use:   "run <recipe> [frame...]",
	Short: "Assemble frames and execute a recipe",
	Long:  "Assemble the given frames into the recipe's canonical input, write the set-of-frames file and run the recipe command. Positional frames go under the recipe's default tag; --frame assigns frames to named tags.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipe(args[0], args[1:])
	},
}

func registerRunCommand(root *cobra.Command) {
	root.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runFrameArgs, "frame", "f", nil, "Frame assignment tag=path[,path...] (repeatable)")
	runCmd.Flags().StringArrayVarP(&runParamArgs, "param", "p", nil, "Recipe parameter key=value (repeatable)")
	runCmd.Flags().BoolVarP(&runExecute, "execute", "x", false, "Actually run the recipe command (default is dry-run)")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Fail on frame tags the recipe does not know")
	runCmd.Flags().BoolVar(&runDelete, "delete-products", false, "Remove product files after decoding")
	runCmd.Flags().StringVar(&runWorkDir, "workdir", "", "Work directory root (default from config)")
	runCmd.Flags().StringVar(&runTmpDir, "tmpdir", "", "Directory for temporary frame files (default from config)")
}

func runRecipe(name string, frameArgs []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	rcp, ok := registry.Get(name)
	if !ok {
		return fmt.Errorf("recipe not found: %s", name)
	}

	keyword, err := parseFrameArgs(runFrameArgs)
	if err != nil {
		return err
	}
	params, err := parseParamArgs(runParamArgs)
	if err != nil {
		return err
	}
	if err := rcp.ValidateParams(params); err != nil {
		return err
	}

	positional := make([]interface{}, 0, len(frameArgs))
	for _, arg := range frameArgs {
		positional = append(positional, arg)
	}

	fmt.Println("□ Assembling frames...")
	reg := frames.NewRegistry(rcp)
	frameList, err := reg.Assemble(positional, keyword, frames.AssembleOptions{Strict: runStrict})
	if err != nil {
		return fmt.Errorf("failed to assemble frames: %w", err)
	}
	if len(frameList) == 0 {
		return fmt.Errorf("no input frames for recipe %s", name)
	}

	tmpDir := runTmpDir
	if tmpDir == "" {
		tmpDir = viper.GetString("tmp_dir")
	}
	tmpfiles, err := frames.MakeAbsPaths(frameList, tmpDir)
	defer func() {
		// Input temporaries belong to this command, not to the recipe.
		for _, path := range tmpfiles {
			_ = os.Remove(path)
		}
	}()
	if err != nil {
		return fmt.Errorf("failed to materialize frames: %w", err)
	}

	workDir := runWorkDir
	if workDir == "" {
		workDir = viper.GetString("work_dir")
	}

	dryRun := !runExecute
	if dryRun {
		fmt.Println("□ Dry-run mode enabled. Use --execute to run the recipe.")
	}

	exe := executor.New(workDir, os.Stdout, os.Stderr, dryRun)
	raw, err := exe.Execute(rcp, frameList, params)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Println("✓ Dry-run complete")
		return nil
	}

	res, err := frames.DecodeResult(raw, frames.DecodeOptions{
		Codec:    fits.Codec{},
		Delete:   runDelete,
		Progress: os.Stdout,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recipe %s produced %d product tag(s)\n", name, len(res.Tags()))
	for _, tag := range res.Tags() {
		fmt.Printf("  %s: %d image(s)\n", tag, len(res.Images(tag)))
	}
	return nil
}
