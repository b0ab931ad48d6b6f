package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nhptools/dwiproc/internal/config"
	"github.com/nhptools/dwiproc/internal/descriptor"
)

// buildGlobalOpts resolves the options shared by every stage from the
// root command's persistent flags and the "opts" key of the config
// file. The config file path itself can only come from the command
// line.
func buildGlobalOpts(cmd *cobra.Command) (config.GlobalOpts, error) {
	keyMap, err := config.NewKeyMap(map[string]string{
		"runner": "runner.name",
	})
	if err != nil {
		return config.GlobalOpts{}, err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	fileLayer, err := config.StageLayer(cfgPath, "opts")
	if err != nil {
		return config.GlobalOpts{}, err
	}

	cliLayer := config.FlattenToNested(changedFlagValues(cmd.Root().PersistentFlags()), keyMap)
	globals, err := config.BuildConfig(config.DefaultGlobalOpts(), fileLayer, cliLayer, nil)
	if err != nil {
		return config.GlobalOpts{}, fmt.Errorf("resolve global options: %w", err)
	}
	return globals, nil
}

// buildStageConfig runs the full layered build for one stage.
func buildStageConfig[T config.Value](
	cmd *cobra.Command,
	stage string,
	defaults T,
	keyMap config.KeyMap,
	discriminants config.DiscriminantMap,
	globals config.GlobalOpts,
) (T, error) {
	var zero T
	fileLayer, err := config.StageLayer(globals.ConfigFile, stage)
	if err != nil {
		return zero, err
	}
	cliLayer := config.FlattenToNested(changedFlagValues(cmd.Flags()), keyMap)

	logger.Debug("building stage configuration",
		"stage", stage,
		"config_file", globals.ConfigFile,
		"cli_overrides", len(cliLayer),
	)
	cfg, err := config.BuildConfig(defaults, fileLayer, cliLayer, discriminants)
	if err != nil {
		return zero, fmt.Errorf("build %s configuration: %w", stage, err)
	}
	return cfg, nil
}

// writeDescriptor marks the output directory as a BIDS derivative
// dataset before any stage output lands in it.
func writeDescriptor(outputDir string) error {
	info := descriptor.Info{AppName: "dwiproc", Version: appVersion}
	return descriptor.Generate(logger, info, filepath.Join(outputDir, "dataset_description.json"))
}
