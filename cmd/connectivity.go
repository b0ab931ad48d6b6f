package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nhptools/dwiproc/internal/config"
)

func newConnectivityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connectivity <bids-dir> <output-dir>",
		Short: "Generate connectomes or tract density maps",
		Args:  cobra.ExactArgs(2),
		RunE:  runConnectivity,
	}

	flags := cmd.Flags()
	flags.String("participant", "", "participant query filter")
	flags.String("dwi", "", "dwi file query filter")
	flags.String("t1w", "", "t1w file query filter")
	flags.String("mask", "", "brain mask query filter")
	flags.String("fmap", "", "fieldmap query filter")

	flags.String("method", "", "connectivity method (connectome, tract)")
	flags.String("atlas", "", "atlas used for connectome node parcellation")
	flags.Float64("radius", 0, "node assignment radius in mm")
	flags.Float64Slice("voxel-size", nil, "isotropic voxel size for tract maps")
	flags.String("tract-query", "", "query selecting tract files to map")
	flags.String("surface-query", "", "query selecting surfaces to map onto")

	return cmd
}

func connectivityKeyMap() (config.KeyMap, error) {
	// method stays unmapped: it already names a stage-root field.
	return config.NewKeyMap(map[string]string{
		"participant":   "query.participant",
		"dwi":           "query.dwi",
		"t1w":           "query.t1w",
		"mask":          "query.mask",
		"fmap":          "query.fmap",
		"atlas":         "opts.atlas",
		"radius":        "opts.radius",
		"voxel_size":    "opts.voxel_size",
		"tract_query":   "opts.tract_query",
		"surface_query": "opts.surface_query",
	})
}

func runConnectivity(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]

	globals, err := buildGlobalOpts(cmd)
	if err != nil {
		return err
	}
	keyMap, err := connectivityKeyMap()
	if err != nil {
		return err
	}
	cfg, err := buildStageConfig(cmd, "connectivity", config.DefaultConnectivityConfig(),
		keyMap, config.ConnectivityDiscriminants(), globals)
	if err != nil {
		return err
	}

	if err := writeDescriptor(outputDir); err != nil {
		return err
	}
	return renderStage(cmd.OutOrStdout(), "connectivity", globals, cfg, [][2]string{
		{"input", inputDir},
		{"output", outputDir},
	})
}
