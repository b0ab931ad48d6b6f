package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nhptools/dwiproc/internal/config"
)

func newReconstructCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconstruct <bids-dir> <output-dir>",
		Short: "Fit fibre orientations and generate streamlines",
		Args:  cobra.ExactArgs(2),
		RunE:  runReconstruct,
	}

	flags := cmd.Flags()
	flags.String("participant", "", "participant query filter")
	flags.String("dwi", "", "dwi file query filter")
	flags.String("t1w", "", "t1w file query filter")
	flags.String("mask", "", "brain mask query filter")
	flags.String("fmap", "", "fieldmap query filter")

	flags.Bool("tract-skip", false, "skip tractography")
	flags.String("tract-method", "", "tractography method (wm, act)")
	flags.Bool("single-shell", false, "process as single-shell data")
	flags.IntSlice("shells", nil, "b-value shells to use")
	flags.IntSlice("lmax", nil, "maximum harmonic degree per shell")
	flags.Float64("steps", 0, "streamline step size in voxel units")
	flags.Float64("cutoff", 0, "FOD amplitude cutoff for terminating tracks")
	flags.Int("streamlines", 0, "number of streamlines to select")
	flags.Bool("act-backtrack", false, "allow tracks to backtrack during ACT")
	flags.Bool("act-no-crop-gmwmi", false, "do not crop tracks at the GM-WM interface")

	return cmd
}

func reconstructKeyMap(fs *pflag.FlagSet) (config.KeyMap, error) {
	keys := flagKeys(fs)
	return config.NewKeyMap(
		map[string]string{
			"participant":  "query.participant",
			"dwi":          "query.dwi",
			"t1w":          "query.t1w",
			"mask":         "query.mask",
			"fmap":         "query.fmap",
			"single_shell": "tractography.single_shell",
			"shells":       "tractography.shells",
			"lmax":         "tractography.lmax",
			"steps":        "tractography.steps",
			"cutoff":       "tractography.cutoff",
			"streamlines":  "tractography.streamlines",
		},
		config.MapParam("tract_", "tractography.", keys),
		config.MapParam("act_", "tractography.opts.", keys),
	)
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]

	globals, err := buildGlobalOpts(cmd)
	if err != nil {
		return err
	}
	keyMap, err := reconstructKeyMap(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := buildStageConfig(cmd, "reconstruction", config.DefaultReconstructionConfig(),
		keyMap, config.ReconstructionDiscriminants(), globals)
	if err != nil {
		return err
	}

	if err := writeDescriptor(outputDir); err != nil {
		return err
	}
	return renderStage(cmd.OutOrStdout(), "reconstruction", globals, cfg, [][2]string{
		{"input", inputDir},
		{"output", outputDir},
	})
}
