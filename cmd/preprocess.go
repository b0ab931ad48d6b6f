package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nhptools/dwiproc/internal/config"
)

func newPreprocessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preprocess <bids-dir> <output-dir>",
		Short: "Denoise, unring, undistort and register diffusion data",
		Args:  cobra.ExactArgs(2),
		RunE:  runPreprocess,
	}

	flags := cmd.Flags()
	flags.String("participant", "", "participant query filter")
	flags.String("dwi", "", "dwi file query filter")
	flags.String("t1w", "", "t1w file query filter")
	flags.String("mask", "", "brain mask query filter")
	flags.String("fmap", "", "fieldmap query filter")

	flags.StringSlice("pe-dirs", nil, "phase-encode directions, overriding sidecar metadata")
	flags.Float64("echo-spacing", 0, "effective echo spacing, overriding sidecar metadata")

	flags.Bool("denoise-skip", false, "skip denoising")
	flags.Bool("denoise-map", false, "save the estimated noise map")
	flags.String("denoise-estimator", "", "noise estimator (Exp1, Exp2)")

	flags.Bool("unring-skip", false, "skip Gibbs ringing removal")
	flags.IntSlice("unring-axes", nil, "axes along which to perform unringing")

	flags.String("undistort-method", "", "distortion correction method (topup, fieldmap, fugue, eddymotion)")
	flags.Bool("undistort-skip", false, "skip distortion correction")
	flags.String("topup-config", "", "topup configuration name")
	flags.Float64("topup-readout-time", 0, "total readout time, overriding sidecar metadata")
	flags.String("eddy-slm", "", "eddy second-level model (none, linear, quadratic)")
	flags.Bool("eddy-cnr", false, "generate eddy CNR maps")
	flags.Bool("eddy-repol", false, "replace outlier slices")
	flags.Bool("eddy-residuals", false, "save eddy residuals")
	flags.Bool("eddy-shelled", false, "bypass the multi-shell data check")
	flags.Float64("fieldmap-smooth", 0, "fieldmap smoothing kernel width")
	flags.Float64("fugue-smooth-sigma", 0, "fugue 3D gaussian smoothing sigma")
	flags.Float64("fugue-dwell-time", 0, "fugue dwell time in seconds")
	flags.Int("eddymotion-iters", 0, "number of eddymotion model iterations")

	flags.Bool("biascorrect-skip", false, "skip bias field correction")
	flags.Float64("biascorrect-spacing", 0, "initial b-spline mesh resolution")
	flags.Int("biascorrect-iters", 0, "number of correction iterations")
	flags.Int("biascorrect-shrink", 0, "image shrink factor")

	flags.Bool("registration-skip", false, "skip b0-to-T1w registration")
	flags.String("registration-metric", "", "registration metric (SSD, MI, NMI, MAHAL)")
	flags.String("registration-iters", "", "iterations per registration level (e.g. 50x50)")
	flags.String("registration-init", "", "transform initialization (identity, image-centers)")

	return cmd
}

// preprocessKeyMap maps the stage's flat flag keys onto the nested
// configuration. Variant-specific flags land under undistort.opts so
// they bind to whichever option set the method selects.
func preprocessKeyMap(fs *pflag.FlagSet) (config.KeyMap, error) {
	keys := flagKeys(fs)
	return config.NewKeyMap(
		map[string]string{
			"participant":      "query.participant",
			"dwi":              "query.dwi",
			"t1w":              "query.t1w",
			"mask":             "query.mask",
			"fmap":             "query.fmap",
			"pe_dirs":          "metadata.pe_dirs",
			"echo_spacing":     "metadata.echo_spacing",
			"undistort_method": "undistort.method",
			"undistort_skip":   "undistort.opts.skip",
		},
		config.MapParam("denoise_", "denoise.", keys),
		config.MapParam("unring_", "unring.", keys),
		config.MapParam("topup_", "undistort.opts.topup.", keys),
		config.MapParam("eddy_", "undistort.opts.eddy.", keys),
		config.MapParam("fieldmap_", "undistort.opts.", keys),
		config.MapParam("fugue_", "undistort.opts.", keys),
		config.MapParam("eddymotion_", "undistort.opts.", keys),
		config.MapParam("biascorrect_", "biascorrect.", keys),
		config.MapParam("registration_", "registration.", keys),
	)
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]

	globals, err := buildGlobalOpts(cmd)
	if err != nil {
		return err
	}
	keyMap, err := preprocessKeyMap(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := buildStageConfig(cmd, "preprocess", config.DefaultPreprocessConfig(),
		keyMap, config.PreprocessDiscriminants(), globals)
	if err != nil {
		return err
	}

	if err := writeDescriptor(outputDir); err != nil {
		return err
	}
	return renderStage(cmd.OutOrStdout(), "preprocess", globals, cfg, [][2]string{
		{"input", inputDir},
		{"output", outputDir},
	})
}
