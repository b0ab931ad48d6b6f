// Package cmd wires the dwiproc command tree. Each stage command
// collects its changed flags into a flat key/value map, builds the
// stage's CLI key map, and hands both to the configuration engine;
// flag syntax itself is cobra's concern.
package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var logger = hclog.New(&hclog.LoggerOptions{
	Name:   "dwiproc",
	Output: os.Stderr,
	Level:  hclog.Info,
})

var appVersion = "dev"

// NewRootCommand builds the dwiproc command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	appVersion = version

	rootCmd := &cobra.Command{
		Use:   "dwiproc",
		Short: "Diffusion MRI processing for non-human primate datasets",
		Long: `dwiproc indexes a BIDS dataset and drives the preprocessing,
reconstruction and connectivity stages of a diffusion MRI pipeline.

Each stage resolves its configuration from compiled-in defaults, an
optional YAML configuration file (--config), and command-line flags,
in that order of precedence.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(hclog.Debug)
			}
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML configuration file, keyed by stage at the top level")
	pf.Int("threads", 1, "number of threads available to wrapped tools")
	pf.String("runner", "", "execution backend (local, docker, podman, apptainer, singularity)")
	pf.String("index-path", "", "path to an existing dataset index")
	pf.Bool("graph", false, "write the workflow graph instead of running")
	pf.Int("seed-number", 99, "seed for reproducible processing")
	pf.String("work-dir", "styx_tmp", "working directory for intermediate files")
	pf.Bool("work-keep", false, "keep the working directory after completion")
	pf.Int("b0-thresh", 10, "b-value threshold below which volumes count as b0")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newIndexCommand(),
		newPreprocessCommand(),
		newReconstructCommand(),
		newConnectivityCommand(),
	)

	return rootCmd
}
