package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nhptools/dwiproc/internal/config"
)

func newIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <bids-dir>",
		Short: "Index a BIDS dataset for metadata queries",
		Args:  cobra.ExactArgs(1),
		RunE:  runIndex,
	}
	cmd.Flags().Bool("overwrite", false, "overwrite an existing index")
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	globals, err := buildGlobalOpts(cmd)
	if err != nil {
		return err
	}
	cfg, err := buildStageConfig(cmd, "index", config.DefaultIndexConfig(), nil, nil, globals)
	if err != nil {
		return err
	}
	return renderStage(cmd.OutOrStdout(), "index", globals, cfg, [][2]string{
		{"input", args[0]},
	})
}
