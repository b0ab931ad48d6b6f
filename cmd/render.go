package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/nhptools/dwiproc/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderStage prints the fully-resolved stage configuration. This is
// the handoff point: the printed tree is exactly what the workflow
// runners receive.
func renderStage(w io.Writer, stage string, globals config.GlobalOpts, cfg config.Value, details [][2]string) error {
	fmt.Fprintln(w, titleStyle.Render("dwiproc "+stage))
	for _, d := range details {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(d[0]+":"), d[1])
	}
	fmt.Fprintf(w, "%s %s (threads: %d)\n", labelStyle.Render("runner:"), globals.Runner.Name, globals.Threads)

	out, err := yaml.Marshal(map[string]any{stage: config.Snapshot(cfg)})
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	fmt.Fprintln(w, labelStyle.Render("resolved configuration:"))
	_, err = w.Write(out)
	return err
}
