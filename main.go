package main

import (
	"os"

	"github.com/nhptools/dwiproc/cmd"
)

// Populated via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cmd.NewRootCommand(version, commit, date).Execute(); err != nil {
		os.Exit(1)
	}
}
