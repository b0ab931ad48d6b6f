// Package descriptor writes the BIDS dataset_description.json that
// marks pipeline outputs as a derivative dataset.
package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

const defaultBIDSVersion = "1.9.0"

// Info identifies the generating application.
type Info struct {
	AppName     string
	Version     string
	BIDSVersion string
}

type generatedBy struct {
	Name    string `json:"Name"`
	Version string `json:"Version"`
}

type description struct {
	Name        string      `json:"Name"`
	BIDSVersion string      `json:"BIDSVersion"`
	DatasetType string      `json:"DatasetType"`
	GeneratedBy generatedBy `json:"GeneratedBy"`
}

// Generate writes the dataset descriptor to outPath. A path without a
// .json extension is unusual enough to warn about, but the descriptor
// is still written.
func Generate(logger hclog.Logger, info Info, outPath string) error {
	if info.BIDSVersion == "" {
		info.BIDSVersion = defaultBIDSVersion
	}
	if filepath.Ext(outPath) != ".json" {
		logger.Warn("descriptor extension is not '.json'", "path", outPath)
	}

	desc := description{
		Name:        info.AppName,
		BIDSVersion: info.BIDSVersion,
		DatasetType: "derivative",
		GeneratedBy: generatedBy{Name: info.AppName, Version: info.Version},
	}
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}
	return nil
}
