package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test", "none", "today")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_UnknownSubcommand(t *testing.T) {
	_, err := executeCommand(t, "definitely-not-a-stage")
	assert.Error(t, err)
}

func TestPreprocessCommand_LayeredResolution(t *testing.T) {
	cfgPath := writeConfigFile(t, `
opts:
  threads: 4
preprocess:
  denoise:
    skip: true
  undistort:
    method: fieldmap
`)
	outputDir := filepath.Join(t.TempDir(), "derivatives")

	out, err := executeCommand(t,
		"preprocess", "/data/bids", outputDir,
		"--config", cfgPath,
		"--threads", "8",
		"--undistort-skip",
	)
	require.NoError(t, err)

	var rendered map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(lastYAMLDocument(out), &rendered))
	stage := rendered["preprocess"]

	denoise := stage["denoise"].(map[string]any)
	assert.Equal(t, true, denoise["skip"], "file layer applies")

	undistort := stage["undistort"].(map[string]any)
	assert.Equal(t, "fieldmap", undistort["method"])
	opts := undistort["opts"].(map[string]any)
	assert.Equal(t, true, opts["skip"], "flag binds to the file-selected variant")
}

func TestPreprocessCommand_WritesDescriptor(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "derivatives")

	_, err := executeCommand(t, "preprocess", "/data/bids", outputDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, "dataset_description.json"))
	require.NoError(t, err)

	var desc map[string]any
	require.NoError(t, json.Unmarshal(data, &desc))
	assert.Equal(t, "dwiproc", desc["Name"])
	assert.Equal(t, "derivative", desc["DatasetType"])
}

func TestReconstructCommand_CLIOverridesOnly(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "derivatives")

	out, err := executeCommand(t,
		"reconstruct", "/data/bids", outputDir,
		"--tract-method", "act",
		"--act-backtrack",
		"--shells", "0,1000,2000",
	)
	require.NoError(t, err)

	var rendered map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(lastYAMLDocument(out), &rendered))
	tract := rendered["reconstruction"]["tractography"].(map[string]any)

	assert.Equal(t, "act", tract["method"])
	assert.Equal(t, []any{0, 1000, 2000}, tract["shells"])
	opts := tract["opts"].(map[string]any)
	assert.Equal(t, true, opts["backtrack"])
}

func TestConnectivityCommand_InvalidMethod(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "derivatives")

	_, err := executeCommand(t,
		"connectivity", "/data/bids", outputDir,
		"--method", "diffusion-embedding",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method")
}

func TestIndexCommand_RequiresDatasetArg(t *testing.T) {
	_, err := executeCommand(t, "index")
	assert.Error(t, err)
}

// lastYAMLDocument strips the header lines preceding the rendered
// configuration, leaving the YAML that follows the final label.
func lastYAMLDocument(out string) []byte {
	const label = "resolved configuration:"
	idx := bytes.LastIndex([]byte(out), []byte(label))
	if idx < 0 {
		return []byte(out)
	}
	rest := []byte(out)[idx+len(label):]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	return rest
}
