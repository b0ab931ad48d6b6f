package descriptor

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(buf *bytes.Buffer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "descriptor-test",
		Level:  hclog.Warn,
		Output: buf,
	})
}

func TestGenerate_WritesDerivativeDescriptor(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "derivatives", "dataset_description.json")

	err := Generate(hclog.NewNullLogger(), Info{
		AppName: "dwiproc",
		Version: "1.4.0",
	}, outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "dwiproc", got["Name"])
	assert.Equal(t, "1.9.0", got["BIDSVersion"])
	assert.Equal(t, "derivative", got["DatasetType"])
	assert.Equal(t, map[string]any{
		"Name":    "dwiproc",
		"Version": "1.4.0",
	}, got["GeneratedBy"])
}

func TestGenerate_ExplicitBIDSVersionWins(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "dataset_description.json")

	err := Generate(hclog.NewNullLogger(), Info{
		AppName:     "dwiproc",
		Version:     "1.4.0",
		BIDSVersion: "1.8.0",
	}, outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "1.8.0", got["BIDSVersion"])
}

func TestGenerate_NonJSONExtension_WarnsButWrites(t *testing.T) {
	var buf bytes.Buffer
	outPath := filepath.Join(t.TempDir(), "dataset_description.txt")

	err := Generate(testLogger(&buf), Info{AppName: "dwiproc", Version: "dev"}, outPath)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "descriptor extension is not '.json'")
	_, statErr := os.Stat(outPath)
	assert.NoError(t, statErr, "descriptor should be written despite the warning")
}
