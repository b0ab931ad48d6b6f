package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedFlagValues_OnlySetFlagsAppear(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("denoise-skip", false, "")
	fs.Int("threads", 1, "")
	fs.String("participant", "", "")
	fs.Float64("echo-spacing", 0, "")

	require.NoError(t, fs.Parse([]string{"--denoise-skip", "--threads", "8"}))

	got := changedFlagValues(fs)

	assert.Equal(t, map[string]any{
		"denoise_skip": true,
		"threads":      8,
	}, got)
	assert.NotContains(t, got, "participant", "unset flags must not override file values")
	assert.NotContains(t, got, "echo_spacing")
}

func TestChangedFlagValues_TypedExtraction(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.IntSlice("shells", nil, "")
	fs.Float64Slice("voxel-size", nil, "")
	fs.StringSlice("pe-dirs", nil, "")
	fs.Float64("cutoff", 0, "")
	fs.String("atlas", "", "")

	require.NoError(t, fs.Parse([]string{
		"--shells", "0,1000,2000",
		"--voxel-size", "1.5,1.5,1.5",
		"--pe-dirs", "i,i-",
		"--cutoff", "0.05",
		"--atlas", "CHARM",
	}))

	got := changedFlagValues(fs)

	assert.Equal(t, map[string]any{
		"shells":     []int{0, 1000, 2000},
		"voxel_size": []float64{1.5, 1.5, 1.5},
		"pe_dirs":    []string{"i", "i-"},
		"cutoff":     0.05,
		"atlas":      "CHARM",
	}, got)
}

func TestFlagKeys_FoldsDashes(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("eddy-repol", false, "")
	fs.String("topup-config", "", "")

	assert.ElementsMatch(t, []string{"eddy_repol", "topup_config"}, flagKeys(fs))
}

func TestStageKeyMaps_ConstructWithoutCollision(t *testing.T) {
	preprocess, err := preprocessKeyMap(newPreprocessCommand().Flags())
	require.NoError(t, err)
	assert.Equal(t, "undistort.opts.eddy.repol", preprocess["eddy_repol"])
	assert.Equal(t, "undistort.opts.smooth", preprocess["fieldmap_smooth"])
	assert.Equal(t, "undistort.opts.iters", preprocess["eddymotion_iters"])
	assert.Equal(t, "undistort.method", preprocess["undistort_method"])

	reconstruct, err := reconstructKeyMap(newReconstructCommand().Flags())
	require.NoError(t, err)
	assert.Equal(t, "tractography.method", reconstruct["tract_method"])
	assert.Equal(t, "tractography.opts.backtrack", reconstruct["act_backtrack"])

	connectivity, err := connectivityKeyMap()
	require.NoError(t, err)
	assert.Equal(t, "opts.atlas", connectivity["atlas"])
	assert.NotContains(t, connectivity, "method", "method names a stage-root field directly")
}
