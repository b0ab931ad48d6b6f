package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapParam_RewritesMatchingPrefixes(t *testing.T) {
	keys := []string{"eddy_repol", "eddy_slm", "eddymotion_iters", "threads"}

	got := MapParam("eddy_", "undistort.opts.eddy.", keys)

	assert.Equal(t, map[string]string{
		"eddy_repol": "undistort.opts.eddy.repol",
		"eddy_slm":   "undistort.opts.eddy.slm",
	}, got)
	// eddymotion_ does not carry the eddy_ prefix (the underscore
	// terminates the match), so it is left alone.
	assert.NotContains(t, got, "eddymotion_iters")
	assert.NotContains(t, got, "threads")
}

func TestNewKeyMap_MergesTables(t *testing.T) {
	keyMap, err := NewKeyMap(
		map[string]string{"participant": "query.participant"},
		MapParam("denoise_", "denoise.", []string{"denoise_skip", "denoise_estimator"}),
	)

	require.NoError(t, err)
	assert.Equal(t, KeyMap{
		"participant":       "query.participant",
		"denoise_skip":      "denoise.skip",
		"denoise_estimator": "denoise.estimator",
	}, keyMap)
}

func TestNewKeyMap_RejectsTargetCollision(t *testing.T) {
	_, err := NewKeyMap(
		map[string]string{"fieldmap_skip": "undistort.opts.skip"},
		map[string]string{"fugue_skip": "undistort.opts.skip"},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "undistort.opts.skip")
}

func TestNewKeyMap_RejectsConflictingKey(t *testing.T) {
	_, err := NewKeyMap(
		map[string]string{"shells": "tractography.shells"},
		map[string]string{"shells": "query.shells"},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"shells"`)
}

func TestNewKeyMap_AllowsRepeatedIdenticalEntry(t *testing.T) {
	keyMap, err := NewKeyMap(
		map[string]string{"atlas": "opts.atlas"},
		map[string]string{"atlas": "opts.atlas"},
	)

	require.NoError(t, err)
	assert.Equal(t, KeyMap{"atlas": "opts.atlas"}, keyMap)
}

func TestFlattenToNested_MappedAndPassThrough(t *testing.T) {
	keyMap, err := NewKeyMap(map[string]string{
		"eddy_repol":   "undistort.opts.eddy.repol",
		"topup_config": "undistort.opts.topup.config",
	})
	require.NoError(t, err)

	got := FlattenToNested(map[string]any{
		"eddy_repol":   true,
		"topup_config": "b02b0_macaque",
		"threads":      4,
	}, keyMap)

	assert.Equal(t, UpdateTree{
		"undistort": UpdateTree{
			"opts": UpdateTree{
				"eddy":  UpdateTree{"repol": true},
				"topup": UpdateTree{"config": "b02b0_macaque"},
			},
		},
		"threads": 4,
	}, got)
}

func TestFlattenToNested_SkipsEmptyValues(t *testing.T) {
	keyMap, err := NewKeyMap(map[string]string{
		"atlas":  "opts.atlas",
		"shells": "tractography.shells",
	})
	require.NoError(t, err)

	got := FlattenToNested(map[string]any{
		"atlas":   "",
		"shells":  []int{},
		"missing": nil,
		"radius":  0.0,
		"skip":    false,
	}, keyMap)

	// Empty string, empty slice, and nil never override; zero and
	// false are legitimate values and survive.
	assert.Equal(t, UpdateTree{"radius": 0.0, "skip": false}, got)
}
