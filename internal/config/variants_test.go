package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVariants_MatchingType_IsNoOp(t *testing.T) {
	base := DefaultPreprocessConfig()

	resolved, err := resolveVariants(base, PreprocessDiscriminants())

	require.NoError(t, err)
	assert.True(t, Equal(base, resolved))
}

func TestResolveVariants_SwapsToSelectedVariant(t *testing.T) {
	tests := []struct {
		name   string
		method string
		check  func(t *testing.T, opts Value)
	}{
		{
			name:   "Fieldmap",
			method: "fieldmap",
			check: func(t *testing.T, opts Value) {
				fm, ok := opts.(FieldmapOptions)
				require.True(t, ok, "opts should be FieldmapOptions, got %T", opts)
				assert.Equal(t, DefaultEddyConfig(), fm.Eddy)
			},
		},
		{
			name:   "Fugue",
			method: "fugue",
			check: func(t *testing.T, opts Value) {
				fg, ok := opts.(FugueOptions)
				require.True(t, ok, "opts should be FugueOptions, got %T", opts)
				assert.Equal(t, 2.0, fg.SmoothSigma)
			},
		},
		{
			name:   "Eddymotion",
			method: "eddymotion",
			check: func(t *testing.T, opts Value) {
				em, ok := opts.(EddymotionOptions)
				require.True(t, ok, "opts should be EddymotionOptions, got %T", opts)
				assert.Equal(t, 2, em.Iters)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultPreprocessConfig()
			merged, err := base.merge("", UpdateTree{
				"undistort": map[string]any{"method": tt.method},
			})
			require.NoError(t, err)

			resolved, err := resolveVariants(merged, PreprocessDiscriminants())

			require.NoError(t, err)
			tt.check(t, resolved.(PreprocessConfig).Undistort.Opts)
		})
	}
}

func TestResolveVariants_PreservesSharedFields(t *testing.T) {
	base := DefaultPreprocessConfig()
	merged, err := base.merge("", UpdateTree{
		"undistort": map[string]any{
			"opts": map[string]any{
				"skip": true,
				"eddy": map[string]any{"repol": true},
			},
			"method": "fieldmap",
		},
	})
	require.NoError(t, err)

	resolved, err := resolveVariants(merged, PreprocessDiscriminants())
	require.NoError(t, err)

	opts, ok := resolved.(PreprocessConfig).Undistort.Opts.(FieldmapOptions)
	require.True(t, ok, "opts should be FieldmapOptions, got %T", resolved.(PreprocessConfig).Undistort.Opts)
	// Shared scalar and shared nested node survive the swap.
	assert.True(t, opts.Skip)
	assert.True(t, opts.Eddy.Repol)
	// Fields unique to the new variant take its defaults.
	assert.Equal(t, 0.0, opts.Smooth)
}

func TestResolveVariants_UnknownMethod_Fails(t *testing.T) {
	discriminants := DiscriminantMap{
		"undistort.method": PreprocessDiscriminants()["undistort.method"],
	}
	base := DefaultPreprocessConfig()
	base.Undistort.Method = "warp" // not a declared variant

	_, err := resolveVariants(base, discriminants)

	var variantErr *UnknownVariantError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, "undistort.method", variantErr.Path)
	assert.Equal(t, "warp", variantErr.Value)
	assert.Equal(t, []string{"eddymotion", "fieldmap", "fugue", "topup"}, variantErr.Known)
}

func TestResolveVariants_RootLevelDiscriminant(t *testing.T) {
	base := DefaultConnectivityConfig()
	merged, err := base.merge("", UpdateTree{"method": "tract"})
	require.NoError(t, err)

	resolved, err := resolveVariants(merged, ConnectivityDiscriminants())

	require.NoError(t, err)
	_, ok := resolved.(ConnectivityConfig).Opts.(TractMapOptions)
	assert.True(t, ok, "opts should be TractMapOptions")
}

func TestResolveVariants_SwitchBackAndForth_RestoresDefaults(t *testing.T) {
	base := DefaultReconstructionConfig()
	merged, err := base.merge("", UpdateTree{
		"tractography": map[string]any{"method": "act"},
	})
	require.NoError(t, err)

	resolved, err := resolveVariants(merged, ReconstructionDiscriminants())
	require.NoError(t, err)
	_, ok := resolved.(ReconstructionConfig).Tractography.Opts.(ACTOptions)
	require.True(t, ok, "opts should be ACTOptions")

	// Flip back to wm; the opts node becomes the empty wm variant again.
	merged, err = resolved.merge("", UpdateTree{
		"tractography": map[string]any{"method": "wm"},
	})
	require.NoError(t, err)
	resolved, err = resolveVariants(merged, ReconstructionDiscriminants())
	require.NoError(t, err)
	_, ok = resolved.(ReconstructionConfig).Tractography.Opts.(WMOptions)
	assert.True(t, ok, "opts should be WMOptions")
}
