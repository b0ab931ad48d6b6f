package config

// TractographyMethod selects the tracking strategy, and with it the
// concrete type of the sibling opts node.
type TractographyMethod string

const (
	TractographyWM  TractographyMethod = "wm"
	TractographyACT TractographyMethod = "act"
)

var tractographyMethods = []TractographyMethod{TractographyWM, TractographyACT}

// WMOptions is the variant for plain white-matter seeded tracking. It
// has no knobs of its own.
type WMOptions struct{}

func DefaultWMOptions() WMOptions {
	return WMOptions{}
}

func (c WMOptions) merge(path string, updates UpdateTree) (Value, error) {
	return c, nil
}

func (c WMOptions) fields() map[string]any {
	return map[string]any{}
}

// ACTOptions is the variant for anatomically-constrained tractography.
type ACTOptions struct {
	Backtrack   bool
	NoCropGMWMI bool
}

func DefaultACTOptions() ACTOptions {
	return ACTOptions{}
}

func (c ACTOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "backtrack":
			out.Backtrack, err = coerceBool(fieldPath(path, key), val)
		case "no_crop_gmwmi":
			out.NoCropGMWMI, err = coerceBool(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c ACTOptions) fields() map[string]any {
	return map[string]any{
		"backtrack":     c.Backtrack,
		"no_crop_gmwmi": c.NoCropGMWMI,
	}
}

// TractographyConfig configures fibre orientation modelling and
// streamline generation.
type TractographyConfig struct {
	Skip        bool
	SingleShell bool
	Shells      []int
	Lmax        []int
	Steps       float64
	Method      TractographyMethod
	Opts        Value
	Cutoff      float64
	Streamlines int
}

func DefaultTractographyConfig() TractographyConfig {
	return TractographyConfig{
		Method:      TractographyWM,
		Opts:        DefaultWMOptions(),
		Cutoff:      0.1,
		Streamlines: 10000,
	}
}

func (c TractographyConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "single_shell":
			out.SingleShell, err = coerceBool(fieldPath(path, key), val)
		case "shells":
			out.Shells, err = coerceIntSlice(fieldPath(path, key), val)
		case "lmax":
			out.Lmax, err = coerceIntSlice(fieldPath(path, key), val)
		case "steps":
			out.Steps, err = coerceFloat(fieldPath(path, key), val)
		case "method":
			out.Method, err = coerceEnum(fieldPath(path, key), val, tractographyMethods)
		case "opts":
			out.Opts, err = mergeOpts(path, key, out.Opts, val)
		case "cutoff":
			out.Cutoff, err = coerceFloat(fieldPath(path, key), val)
		case "streamlines":
			out.Streamlines, err = coerceInt(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c TractographyConfig) fields() map[string]any {
	return map[string]any{
		"skip":         c.Skip,
		"single_shell": c.SingleShell,
		"shells":       c.Shells,
		"lmax":         c.Lmax,
		"steps":        c.Steps,
		"method":       string(c.Method),
		"opts":         c.Opts,
		"cutoff":       c.Cutoff,
		"streamlines":  c.Streamlines,
	}
}

// ReconstructionConfig is the full reconstruction stage configuration.
type ReconstructionConfig struct {
	Query        QueryConfig
	Tractography TractographyConfig
}

func DefaultReconstructionConfig() ReconstructionConfig {
	return ReconstructionConfig{
		Query:        DefaultQueryConfig(),
		Tractography: DefaultTractographyConfig(),
	}
}

func (c ReconstructionConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "query":
			out.Query, err = mergeChild(path, key, out.Query, val)
		case "tractography":
			out.Tractography, err = mergeChild(path, key, out.Tractography, val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c ReconstructionConfig) fields() map[string]any {
	return map[string]any{
		"query":        c.Query,
		"tractography": c.Tractography,
	}
}

// ReconstructionDiscriminants declares the dynamic variant selected by
// the tractography method.
func ReconstructionDiscriminants() DiscriminantMap {
	return DiscriminantMap{
		"tractography.method": VariantTable{
			string(TractographyWM): {
				New: func() Value { return DefaultWMOptions() },
				Is:  func(v Value) bool { _, ok := v.(WMOptions); return ok },
			},
			string(TractographyACT): {
				New: func() Value { return DefaultACTOptions() },
				Is:  func(v Value) bool { _, ok := v.(ACTOptions); return ok },
			},
		},
	}
}
