package config

// ConnectivityMethod selects the connectivity analysis, and with it the
// concrete type of the sibling opts node.
type ConnectivityMethod string

const (
	ConnectivityConnectome ConnectivityMethod = "connectome"
	ConnectivityTract      ConnectivityMethod = "tract"
)

var connectivityMethods = []ConnectivityMethod{ConnectivityConnectome, ConnectivityTract}

// ConnectomeOptions is the variant for atlas-based connectome
// generation.
type ConnectomeOptions struct {
	Atlas  string
	Radius float64
}

func DefaultConnectomeOptions() ConnectomeOptions {
	return ConnectomeOptions{Radius: 2.0}
}

func (c ConnectomeOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "atlas":
			out.Atlas, err = coerceString(fieldPath(path, key), val)
		case "radius":
			out.Radius, err = coerceFloat(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c ConnectomeOptions) fields() map[string]any {
	return map[string]any{
		"atlas":  c.Atlas,
		"radius": c.Radius,
	}
}

// TractMapOptions is the variant for tract density and surface mapping.
type TractMapOptions struct {
	VoxelSize    []float64
	TractQuery   string
	SurfaceQuery string
}

func DefaultTractMapOptions() TractMapOptions {
	return TractMapOptions{}
}

func (c TractMapOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "voxel_size":
			out.VoxelSize, err = coerceFloatSlice(fieldPath(path, key), val)
		case "tract_query":
			out.TractQuery, err = coerceString(fieldPath(path, key), val)
		case "surface_query":
			out.SurfaceQuery, err = coerceString(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c TractMapOptions) fields() map[string]any {
	return map[string]any{
		"voxel_size":    c.VoxelSize,
		"tract_query":   c.TractQuery,
		"surface_query": c.SurfaceQuery,
	}
}

// ConnectivityConfig is the full connectivity stage configuration. Its
// discriminant sits at the stage root, so the variant path has no
// parent segments.
type ConnectivityConfig struct {
	Query  QueryConfig
	Method ConnectivityMethod
	Opts   Value
}

func DefaultConnectivityConfig() ConnectivityConfig {
	return ConnectivityConfig{
		Query:  DefaultQueryConfig(),
		Method: ConnectivityConnectome,
		Opts:   DefaultConnectomeOptions(),
	}
}

func (c ConnectivityConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "query":
			out.Query, err = mergeChild(path, key, out.Query, val)
		case "method":
			out.Method, err = coerceEnum(fieldPath(path, key), val, connectivityMethods)
		case "opts":
			out.Opts, err = mergeOpts(path, key, out.Opts, val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c ConnectivityConfig) fields() map[string]any {
	return map[string]any{
		"query":  c.Query,
		"method": string(c.Method),
		"opts":   c.Opts,
	}
}

// ConnectivityDiscriminants declares the dynamic variant selected by
// the connectivity method.
func ConnectivityDiscriminants() DiscriminantMap {
	return DiscriminantMap{
		"method": VariantTable{
			string(ConnectivityConnectome): {
				New: func() Value { return DefaultConnectomeOptions() },
				Is:  func(v Value) bool { _, ok := v.(ConnectomeOptions); return ok },
			},
			string(ConnectivityTract): {
				New: func() Value { return DefaultTractMapOptions() },
				Is:  func(v Value) bool { _, ok := v.(TractMapOptions); return ok },
			},
		},
	}
}
