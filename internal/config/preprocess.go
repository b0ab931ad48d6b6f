package config

// MetadataConfig supplies acquisition metadata missing from sidecars.
type MetadataConfig struct {
	PEDirs      []string
	EchoSpacing float64
}

func DefaultMetadataConfig() MetadataConfig {
	return MetadataConfig{}
}

func (c MetadataConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "pe_dirs":
			out.PEDirs, err = coerceStringSlice(fieldPath(path, key), val)
		case "echo_spacing":
			out.EchoSpacing, err = coerceFloat(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c MetadataConfig) fields() map[string]any {
	return map[string]any{
		"pe_dirs":      c.PEDirs,
		"echo_spacing": c.EchoSpacing,
	}
}

// DenoiseEstimator selects the PCA noise estimator.
type DenoiseEstimator string

const (
	DenoiseExp1 DenoiseEstimator = "Exp1"
	DenoiseExp2 DenoiseEstimator = "Exp2"
)

var denoiseEstimators = []DenoiseEstimator{DenoiseExp1, DenoiseExp2}

// DenoiseConfig configures the PCA denoising step.
type DenoiseConfig struct {
	Skip      bool
	Map       bool
	Estimator DenoiseEstimator
}

func DefaultDenoiseConfig() DenoiseConfig {
	return DenoiseConfig{Estimator: DenoiseExp2}
}

func (c DenoiseConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "map":
			out.Map, err = coerceBool(fieldPath(path, key), val)
		case "estimator":
			out.Estimator, err = coerceEnum(fieldPath(path, key), val, denoiseEstimators)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c DenoiseConfig) fields() map[string]any {
	return map[string]any{
		"skip":      c.Skip,
		"map":       c.Map,
		"estimator": string(c.Estimator),
	}
}

// UnringConfig configures Gibbs ringing removal.
type UnringConfig struct {
	Skip bool
	Axes []int
}

func DefaultUnringConfig() UnringConfig {
	return UnringConfig{Axes: []int{0, 1}}
}

func (c UnringConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "axes":
			out.Axes, err = coerceIntSlice(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c UnringConfig) fields() map[string]any {
	return map[string]any{
		"skip": c.Skip,
		"axes": c.Axes,
	}
}

// EddySLM selects eddy's second-level model.
type EddySLM string

const (
	EddySLMNone      EddySLM = "none"
	EddySLMLinear    EddySLM = "linear"
	EddySLMQuadratic EddySLM = "quadratic"
)

var eddySLMs = []EddySLM{EddySLMNone, EddySLMLinear, EddySLMQuadratic}

// EddyConfig holds FSL eddy options shared by the undistortion methods
// that run eddy after their fieldmap estimation.
type EddyConfig struct {
	SLM       EddySLM
	CNR       bool
	Repol     bool
	Residuals bool
	Shelled   bool
}

func DefaultEddyConfig() EddyConfig {
	return EddyConfig{SLM: EddySLMNone}
}

func (c EddyConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "slm":
			out.SLM, err = coerceEnum(fieldPath(path, key), val, eddySLMs)
		case "cnr":
			out.CNR, err = coerceBool(fieldPath(path, key), val)
		case "repol":
			out.Repol, err = coerceBool(fieldPath(path, key), val)
		case "residuals":
			out.Residuals, err = coerceBool(fieldPath(path, key), val)
		case "shelled":
			out.Shelled, err = coerceBool(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c EddyConfig) fields() map[string]any {
	return map[string]any{
		"slm":       string(c.SLM),
		"cnr":       c.CNR,
		"repol":     c.Repol,
		"residuals": c.Residuals,
		"shelled":   c.Shelled,
	}
}

// TopupConfig holds FSL topup's own knobs.
type TopupConfig struct {
	Config      string
	ReadoutTime float64
}

func DefaultTopupConfig() TopupConfig {
	return TopupConfig{Config: "b02b0_macaque"}
}

func (c TopupConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "config":
			out.Config, err = coerceString(fieldPath(path, key), val)
		case "readout_time":
			out.ReadoutTime, err = coerceFloat(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c TopupConfig) fields() map[string]any {
	return map[string]any{
		"config":       c.Config,
		"readout_time": c.ReadoutTime,
	}
}

// UndistortMethod selects the distortion correction method, and with it
// the concrete type of the sibling opts node.
type UndistortMethod string

const (
	UndistortTopup      UndistortMethod = "topup"
	UndistortFieldmap   UndistortMethod = "fieldmap"
	UndistortFugue      UndistortMethod = "fugue"
	UndistortEddymotion UndistortMethod = "eddymotion"
)

var undistortMethods = []UndistortMethod{
	UndistortTopup, UndistortFieldmap, UndistortFugue, UndistortEddymotion,
}

// TopupOptions is the variant for reverse phase-encode correction:
// topup fieldmap estimation followed by eddy.
type TopupOptions struct {
	Skip  bool
	Topup TopupConfig
	Eddy  EddyConfig
}

func DefaultTopupOptions() TopupOptions {
	return TopupOptions{
		Topup: DefaultTopupConfig(),
		Eddy:  DefaultEddyConfig(),
	}
}

func (c TopupOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "topup":
			out.Topup, err = mergeChild(path, key, out.Topup, val)
		case "eddy":
			out.Eddy, err = mergeChild(path, key, out.Eddy, val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c TopupOptions) fields() map[string]any {
	return map[string]any{
		"skip":  c.Skip,
		"topup": c.Topup,
		"eddy":  c.Eddy,
	}
}

// FieldmapOptions is the variant for acquired-fieldmap correction
// followed by eddy.
type FieldmapOptions struct {
	Skip   bool
	Smooth float64
	Eddy   EddyConfig
}

func DefaultFieldmapOptions() FieldmapOptions {
	return FieldmapOptions{Eddy: DefaultEddyConfig()}
}

func (c FieldmapOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "smooth":
			out.Smooth, err = coerceFloat(fieldPath(path, key), val)
		case "eddy":
			out.Eddy, err = mergeChild(path, key, out.Eddy, val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c FieldmapOptions) fields() map[string]any {
	return map[string]any{
		"skip":   c.Skip,
		"smooth": c.Smooth,
		"eddy":   c.Eddy,
	}
}

// FugueOptions is the variant for phase-unwrapped fugue correction.
type FugueOptions struct {
	Skip        bool
	SmoothSigma float64
	DwellTime   float64
}

func DefaultFugueOptions() FugueOptions {
	return FugueOptions{SmoothSigma: 2.0}
}

func (c FugueOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "smooth_sigma":
			out.SmoothSigma, err = coerceFloat(fieldPath(path, key), val)
		case "dwell_time":
			out.DwellTime, err = coerceFloat(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c FugueOptions) fields() map[string]any {
	return map[string]any{
		"skip":         c.Skip,
		"smooth_sigma": c.SmoothSigma,
		"dwell_time":   c.DwellTime,
	}
}

// EddymotionOptions is the variant for model-based eddymotion
// correction, used when no fieldmap data exists.
type EddymotionOptions struct {
	Skip  bool
	Iters int
}

func DefaultEddymotionOptions() EddymotionOptions {
	return EddymotionOptions{Iters: 2}
}

func (c EddymotionOptions) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "iters":
			out.Iters, err = coerceInt(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c EddymotionOptions) fields() map[string]any {
	return map[string]any{
		"skip":  c.Skip,
		"iters": c.Iters,
	}
}

// UndistortConfig selects and configures distortion correction.
type UndistortConfig struct {
	Method UndistortMethod
	Opts   Value
}

func DefaultUndistortConfig() UndistortConfig {
	return UndistortConfig{
		Method: UndistortTopup,
		Opts:   DefaultTopupOptions(),
	}
}

func (c UndistortConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "method":
			out.Method, err = coerceEnum(fieldPath(path, key), val, undistortMethods)
		case "opts":
			out.Opts, err = mergeOpts(path, key, out.Opts, val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c UndistortConfig) fields() map[string]any {
	return map[string]any{
		"method": string(c.Method),
		"opts":   c.Opts,
	}
}

// BiascorrectConfig configures N4 bias field correction.
type BiascorrectConfig struct {
	Skip    bool
	Spacing float64
	Iters   int
	Shrink  int
}

func DefaultBiascorrectConfig() BiascorrectConfig {
	return BiascorrectConfig{Spacing: 100.0, Iters: 1000, Shrink: 4}
}

func (c BiascorrectConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "spacing":
			out.Spacing, err = coerceFloat(fieldPath(path, key), val)
		case "iters":
			out.Iters, err = coerceInt(fieldPath(path, key), val)
		case "shrink":
			out.Shrink, err = coerceInt(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c BiascorrectConfig) fields() map[string]any {
	return map[string]any{
		"skip":    c.Skip,
		"spacing": c.Spacing,
		"iters":   c.Iters,
		"shrink":  c.Shrink,
	}
}

// RegistrationMetric selects the similarity metric.
type RegistrationMetric string

const (
	RegistrationSSD   RegistrationMetric = "SSD"
	RegistrationMI    RegistrationMetric = "MI"
	RegistrationNMI   RegistrationMetric = "NMI"
	RegistrationMahal RegistrationMetric = "MAHAL"
)

var registrationMetrics = []RegistrationMetric{
	RegistrationSSD, RegistrationMI, RegistrationNMI, RegistrationMahal,
}

// RegistrationInit selects transform initialization.
type RegistrationInit string

const (
	RegistrationInitIdentity     RegistrationInit = "identity"
	RegistrationInitImageCenters RegistrationInit = "image-centers"
)

var registrationInits = []RegistrationInit{
	RegistrationInitIdentity, RegistrationInitImageCenters,
}

// RegistrationConfig configures b0-to-T1w registration.
type RegistrationConfig struct {
	Skip   bool
	Metric RegistrationMetric
	Iters  string
	Init   RegistrationInit
}

func DefaultRegistrationConfig() RegistrationConfig {
	return RegistrationConfig{
		Metric: RegistrationNMI,
		Iters:  "50x50",
		Init:   RegistrationInitIdentity,
	}
}

func (c RegistrationConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "skip":
			out.Skip, err = coerceBool(fieldPath(path, key), val)
		case "metric":
			out.Metric, err = coerceEnum(fieldPath(path, key), val, registrationMetrics)
		case "iters":
			out.Iters, err = coerceString(fieldPath(path, key), val)
		case "init":
			out.Init, err = coerceEnum(fieldPath(path, key), val, registrationInits)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c RegistrationConfig) fields() map[string]any {
	return map[string]any{
		"skip":   c.Skip,
		"metric": string(c.Metric),
		"iters":  c.Iters,
		"init":   string(c.Init),
	}
}

// PreprocessConfig is the full preprocessing stage configuration.
type PreprocessConfig struct {
	Query        QueryConfig
	Metadata     MetadataConfig
	Denoise      DenoiseConfig
	Unring       UnringConfig
	Undistort    UndistortConfig
	Biascorrect  BiascorrectConfig
	Registration RegistrationConfig
}

func DefaultPreprocessConfig() PreprocessConfig {
	return PreprocessConfig{
		Query:        DefaultQueryConfig(),
		Metadata:     DefaultMetadataConfig(),
		Denoise:      DefaultDenoiseConfig(),
		Unring:       DefaultUnringConfig(),
		Undistort:    DefaultUndistortConfig(),
		Biascorrect:  DefaultBiascorrectConfig(),
		Registration: DefaultRegistrationConfig(),
	}
}

func (c PreprocessConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "query":
			out.Query, err = mergeChild(path, key, out.Query, val)
		case "metadata":
			out.Metadata, err = mergeChild(path, key, out.Metadata, val)
		case "denoise":
			out.Denoise, err = mergeChild(path, key, out.Denoise, val)
		case "unring":
			out.Unring, err = mergeChild(path, key, out.Unring, val)
		case "undistort":
			out.Undistort, err = mergeChild(path, key, out.Undistort, val)
		case "biascorrect":
			out.Biascorrect, err = mergeChild(path, key, out.Biascorrect, val)
		case "registration":
			out.Registration, err = mergeChild(path, key, out.Registration, val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c PreprocessConfig) fields() map[string]any {
	return map[string]any{
		"query":        c.Query,
		"metadata":     c.Metadata,
		"denoise":      c.Denoise,
		"unring":       c.Unring,
		"undistort":    c.Undistort,
		"biascorrect":  c.Biascorrect,
		"registration": c.Registration,
	}
}

// PreprocessDiscriminants declares the dynamic variant selected by the
// undistortion method.
func PreprocessDiscriminants() DiscriminantMap {
	return DiscriminantMap{
		"undistort.method": VariantTable{
			string(UndistortTopup): {
				New: func() Value { return DefaultTopupOptions() },
				Is:  func(v Value) bool { _, ok := v.(TopupOptions); return ok },
			},
			string(UndistortFieldmap): {
				New: func() Value { return DefaultFieldmapOptions() },
				Is:  func(v Value) bool { _, ok := v.(FieldmapOptions); return ok },
			},
			string(UndistortFugue): {
				New: func() Value { return DefaultFugueOptions() },
				Is:  func(v Value) bool { _, ok := v.(FugueOptions); return ok },
			},
			string(UndistortEddymotion): {
				New: func() Value { return DefaultEddymotionOptions() },
				Is:  func(v Value) bool { _, ok := v.(EddymotionOptions); return ok },
			},
		},
	}
}
