package config

// Runner names the execution backend used to launch wrapped tools.
type Runner string

const (
	RunnerLocal       Runner = "local"
	RunnerDocker      Runner = "docker"
	RunnerPodman      Runner = "podman"
	RunnerApptainer   Runner = "apptainer"
	RunnerSingularity Runner = "singularity"
)

var runners = []Runner{RunnerLocal, RunnerDocker, RunnerPodman, RunnerApptainer, RunnerSingularity}

// RunnerConfig selects the execution backend and optional image
// overrides for containerized runners.
type RunnerConfig struct {
	Name   Runner
	Images map[string]string
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{Name: RunnerLocal}
}

func (c RunnerConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "name":
			out.Name, err = coerceEnum(fieldPath(path, key), val, runners)
		case "images":
			out.Images, err = coerceStringMap(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c RunnerConfig) fields() map[string]any {
	return map[string]any{
		"name":   string(c.Name),
		"images": c.Images,
	}
}

// GlobalOpts is shared configuration across all analysis stages.
type GlobalOpts struct {
	ConfigFile string
	Threads    int
	IndexPath  string
	Runner     RunnerConfig
	Graph      bool
	SeedNumber int
	WorkDir    string
	KeepWork   bool
	B0Thresh   int
}

func DefaultGlobalOpts() GlobalOpts {
	return GlobalOpts{
		Threads:    1,
		Runner:     DefaultRunnerConfig(),
		SeedNumber: 99,
		WorkDir:    "styx_tmp",
		B0Thresh:   10,
	}
}

func (c GlobalOpts) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "config":
			out.ConfigFile, err = coerceString(fieldPath(path, key), val)
		case "threads":
			out.Threads, err = coerceInt(fieldPath(path, key), val)
		case "index_path":
			out.IndexPath, err = coerceString(fieldPath(path, key), val)
		case "runner":
			out.Runner, err = mergeChild(path, key, out.Runner, val)
		case "graph":
			out.Graph, err = coerceBool(fieldPath(path, key), val)
		case "seed_number":
			out.SeedNumber, err = coerceInt(fieldPath(path, key), val)
		case "work_dir":
			out.WorkDir, err = coerceString(fieldPath(path, key), val)
		case "work_keep":
			out.KeepWork, err = coerceBool(fieldPath(path, key), val)
		case "b0_thresh":
			out.B0Thresh, err = coerceInt(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c GlobalOpts) fields() map[string]any {
	return map[string]any{
		"config":      c.ConfigFile,
		"threads":     c.Threads,
		"index_path":  c.IndexPath,
		"runner":      c.Runner,
		"graph":       c.Graph,
		"seed_number": c.SeedNumber,
		"work_dir":    c.WorkDir,
		"work_keep":   c.KeepWork,
		"b0_thresh":   c.B0Thresh,
	}
}

// QueryConfig filters the indexed dataset down to the files a stage
// operates on. Empty fields impose no constraint.
type QueryConfig struct {
	Participant string
	DWI         string
	T1w         string
	Mask        string
	Fmap        string
}

func DefaultQueryConfig() QueryConfig {
	return QueryConfig{}
}

func (c QueryConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "participant":
			out.Participant, err = coerceString(fieldPath(path, key), val)
		case "dwi":
			out.DWI, err = coerceString(fieldPath(path, key), val)
		case "t1w":
			out.T1w, err = coerceString(fieldPath(path, key), val)
		case "mask":
			out.Mask, err = coerceString(fieldPath(path, key), val)
		case "fmap":
			out.Fmap, err = coerceString(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c QueryConfig) fields() map[string]any {
	return map[string]any{
		"participant": c.Participant,
		"dwi":         c.DWI,
		"t1w":         c.T1w,
		"mask":        c.Mask,
		"fmap":        c.Fmap,
	}
}

// IndexConfig configures the dataset indexing stage.
type IndexConfig struct {
	Overwrite bool
}

func DefaultIndexConfig() IndexConfig {
	return IndexConfig{}
}

func (c IndexConfig) merge(path string, updates UpdateTree) (Value, error) {
	out := c
	for key, val := range updates {
		var err error
		switch key {
		case "overwrite":
			out.Overwrite, err = coerceBool(fieldPath(path, key), val)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c IndexConfig) fields() map[string]any {
	return map[string]any{"overwrite": c.Overwrite}
}
