package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// loadCache is the read-through file cache. Entries are keyed by the
// path as given and live for the process lifetime; a cached document is
// never written to after insertion, so concurrent stage builds may
// share it read-only.
var loadCache = struct {
	mu    sync.Mutex
	files map[string]map[string]any
}{files: make(map[string]map[string]any)}

// LoadFile loads a YAML configuration file into a nested map, keyed at
// the top level by stage name. Repeated loads of the same path return
// the identical parsed document.
func LoadFile(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}

	loadCache.mu.Lock()
	defer loadCache.mu.Unlock()
	if cached, ok := loadCache.files[path]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	loadCache.files[path] = parsed
	return parsed, nil
}

// StageLayer extracts the UpdateTree for one stage from a configuration
// file. An empty path yields a nil layer, and a file that does not
// mention the stage yields an empty layer; a file may configure only a
// subset of stages.
func StageLayer(path, stage string) (UpdateTree, error) {
	if path == "" {
		return nil, nil
	}
	parsed, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	sub, ok := parsed[stage]
	if !ok || sub == nil {
		return UpdateTree{}, nil
	}
	tree, ok := asTree(sub)
	if !ok {
		return nil, &TypeMismatchError{Field: stage, Value: sub, Want: "mapping"}
	}
	return tree, nil
}
