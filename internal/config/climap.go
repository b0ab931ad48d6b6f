package config

import (
	"fmt"
	"strings"
)

// KeyMap maps externally supplied flat keys (command-line parameter
// names) to dotted nested paths within a stage configuration.
type KeyMap map[string]string

// NewKeyMap merges one or more flat-key tables into a single KeyMap,
// rejecting two flat keys that target the same dotted path. Detecting
// the collision here keeps it an authoring-time error instead of a
// last-write-wins runtime hazard.
func NewKeyMap(tables ...map[string]string) (KeyMap, error) {
	out := make(KeyMap)
	targets := make(map[string]string)
	for _, table := range tables {
		for key, path := range table {
			if prev, ok := out[key]; ok && prev != path {
				return nil, fmt.Errorf("config: key %q mapped to both %q and %q", key, prev, path)
			}
			if prevKey, ok := targets[path]; ok && prevKey != key {
				return nil, fmt.Errorf("config: keys %q and %q both map to %q", prevKey, key, path)
			}
			out[key] = path
			targets[path] = key
		}
	}
	return out, nil
}

// MapParam builds key-map entries for every key carrying a prefix,
// rewriting the prefix to the given dotted path fragment. A key
// "eddy_repol" with prefix "eddy_" and replacement "undistort.opts.eddy."
// maps to "undistort.opts.eddy.repol".
func MapParam(prefix, replaceWith string, keys []string) map[string]string {
	out := make(map[string]string)
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out[k] = replaceWith + strings.TrimPrefix(k, prefix)
		}
	}
	return out
}

// FlattenToNested converts a flat key/value set into a nested
// UpdateTree. Keys with an entry in the key map are written at their
// mapped dotted path; unmapped keys are carried forward unchanged at
// the top level. Empty values are treated as "not overriding" and
// dropped.
func FlattenToNested(flat map[string]any, keys KeyMap) UpdateTree {
	nested := make(UpdateTree)
	for key, val := range flat {
		if isEmptyValue(val) {
			continue
		}
		path, ok := keys[key]
		if !ok {
			nested[key] = val
			continue
		}
		setByPath(nested, path, val)
	}
	return nested
}

// setByPath writes a value at a dot-separated path, creating
// intermediate maps as needed.
func setByPath(tree UpdateTree, path string, val any) {
	parts := strings.Split(path, ".")
	cur := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(UpdateTree)
		if !ok {
			next = make(UpdateTree)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = val
}

// isEmptyValue reports whether a flat value counts as unset. Empty
// strings, empty sequences, and nil never override; false and zero are
// valid overrides.
func isEmptyValue(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []int:
		return len(v) == 0
	case []float64:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
