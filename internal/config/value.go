package config

// UpdateTree is a partial, untyped nested mapping describing only the
// fields a configuration layer wishes to override. Keys present at any
// depth must name fields of the target configuration; unknown keys are
// ignored so the schema and the layers can evolve independently.
type UpdateTree map[string]any

// Value is a node in a resolved configuration tree. Every stage
// configuration and every nested sub-configuration implements it.
//
// The interface is sealed: implementations live in this package so the
// merge engine can rely on value semantics throughout.
type Value interface {
	// merge returns a copy of the node with updates applied. The
	// receiver is never mutated. path is the dotted location of the
	// node within its stage, used in error messages.
	merge(path string, updates UpdateTree) (Value, error)

	// fields returns the node's current values keyed by field name.
	// Nested configuration nodes appear as Value, enum fields as their
	// string form, everything else as its plain Go value.
	fields() map[string]any
}

// Snapshot converts a configuration value into a plain nested map,
// suitable for serialization. The result shares no structure with the
// input's internal state beyond immutable leaf values.
func Snapshot(v Value) map[string]any {
	out := make(map[string]any)
	for name, val := range v.fields() {
		if child, ok := val.(Value); ok {
			out[name] = Snapshot(child)
			continue
		}
		out[name] = val
	}
	return out
}

// Equal reports whether two configuration values are structurally equal
// field by field.
func Equal(a, b Value) bool {
	return valuesEqual(Snapshot(a), Snapshot(b))
}

func valuesEqual(a, b any) bool {
	switch va := a.(type) {
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, v := range va {
			w, ok := vb[k]
			if !ok || !valuesEqual(v, w) {
				return false
			}
		}
		return true
	case map[string]string:
		vb, ok := b.(map[string]string)
		if !ok || len(va) != len(vb) {
			return false
		}
		for k, v := range va {
			if w, ok := vb[k]; !ok || v != w {
				return false
			}
		}
		return true
	case []string:
		vb, ok := b.([]string)
		return ok && stringSlicesEqual(va, vb)
	case []int:
		vb, ok := b.([]int)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if va[i] != vb[i] {
				return false
			}
		}
		return true
	case []float64:
		vb, ok := b.([]float64)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if va[i] != vb[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fieldPath joins a parent path and a field name into a dotted path.
func fieldPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
