package config

// Coercion helpers used by the per-type merge implementations. Each
// helper accepts the raw value found in an UpdateTree, which may come
// from a decoded YAML document, from a typed command-line flag, or from
// another node's field snapshot during variant resolution.

// asTree normalizes the two map shapes an update value can arrive in.
func asTree(val any) (UpdateTree, bool) {
	switch m := val.(type) {
	case UpdateTree:
		return m, true
	case map[string]any:
		return UpdateTree(m), true
	}
	return nil, false
}

func coerceBool(field string, val any) (bool, error) {
	if b, ok := val.(bool); ok {
		return b, nil
	}
	return false, &TypeMismatchError{Field: field, Value: val, Want: "bool"}
}

func coerceInt(field string, val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, &TypeMismatchError{Field: field, Value: val, Want: "int"}
}

func coerceFloat(field string, val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, &TypeMismatchError{Field: field, Value: val, Want: "float"}
}

func coerceString(field string, val any) (string, error) {
	if s, ok := val.(string); ok {
		return s, nil
	}
	return "", &TypeMismatchError{Field: field, Value: val, Want: "string"}
}

func coerceStringSlice(field string, val any) ([]string, error) {
	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeMismatchError{Field: field, Value: item, Want: "string"}
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, &TypeMismatchError{Field: field, Value: val, Want: "list of strings"}
}

func coerceIntSlice(field string, val any) ([]int, error) {
	switch v := val.(type) {
	case []int:
		out := make([]int, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			n, err := coerceInt(field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}
	return nil, &TypeMismatchError{Field: field, Value: val, Want: "list of ints"}
}

func coerceFloatSlice(field string, val any) ([]float64, error) {
	switch v := val.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, err := coerceFloat(field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	}
	return nil, &TypeMismatchError{Field: field, Value: val, Want: "list of floats"}
}

func coerceStringMap(field string, val any) (map[string]string, error) {
	switch v := val.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, nil
	case UpdateTree, map[string]any:
		tree, _ := asTree(v)
		out := make(map[string]string, len(tree))
		for k, item := range tree {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeMismatchError{Field: fieldPath(field, k), Value: item, Want: "string"}
			}
			out[k] = s
		}
		return out, nil
	}
	return nil, &TypeMismatchError{Field: field, Value: val, Want: "mapping of strings"}
}

// coerceEnum validates an enum update against the legal value set.
// Accepts either the enum type itself or its raw string form.
func coerceEnum[E ~string](field string, val any, legal []E) (E, error) {
	var raw string
	if v, ok := val.(E); ok {
		raw = string(v)
	} else if s, ok := val.(string); ok {
		raw = s
	} else {
		if _, ok := asTree(val); ok {
			return "", &TypeMismatchError{Field: field, Value: val, Want: "string"}
		}
		return "", &InvalidEnumValueError{Field: field, Value: val, Legal: enumStrings(legal)}
	}
	for _, l := range legal {
		if string(l) == raw {
			return l, nil
		}
	}
	return "", &InvalidEnumValueError{Field: field, Value: raw, Legal: enumStrings(legal)}
}

func enumStrings[E ~string](legal []E) []string {
	out := make([]string, len(legal))
	for i, l := range legal {
		out[i] = string(l)
	}
	return out
}

// mergeChild merges an update into a nested configuration node. The
// update may be a nested mapping, in which case the child merges it
// recursively, or a node of the same concrete type, in which case it
// replaces the child wholesale (used by the variant resolver when it
// rebuilds a tree).
func mergeChild[T Value](path, name string, cur T, val any) (T, error) {
	var zero T
	if direct, ok := val.(T); ok {
		return direct, nil
	}
	sub, ok := asTree(val)
	if !ok {
		return zero, &TypeMismatchError{Field: fieldPath(path, name), Value: val, Want: "mapping"}
	}
	merged, err := cur.merge(fieldPath(path, name), sub)
	if err != nil {
		return zero, err
	}
	return merged.(T), nil
}

// mergeOpts merges an update into a discriminated "opts" slot, whose
// concrete type is selected at resolution time. A Value update replaces
// the slot; a mapping merges into whatever variant currently occupies it.
func mergeOpts(path, name string, cur Value, val any) (Value, error) {
	if direct, ok := val.(Value); ok {
		return direct, nil
	}
	sub, ok := asTree(val)
	if !ok {
		return nil, &TypeMismatchError{Field: fieldPath(path, name), Value: val, Want: "mapping"}
	}
	return cur.merge(fieldPath(path, name), sub)
}
