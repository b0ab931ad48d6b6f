package config

// Build assembles a fully-resolved configuration from its three layers.
// Precedence is defaults < file < CLI.
//
// The pass order exists because either layer may change a discriminant,
// and the discriminant must be resolved before values aimed at the
// newly-selected variant can land: variant resolution can replace an
// opts subtree with a fresh instance of a different concrete type, so
// the file and CLI layers are applied once more at the end to rebind
// any values the earlier passes wrote into the pre-resolution variant.
//
// Construction is all-or-nothing: the first error aborts and no partial
// configuration is returned.
func Build(defaults Value, fileLayer, cliLayer UpdateTree, discriminants DiscriminantMap) (Value, error) {
	v := defaults
	var err error

	if len(fileLayer) > 0 {
		if v, err = v.merge("", fileLayer); err != nil {
			return nil, err
		}
	}
	if len(discriminants) > 0 {
		if v, err = resolveVariants(v, discriminants); err != nil {
			return nil, err
		}
	}
	if len(cliLayer) > 0 {
		if v, err = v.merge("", cliLayer); err != nil {
			return nil, err
		}
	}
	if len(discriminants) > 0 {
		if v, err = resolveVariants(v, discriminants); err != nil {
			return nil, err
		}
	}
	if len(fileLayer) > 0 {
		if v, err = v.merge("", fileLayer); err != nil {
			return nil, err
		}
	}
	if len(cliLayer) > 0 {
		if v, err = v.merge("", cliLayer); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// BuildConfig is the typed convenience wrapper around Build.
func BuildConfig[T Value](defaults T, fileLayer, cliLayer UpdateTree, discriminants DiscriminantMap) (T, error) {
	built, err := Build(defaults, fileLayer, cliLayer, discriminants)
	if err != nil {
		var zero T
		return zero, err
	}
	return built.(T), nil
}
