package config

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError indicates a configuration file with an extension
// other than the supported YAML formats.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format %q: only YAML files (.yaml, .yml) are supported", e.Path)
}

// InvalidEnumValueError indicates a value outside the legal set of an
// enum-typed field.
type InvalidEnumValueError struct {
	Field string
	Value any
	Legal []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %q: valid values are [%s]",
		e.Value, e.Field, strings.Join(e.Legal, ", "))
}

// UnknownVariantError indicates a discriminant value with no entry in its
// variant table.
type UnknownVariantError struct {
	Path  string
	Value string
	Known []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown method %q for %q: known methods are [%s]",
		e.Value, e.Path, strings.Join(e.Known, ", "))
}

// TypeMismatchError indicates an update whose shape does not match the
// target field, such as a nested mapping supplied for a scalar field.
type TypeMismatchError struct {
	Field string
	Value any
	Want  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot assign %T value to %q: want %s", e.Value, e.Field, e.Want)
}
