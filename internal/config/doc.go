// Package config builds fully-resolved, strongly-typed stage
// configurations from three layered sources: compiled-in defaults, an
// optional YAML file, and command-line overrides.
//
// Every stage configuration is a tree of value types implementing the
// sealed Value interface. Merging is non-destructive (a layer never
// resets fields it does not mention) and side-effect free (every merge
// returns a new value). Fields whose legal shape depends on a sibling
// discriminant, such as the undistortion method's option set, are
// declared in a DiscriminantMap and swapped to the matching variant
// during Build, preserving any settings shared between the old and new
// variant types.
package config
