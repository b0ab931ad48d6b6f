package cmd

import (
	"strings"

	"github.com/spf13/pflag"
)

// changedFlagValues collects only the flags the user actually set,
// keyed by the flag name with dashes folded to underscores. Unset flags
// never appear, so flag defaults cannot override file-layer values.
func changedFlagValues(fs *pflag.FlagSet) map[string]any {
	out := make(map[string]any)
	fs.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch f.Value.Type() {
		case "bool":
			v, _ := fs.GetBool(f.Name)
			out[key] = v
		case "int":
			v, _ := fs.GetInt(f.Name)
			out[key] = v
		case "float64":
			v, _ := fs.GetFloat64(f.Name)
			out[key] = v
		case "stringSlice":
			v, _ := fs.GetStringSlice(f.Name)
			out[key] = v
		case "intSlice":
			v, _ := fs.GetIntSlice(f.Name)
			out[key] = v
		case "float64Slice":
			v, _ := fs.GetFloat64Slice(f.Name)
			out[key] = v
		default:
			out[key] = f.Value.String()
		}
	})
	return out
}

// flagKeys lists every flag name in the set, dashes folded to
// underscores, for building prefix-based key maps.
func flagKeys(fs *pflag.FlagSet) []string {
	var keys []string
	fs.VisitAll(func(f *pflag.Flag) {
		keys = append(keys, strings.ReplaceAll(f.Name, "-", "_"))
	})
	return keys
}
