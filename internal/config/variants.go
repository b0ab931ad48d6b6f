package config

import (
	"fmt"
	"sort"
	"strings"
)

// Variant describes one concrete option set selectable by a
// discriminant value.
type Variant struct {
	// New returns the variant's canonical default instance.
	New func() Value
	// Is reports whether a node already has the variant's concrete type.
	Is func(Value) bool
}

// VariantTable maps a discriminant value to the variant it selects.
type VariantTable map[string]Variant

// DiscriminantMap maps a dotted discriminant field path (for example
// "undistort.method") to the variant table its value selects from. The
// variant occupies the "opts" field next to the discriminant.
type DiscriminantMap map[string]VariantTable

// resolveVariants walks every registered discriminant and swaps the
// sibling opts node to the variant the discriminant's current value
// selects. A node that already has the resolved type is left unchanged;
// otherwise a fresh variant instance is seeded from the old node's
// fields wherever names coincide, so shared settings survive a method
// change. Paths are processed in sorted order for determinism.
func resolveVariants(root Value, discriminants DiscriminantMap) (Value, error) {
	paths := make([]string, 0, len(discriminants))
	for p := range discriminants {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var err error
	for _, p := range paths {
		root, err = resolveVariant(root, p, discriminants[p])
		if err != nil {
			return nil, err
		}
	}
	return root, nil
}

func resolveVariant(root Value, discPath string, table VariantTable) (Value, error) {
	parts := strings.Split(discPath, ".")
	parentParts := parts[:len(parts)-1]
	discName := parts[len(parts)-1]

	// Walk to the node holding the discriminant, keeping the ancestor
	// chain so the updated subtree can be written back.
	chain := []Value{root}
	cur := root
	for _, name := range parentParts {
		child, ok := cur.fields()[name]
		if !ok {
			return nil, fmt.Errorf("config: discriminant path %q: no field %q", discPath, name)
		}
		node, ok := child.(Value)
		if !ok {
			return nil, fmt.Errorf("config: discriminant path %q: field %q is not a config node", discPath, name)
		}
		chain = append(chain, node)
		cur = node
	}

	raw, ok := cur.fields()[discName]
	if !ok {
		return nil, fmt.Errorf("config: discriminant field %q not found", discPath)
	}
	disc, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("config: discriminant field %q is not a string", discPath)
	}

	entry, ok := table[disc]
	if !ok {
		return nil, &UnknownVariantError{Path: discPath, Value: disc, Known: tableKeys(table)}
	}

	parentPath := strings.Join(parentParts, ".")
	curOpts, _ := cur.fields()["opts"].(Value)
	if curOpts != nil && entry.Is(curOpts) {
		return root, nil
	}

	fresh := entry.New()
	if curOpts != nil {
		// Seed fields shared between the old and new variant. Fields
		// unique to the old variant fall out of the permissive merge.
		seeded, err := fresh.merge(fieldPath(parentPath, "opts"), UpdateTree(curOpts.fields()))
		if err != nil {
			return nil, err
		}
		fresh = seeded
	}

	updated, err := chain[len(chain)-1].merge(parentPath, UpdateTree{"opts": fresh})
	if err != nil {
		return nil, err
	}
	for i := len(chain) - 2; i >= 0; i-- {
		prefix := strings.Join(parentParts[:i], ".")
		updated, err = chain[i].merge(prefix, UpdateTree{parentParts[i]: updated})
		if err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func tableKeys(table VariantTable) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
