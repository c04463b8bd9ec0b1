package units

import "fmt"

// AtomOverlay is a single user-defined atom definition supplied by an
// outer configuration layer. It mirrors atomEntry's shape using
// exported, serialization-friendly types.
type AtomOverlay struct {
	Names        []string
	Factor       float64
	Vector       Vector
	PrefixPolicy string // "none" | "sub" | "super" | "any"
}

func prefixClassFromPolicy(policy string) (prefixClass, error) {
	switch policy {
	case "", "none":
		return prefixNone, nil
	case "sub":
		return prefixSub, nil
	case "super":
		return prefixSuper, nil
	case "any":
		return prefixAny, nil
	default:
		return 0, fmt.Errorf("unknown prefix policy %q", policy)
	}
}

// NewTableWithOverlay returns a new Table containing every atom in the
// package's static table plus the given overlay atoms. It never
// mutates the static table; overlay may be nil, which yields a table
// holding only the built-in atoms.
//
// A name collision between an overlay atom and an existing atom (built
// in or from an earlier overlay entry) is an error: overlays extend
// the recognised vocabulary, they don't redefine it.
func NewTableWithOverlay(overlay []AtomOverlay) (*Table, error) {
	entries := make([]atomEntry, 0, len(atomTable)+len(overlay))
	entries = append(entries, atomTable...)
	seen := make(map[string]bool, len(entries)*2)
	for _, e := range entries {
		for _, n := range e.names {
			seen[n] = true
		}
	}

	for _, o := range overlay {
		if len(o.Names) == 0 {
			return nil, fmt.Errorf("overlay atom has no name")
		}
		class, err := prefixClassFromPolicy(o.PrefixPolicy)
		if err != nil {
			return nil, err
		}
		for _, n := range o.Names {
			if n == "" {
				return nil, fmt.Errorf("overlay atom has an empty name")
			}
			if seen[n] {
				return nil, fmt.Errorf("overlay atom %q collides with an existing atom", n)
			}
		}
		entries = append(entries, atomEntry{
			names:  append([]string(nil), o.Names...),
			factor: o.Factor,
			vector: o.Vector,
			class:  class,
		})
		for _, n := range o.Names {
			seen[n] = true
		}
	}

	return buildTable(entries), nil
}
