// Package config loads user-supplied unit-atom definitions that extend
// the parser's static atom table at process start.
package config

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fitsunits/fitsunits/units"
)

// AtomDef is one user-defined atom, as read from the overlay YAML file.
// It mirrors units.AtomOverlay but uses serialization-friendly types: the
// base-quantity vector is a map keyed by quantity name (e.g. "length")
// rather than the fixed-size array the parser uses internally.
type AtomDef struct {
	Name         []string           `yaml:"name"`
	Factor       float64            `yaml:"factor"`
	Vector       map[string]float64 `yaml:"vector"`
	PrefixPolicy string             `yaml:"prefixPolicy"`
}

// Overlay is an ordered list of user-defined atoms.
type Overlay []AtomDef

// Validate checks that every atom definition in the overlay is
// well-formed: it has at least one name, its vector keys are recognised
// base-quantity names, and its prefix policy (if set) is one of the
// four recognised values. It does not check for collisions against the
// static table or against other entries in the overlay -- that is
// units.NewTableWithOverlay's job, since only it knows the full set of
// names already in play.
func (o Overlay) Validate() error {
	for _, def := range o {
		if err := def.validate(); err != nil {
			name := "<unnamed>"
			if len(def.Name) > 0 {
				name = def.Name[0]
			}
			return errors.Wrapf(err, "invalid atom definition %q", name)
		}
	}
	return nil
}

func (def AtomDef) validate() error {
	if len(def.Name) == 0 {
		return fmt.Errorf("must have at least one name")
	}
	for _, n := range def.Name {
		if n == "" {
			return fmt.Errorf("name must not be empty")
		}
	}
	switch def.PrefixPolicy {
	case "", "none", "sub", "super", "any":
	default:
		return fmt.Errorf("unknown prefixPolicy %q", def.PrefixPolicy)
	}
	for q := range def.Vector {
		if _, ok := units.QuantityFromName(q); !ok {
			return fmt.Errorf("unknown base quantity %q", q)
		}
	}
	return nil
}

// Atoms converts the overlay into the form units.NewTableWithOverlay
// expects, translating each vector map into a units.Vector.
func (o Overlay) Atoms() ([]units.AtomOverlay, error) {
	out := make([]units.AtomOverlay, 0, len(o))
	for _, def := range o {
		vec, err := units.VectorFromMap(def.Vector)
		if err != nil {
			return nil, errors.Wrapf(err, "atom %q", def.Name[0])
		}
		out = append(out, units.AtomOverlay{
			Names:        def.Name,
			Factor:       def.Factor,
			Vector:       vec,
			PrefixPolicy: def.PrefixPolicy,
		})
	}
	return out, nil
}

// Table builds a parser lookup table containing the static atoms plus
// this overlay. It never mutates package-level parser state.
func (o Overlay) Table() (*units.Table, error) {
	atoms, err := o.Atoms()
	if err != nil {
		return nil, err
	}
	return units.NewTableWithOverlay(atoms)
}
