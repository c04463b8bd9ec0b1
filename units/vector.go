// Package units parses FITS-style unit specification strings into a
// scale factor and a base-quantity exponent vector.
package units

import "fmt"

// Quantity identifies one axis of the base-quantity vector.
// The order of these constants is part of the external contract:
// callers that serialize a Vector by index rely on this ordering.
type Quantity int

const (
	Time Quantity = iota
	Length
	Mass
	PlaneAngle
	SolidAngle
	Charge
	Mole
	Temperature
	LuminousIntensity
	SolarMassRatio
	Magnitude
	Pixel
	Count
	Voxel
	Bin
	Bit
	Beam

	numQuantities
)

var quantityNames = [numQuantities]string{
	Time:              "time",
	Length:            "length",
	Mass:              "mass",
	PlaneAngle:        "plane_angle",
	SolidAngle:        "solid_angle",
	Charge:            "charge",
	Mole:              "mole",
	Temperature:       "temperature",
	LuminousIntensity: "luminous_intensity",
	SolarMassRatio:    "mass_ratio_solar",
	Magnitude:         "magnitude",
	Pixel:             "pixel",
	Count:             "count",
	Voxel:             "voxel",
	Bin:               "bin",
	Bit:               "bit",
	Beam:              "beam",
}

// String returns the canonical name for q, or a numeric fallback for an
// out-of-range value.
func (q Quantity) String() string {
	if q < 0 || int(q) >= len(quantityNames) {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return quantityNames[q]
}

// QuantityFromName returns the Quantity with the given canonical name.
func QuantityFromName(name string) (Quantity, bool) {
	for i, n := range quantityNames {
		if n == name {
			return Quantity(i), true
		}
	}
	return 0, false
}

// Vector is a fixed-length signed exponent vector over the base
// quantities. The zero value represents a dimensionless quantity.
type Vector [numQuantities]float64

// Add returns the element-wise sum of v and other.
func (v Vector) Add(other Vector) Vector {
	var out Vector
	for i := range out {
		out[i] = v[i] + other[i]
	}
	return out
}

// Scale returns v with every element multiplied by f.
func (v Vector) Scale(f float64) Vector {
	var out Vector
	for i := range out {
		out[i] = v[i] * f
	}
	return out
}

// IsZero reports whether every element of v is zero (a dimensionless
// quantity).
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// At returns the exponent for quantity q.
func (v Vector) At(q Quantity) float64 {
	return v[q]
}

// Map returns v as a map keyed by canonical quantity name, omitting
// zero entries. This is the representation used at the config/CLI
// boundary so overlay files don't need to know the fixed array order.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64)
	for i, f := range v {
		if f != 0 {
			m[quantityNames[i]] = f
		}
	}
	return m
}

// VectorFromMap builds a Vector from a map keyed by canonical quantity
// name. It returns an error if a key doesn't match a known quantity.
func VectorFromMap(m map[string]float64) (Vector, error) {
	var v Vector
	for name, f := range m {
		q, ok := QuantityFromName(name)
		if !ok {
			return Vector{}, fmt.Errorf("unknown base quantity %q", name)
		}
		v[q] = f
	}
	return v, nil
}
