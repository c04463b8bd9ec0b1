package units

import "math"

// atomEntry is one recognised atom: its spellings, conversion factor,
// base-quantity vector and prefix policy. Multiple spellings (case
// variants, synonyms) share a single atomEntry.
type atomEntry struct {
	names  []string
	factor float64
	vector Vector
	class  prefixClass
}

// atomTable is the static, immutable set of recognised unit atoms. It
// is never mutated; NewTableWithOverlay builds a derived lookup table
// instead of touching this slice.
var atomTable = []atomEntry{
	// SI base and named derived units.
	{[]string{"s"}, 1, Vector{Time: 1}, prefixAny},
	{[]string{"m"}, 1, Vector{Length: 1}, prefixAny},
	{[]string{"g"}, 1e-3, Vector{Mass: 1}, prefixAny},
	{[]string{"rad"}, 180 / math.Pi, Vector{PlaneAngle: 1}, prefixAny},
	{[]string{"sr"}, 1, Vector{SolidAngle: 1}, prefixAny},
	{[]string{"K"}, 1, Vector{Temperature: 1}, prefixAny},
	{[]string{"A"}, 1, Vector{Charge: 1, Time: -1}, prefixAny},
	{[]string{"mol"}, 1, Vector{Mole: 1}, prefixAny},
	{[]string{"cd"}, 1, Vector{LuminousIntensity: 1}, prefixAny},
	{[]string{"Hz"}, 1, Vector{Time: -1}, prefixAny},
	{[]string{"J"}, 1, Vector{Mass: 1, Length: 2, Time: -2}, prefixAny},
	{[]string{"W"}, 1, Vector{Mass: 1, Length: 2, Time: -3}, prefixAny},
	{[]string{"V"}, 1, Vector{Mass: 1, Length: 1, Time: -2, Charge: -1}, prefixAny},
	{[]string{"N"}, 1, Vector{Mass: 1, Length: 1, Time: -2}, prefixAny},
	{[]string{"Pa"}, 1, Vector{Mass: 1, Length: -1, Time: -2}, prefixAny},
	{[]string{"C"}, 1, Vector{Charge: 1}, prefixAny},
	{[]string{"ohm", "Ohm"}, 1, Vector{Mass: 1, Length: 2, Time: -1, Charge: -2}, prefixAny},
	{[]string{"S"}, 1, Vector{Mass: -1, Length: -2, Time: 1, Charge: 2}, prefixAny},
	{[]string{"F"}, 1, Vector{Mass: -1, Length: -2, Time: 3, Charge: 2}, prefixAny},
	{[]string{"Wb"}, 1, Vector{Mass: 1, Length: 2, Time: 1, Charge: -1}, prefixAny},
	{[]string{"T"}, 1, Vector{Mass: 1, Time: 1, Charge: -1}, prefixAny},
	{[]string{"H"}, 1, Vector{Mass: 1, Length: 2, Time: 2, Charge: -2}, prefixAny},
	{[]string{"lm"}, 1, Vector{LuminousIntensity: 1, SolidAngle: 1}, prefixAny},
	{[]string{"lx"}, 1, Vector{LuminousIntensity: 1, SolidAngle: 1, Length: -2}, prefixAny},

	// Physics units with an "any" prefix policy per spec §6.
	{[]string{"eV"}, 1.6021765e-19, Vector{Mass: 1, Length: 2, Time: -2}, prefixAny},
	{[]string{"Jy"}, 1e-26, Vector{Mass: 1, Time: -2}, prefixAny},
	{[]string{"R"}, 1e10 / (4 * math.Pi), Vector{Length: -2, Time: -1, SolidAngle: -1}, prefixAny},
	{[]string{"G"}, 1e-4, Vector{Mass: 1, Time: 1, Charge: -1}, prefixAny},
	{[]string{"barn"}, 1e-28, Vector{Length: 2}, prefixAny},

	// Time/astronomical/information units with a super-only prefix policy.
	{[]string{"a", "yr"}, 31557600, Vector{Time: 1}, prefixSuper},
	{[]string{"pc"}, 3.0857e16, Vector{Length: 1}, prefixSuper},
	{[]string{"bit"}, 1, Vector{Bit: 1}, prefixSuper},
	{[]string{"byte", "Byte"}, 8, Vector{Bit: 1}, prefixSuper},

	// Sub-only prefix policy.
	{[]string{"mag"}, 1, Vector{Magnitude: 1}, prefixSub},

	// GENERAL/ASTRO/DEVICE units admitting no prefix at all.
	{[]string{"deg"}, 1, Vector{PlaneAngle: 1}, prefixNone},
	{[]string{"arcmin"}, 1.0 / 60, Vector{PlaneAngle: 1}, prefixNone},
	{[]string{"arcsec"}, 1.0 / 3600, Vector{PlaneAngle: 1}, prefixNone},
	{[]string{"mas"}, 1.0 / 3.6e6, Vector{PlaneAngle: 1}, prefixNone},
	{[]string{"turn"}, 360, Vector{PlaneAngle: 1}, prefixNone},
	{[]string{"min"}, 60, Vector{Time: 1}, prefixNone},
	{[]string{"h"}, 3600, Vector{Time: 1}, prefixNone},
	{[]string{"d"}, 86400, Vector{Time: 1}, prefixNone},
	{[]string{"cy"}, 3.15576e9, Vector{Time: 1}, prefixNone},
	{[]string{"erg"}, 1e-7, Vector{Mass: 1, Length: 2, Time: -2}, prefixNone},
	{[]string{"Ry"}, 13.605692 * 1.6021765e-19, Vector{Mass: 1, Length: 2, Time: -2}, prefixNone},
	{[]string{"u"}, 1.6605387e-27, Vector{Mass: 1}, prefixNone},
	{[]string{"D"}, 1e-29 / 3, Vector{Charge: 1, Length: 1}, prefixNone},
	{[]string{"angstrom", "Angstrom"}, 1e-10, Vector{Length: 1}, prefixNone},
	{[]string{"AU"}, 1.49598e11, Vector{Length: 1}, prefixNone},
	{[]string{"lyr"}, 2.99792458e8 * 31557600, Vector{Length: 1}, prefixNone},
	{[]string{"beam"}, 1, Vector{Beam: 1}, prefixNone},
	{[]string{"solRad"}, 6.9599e8, Vector{Length: 1}, prefixNone},
	{[]string{"solMass"}, 1.9891e30, Vector{Mass: 1}, prefixNone},
	{[]string{"solLum"}, 3.8268e26, Vector{Mass: 1, Length: 2, Time: -3}, prefixNone},
	{[]string{"Sun"}, 1, Vector{SolarMassRatio: 1}, prefixNone},
	{[]string{"adu"}, 1, Vector{Count: 1}, prefixNone},
	{[]string{"bin"}, 1, Vector{Bin: 1}, prefixNone},
	{[]string{"chan"}, 1, Vector{Bin: 1}, prefixNone},
	{[]string{"count", "ct"}, 1, Vector{Count: 1}, prefixNone},
	{[]string{"photon", "ph"}, 1, Vector{Count: 1}, prefixNone},
	{[]string{"pixel", "pix"}, 1, Vector{Pixel: 1}, prefixNone},
	{[]string{"voxel"}, 1, Vector{Voxel: 1}, prefixNone},
}

// Table is a lookup of recognised atoms, built once from the static
// atomTable and optionally extended with an overlay. It is read-only
// after construction.
type Table struct {
	// byName maps every recognised spelling to its entry.
	byName map[string]*atomEntry
	// maxNameLen is the length of the longest recognised atom
	// spelling.
	maxNameLen int
}

// defaultTable is the package-level immutable lookup table built from
// atomTable. Parse uses this table unless the caller supplies one
// built with NewTableWithOverlay.
var defaultTable = buildTable(atomTable)

func buildTable(entries []atomEntry) *Table {
	t := &Table{byName: make(map[string]*atomEntry, len(entries)*2)}
	for i := range entries {
		e := &entries[i]
		for _, name := range e.names {
			t.byName[name] = e
			if len(name) > t.maxNameLen {
				t.maxNameLen = len(name)
			}
		}
	}
	return t
}

// lookup returns the entry for an exact atom spelling, if recognised.
func (t *Table) lookup(name string) (*atomEntry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// runLen returns the length of the maximal run of ASCII letters at
// the start of s.
func (t *Table) runLen(s string) int {
	n := 0
	for n < len(s) && isAlpha(s[n]) {
		n++
	}
	return n
}

// matchTerm resolves the longest-match prefix(optional)+atom token at
// the start of s, per the disambiguation rule in spec section 4.1: a
// bare atom name that exactly spans the whole identifier run always
// wins over any prefix+atom decomposition, since that is how the
// table distinguishes e.g. "Pa" (pascal) from "P"+"a" (peta-year) and
// "min" (minute) from "m"+"in" (no such atom).
func (t *Table) matchTerm(s string) (pendingTerm, bool) {
	run := t.runLen(s)
	if run == 0 {
		return pendingTerm{}, false
	}
	if run > len(s) {
		run = len(s)
	}

	// 1. Bare, full-run match.
	if e, ok := t.lookup(s[:run]); ok {
		return pendingTerm{entry: e, consumed: run}, true
	}

	// 2. Prefixed, full-run match: try the two-character prefix "da"
	// before the one-character prefix s[:1].
	if m, e, ok := t.matchPrefixedFull(s, run, 2); ok {
		return pendingTerm{prefixMul: m, entry: e, consumed: run}, true
	}
	if m, e, ok := t.matchPrefixedFull(s, run, 1); ok {
		return pendingTerm{prefixMul: m, entry: e, consumed: run}, true
	}

	// 3. Bare, partial match: the longest recognised atom name that is
	// a strict prefix of the identifier run.
	for l := run - 1; l >= 1; l-- {
		if e, ok := t.lookup(s[:l]); ok {
			return pendingTerm{entry: e, consumed: l}, true
		}
	}

	// 4. Prefixed, partial match.
	for plen := 2; plen >= 1; plen-- {
		if run <= plen {
			continue
		}
		pe, ok := lookupPrefix(s[:plen])
		if !ok {
			continue
		}
		for l := run - plen; l >= 1; l-- {
			if e, ok := t.lookup(s[plen : plen+l]); ok && pe.class.admits(e.class) {
				return pendingTerm{prefixMul: pe.multiplier, entry: e, consumed: plen + l}, true
			}
		}
	}

	return pendingTerm{}, false
}

// matchPrefixedFull checks whether s[:plen] is a recognised prefix
// symbol of that exact length and whether the remainder of the run
// s[plen:run] is a recognised atom name admitting that prefix.
func (t *Table) matchPrefixedFull(s string, run, plen int) (float64, *atomEntry, bool) {
	if run <= plen {
		return 0, nil, false
	}
	pe, ok := lookupPrefix(s[:plen])
	if !ok {
		return 0, nil, false
	}
	e, ok := t.lookup(s[plen:run])
	if !ok || !pe.class.admits(e.class) {
		return 0, nil, false
	}
	return pe.multiplier, e, true
}
