package units

// prefixClass classifies which direction of metric prefix an atom
// admits.
type prefixClass int

const (
	prefixNone  prefixClass = iota // admits no prefix at all
	prefixSub                      // admits only multiplier < 1 prefixes
	prefixSuper                    // admits only multiplier > 1 prefixes
	prefixAny                      // admits any prefix
)

// prefixEntry is one row of the static metric-prefix table.
type prefixEntry struct {
	symbol     string
	multiplier float64
	class      prefixClass
}

// prefixTable lists the recognised metric prefixes. Lookups go through
// prefixBySymbol by exact symbol; matchTerm tries the two-character "da"
// before a one-character prefix such as "d".
var prefixTable = []prefixEntry{
	{"da", 1e+1, prefixSuper},
	{"y", 1e-24, prefixSub},
	{"z", 1e-21, prefixSub},
	{"a", 1e-18, prefixSub},
	{"f", 1e-15, prefixSub},
	{"p", 1e-12, prefixSub},
	{"n", 1e-9, prefixSub},
	{"u", 1e-6, prefixSub},
	{"m", 1e-3, prefixSub},
	{"c", 1e-2, prefixSub},
	{"d", 1e-1, prefixSub},
	{"h", 1e+2, prefixSuper},
	{"k", 1e+3, prefixSuper},
	{"M", 1e+6, prefixSuper},
	{"G", 1e+9, prefixSuper},
	{"T", 1e+12, prefixSuper},
	{"P", 1e+15, prefixSuper},
	{"E", 1e+18, prefixSuper},
	{"Z", 1e+21, prefixSuper},
	{"Y", 1e+24, prefixSuper},
}

// admits reports whether a prefix of class pc may precede an atom with
// the given policy.
func (pc prefixClass) admits(policy prefixClass) bool {
	switch policy {
	case prefixAny:
		return true
	case prefixSub:
		return pc == prefixSub
	case prefixSuper:
		return pc == prefixSuper
	default:
		return false
	}
}

var prefixBySymbol = buildPrefixMap()

func buildPrefixMap() map[string]prefixEntry {
	m := make(map[string]prefixEntry, len(prefixTable))
	for _, e := range prefixTable {
		m[e.symbol] = e
	}
	return m
}

func lookupPrefix(sym string) (prefixEntry, bool) {
	e, ok := prefixBySymbol[sym]
	return e, ok
}
