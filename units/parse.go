package units

// Result is the outcome of a successful parse: an optional enclosing
// function tag, the scale factor relating the input unit to coherent
// base units, and the base-quantity exponent vector.
type Result struct {
	Func   FuncTag
	Scale  float64
	Vector Vector
}

// Parse scans a FITS-style unit specification string and returns its
// function tag, scale factor, and base-quantity exponent vector, or
// a single diagnostic (see ParseErrorCode for which one is reported).
//
// Parse is a synchronous, side-effect-free function: it performs no
// I/O and touches no state beyond its own call stack, so concurrent
// calls from separate goroutines never interfere with each other.
func Parse(s string) (Result, error) {
	return ParseWithTable(defaultTable, s)
}

// ParseWithTable parses s using an explicit atom table, typically one
// built by NewTableWithOverlay. This is the hook external callers use
// to extend the recognised atom set without mutating package state.
func ParseWithTable(t *Table, s string) (Result, error) {
	p := newParser(t, s, 0)
	result, err := p.run()
	if err != nil {
		return result, err
	}
	return result, nil
}
