package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approxVector(t *testing.T, want, got Vector) {
	t.Helper()
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], 1e-9, "vector[%d] = %s", i, Quantity(i))
	}
}

func TestParseScenarios(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		result Result
	}{
		{
			name:   "metre",
			input:  "m",
			result: Result{Func: FuncNone, Scale: 1, Vector: Vector{Length: 1}},
		},
		{
			name:   "kilometre per second",
			input:  "km/s",
			result: Result{Func: FuncNone, Scale: 1000, Vector: Vector{Length: 1, Time: -1}},
		},
		{
			name:  "flux density per area-time-wavelength",
			input: "10**-12 erg/(cm**2 s Angstrom)",
			result: Result{
				Func:   FuncNone,
				Scale:  1e-5,
				Vector: Vector{Mass: 1, Length: -1, Time: -3},
			},
		},
		{
			name:   "log of frequency",
			input:  "log(Hz)",
			result: Result{Func: FuncLog, Scale: 1, Vector: Vector{Time: -1}},
		},
		{
			name:   "janskys per beam",
			input:  "Jy/beam",
			result: Result{Func: FuncNone, Scale: 1e-26, Vector: Vector{Mass: 1, Time: -2, Beam: -1}},
		},
		{
			name:   "bracketed expression is stripped",
			input:  "[Jy/beam]",
			result: Result{Func: FuncNone, Scale: 1e-26, Vector: Vector{Mass: 1, Time: -2, Beam: -1}},
		},
		{
			name:   "parenthesised expression equals bare expression",
			input:  "(km/s)",
			result: Result{Func: FuncNone, Scale: 1000, Vector: Vector{Length: 1, Time: -1}},
		},
		{
			name:   "sqrt halves the exponent",
			input:  "sqrt(m)",
			result: Result{Func: FuncNone, Scale: 1, Vector: Vector{Length: 0.5}},
		},
		{
			name:   "case-variant ohm spelling",
			input:  "Ohm",
			result: Result{Func: FuncNone, Scale: 1, Vector: Vector{Mass: 1, Length: 2, Time: -1, Charge: -2}},
		},
		{
			name:   "byte scales by eight and contributes a bit",
			input:  "byte",
			result: Result{Func: FuncNone, Scale: 8, Vector: Vector{Bit: 1}},
		},
		{
			name:   "explicit exponent",
			input:  "cm**2",
			result: Result{Func: FuncNone, Scale: 1e-4, Vector: Vector{Length: 2}},
		},
		{
			name:   "caret exponent",
			input:  "cm^2",
			result: Result{Func: FuncNone, Scale: 1e-4, Vector: Vector{Length: 2}},
		},
		{
			name:   "rational exponent",
			input:  "m**(1/2)",
			result: Result{Func: FuncNone, Scale: 1, Vector: Vector{Length: 0.5}},
		},
		{
			name:   "leading divisor introducer",
			input:  "1/s",
			result: Result{Func: FuncNone, Scale: 1, Vector: Vector{Time: -1}},
		},
		{
			name:   "natural log tag",
			input:  "ln(m)",
			result: Result{Func: FuncLn, Scale: 1, Vector: Vector{Length: 1}},
		},
		{
			name:   "exp tag",
			input:  "exp(m)",
			result: Result{Func: FuncExp, Scale: 1, Vector: Vector{Length: 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.result.Func, got.Func)
			assert.InDelta(t, tc.result.Scale, got.Scale, tc.result.Scale*1e-9+1e-300)
			approxVector(t, tc.result.Vector, got.Vector)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		input string
		code  ParseErrorCode
	}{
		{"unbalanced open paren", "(", UnbalParen},
		{"trailing dangling exponent marker", "m**", DanglingBinop},
		{"consecutive division operators", "m//s", ConsecBinops},
		{"function tag inside parens", "exp(log(Hz))", FunctionContext},
		{"leading multiply has no operand", "*m", DanglingBinop},
		{"leading dot has no operand", ".m", DanglingBinop},
		{"unrecognised symbol", "&m", BadInitialSymbol},
		{"bad exponent symbol", "m&s", BadExponSymbol},
		{"ten followed by a digit", "105", BadNumMultiplier},
		{"unbalanced bracket", "[m", UnbalBracket},
		{"double open bracket", "[[m]", UnbalBracket},
		{"trailing divide with nothing after", "m/", DanglingBinop},
		{"trailing slash after one", "1/", DanglingBinop},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Parse(tc.input)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.code, perr.Code)
			assert.Equal(t, tc.input, perr.Input)
			assert.Equal(t, float64(0), result.Scale)
			assert.Equal(t, Vector{}, result.Vector)
		})
	}
}

func TestPrefixScalingLaw(t *testing.T) {
	base, err := Parse("m")
	require.NoError(t, err)

	prefixed, err := Parse("km")
	require.NoError(t, err)

	assert.InDelta(t, 1000*base.Scale, prefixed.Scale, 1e-9)
	approxVector(t, base.Vector, prefixed.Vector)
}

func TestExponentLaw(t *testing.T) {
	base, err := Parse("erg")
	require.NoError(t, err)

	cubed, err := Parse("erg**3")
	require.NoError(t, err)

	assert.InDelta(t, math.Pow(base.Scale, 3), cubed.Scale, cubed.Scale*1e-9)
	approxVector(t, base.Vector.Scale(3), cubed.Vector)
}

func TestDivisionLaw(t *testing.T) {
	a, err := Parse("Jy")
	require.NoError(t, err)
	b, err := Parse("beam")
	require.NoError(t, err)
	ratio, err := Parse("Jy/beam")
	require.NoError(t, err)

	assert.InDelta(t, a.Scale/b.Scale, ratio.Scale, ratio.Scale*1e-9)
	approxVector(t, a.Vector.Add(b.Vector.Scale(-1)), ratio.Vector)
}

func TestAllErrorsZeroResult(t *testing.T) {
	inputs := []string{"(", "m**", "m//s", "exp(log(Hz))", "m&s"}
	for _, in := range inputs {
		result, err := Parse(in)
		require.Error(t, err)
		assert.Equal(t, Result{}, result)
	}
}

func TestNewTableWithOverlay(t *testing.T) {
	overlay, err := NewTableWithOverlay([]AtomOverlay{
		{Names: []string{"furlong"}, Factor: 201.168, Vector: Vector{Length: 1}, PrefixPolicy: "none"},
	})
	require.NoError(t, err)

	result, err := ParseWithTable(overlay, "furlong")
	require.NoError(t, err)
	assert.InDelta(t, 201.168, result.Scale, 1e-9)
	approxVector(t, Vector{Length: 1}, result.Vector)

	_, err = Parse("furlong")
	assert.Error(t, err, "the package default table must not be mutated by an overlay")
}

func TestNewTableWithOverlayRejectsCollision(t *testing.T) {
	_, err := NewTableWithOverlay([]AtomOverlay{
		{Names: []string{"m"}, Factor: 1, PrefixPolicy: "none"},
	})
	assert.Error(t, err)
}
