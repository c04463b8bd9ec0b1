package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorAdd(t *testing.T) {
	a := Vector{Length: 1, Time: -1}
	b := Vector{Length: 2, Mass: 1}
	assert.Equal(t, Vector{Length: 3, Time: -1, Mass: 1}, a.Add(b))
}

func TestVectorScale(t *testing.T) {
	a := Vector{Length: 1, Time: -2}
	assert.Equal(t, Vector{Length: 3, Time: -6}, a.Scale(3))
}

func TestVectorIsZero(t *testing.T) {
	assert.True(t, Vector{}.IsZero())
	assert.False(t, Vector{Length: 1}.IsZero())
}

func TestVectorMapRoundTrip(t *testing.T) {
	v := Vector{Length: 1, Time: -2}
	m := v.Map()
	assert.Equal(t, map[string]float64{"length": 1, "time": -2}, m)

	got, err := VectorFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestVectorFromMapUnknownQuantity(t *testing.T) {
	_, err := VectorFromMap(map[string]float64{"not_a_quantity": 1})
	assert.Error(t, err)
}

func TestQuantityFromName(t *testing.T) {
	q, ok := QuantityFromName("length")
	require.True(t, ok)
	assert.Equal(t, Length, q)

	_, ok = QuantityFromName("nonexistent")
	assert.False(t, ok)
}

func TestQuantityStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Quantity(99)", Quantity(99).String())
}
