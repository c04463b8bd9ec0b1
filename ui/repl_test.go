package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsunits/fitsunits/units"
)

func withSimScreen(t *testing.T, f func(tcell.SimulationScreen)) {
	s := tcell.NewSimulationScreen("")
	require.NotNil(t, s)
	err := s.Init()
	require.NoError(t, err)
	defer s.Fini()
	f(s)
}

func rowText(s tcell.SimulationScreen, row int) string {
	cells, width, _ := s.GetContents()
	runes := make([]rune, width)
	for x := 0; x < width; x++ {
		runes[x] = cells[x+row*width].Runes[0]
	}
	return string(runes)
}

func TestREPLDrawShowsPromptAndInput(t *testing.T) {
	withSimScreen(t, func(s tcell.SimulationScreen) {
		s.SetSize(40, 10)
		r := &REPL{
			table:   defaultTableForTest(),
			screen:  s,
			palette: NewPalette(),
			input:   []rune("km/s"),
			cursor:  4,
		}
		r.draw()
		s.Sync()

		assert.Contains(t, rowText(s, 0), "> km/s")
		assert.Contains(t, rowText(s, 2), "scale = 1000")
	})
}

func TestREPLDrawShowsError(t *testing.T) {
	withSimScreen(t, func(s tcell.SimulationScreen) {
		s.SetSize(40, 10)
		r := &REPL{
			table:   defaultTableForTest(),
			screen:  s,
			palette: NewPalette(),
			input:   []rune("m**"),
			cursor:  3,
		}
		r.draw()
		s.Sync()

		assert.Contains(t, rowText(s, 2), "invalid units")
	})
}

func TestREPLInsertAndDeleteRune(t *testing.T) {
	r := &REPL{}
	r.insertRune('k')
	r.insertRune('m')
	assert.Equal(t, "km", string(r.input))
	assert.Equal(t, 2, r.cursor)

	r.deleteBeforeCursor()
	assert.Equal(t, "k", string(r.input))
	assert.Equal(t, 1, r.cursor)
}

func TestREPLCommitInputAppendsHistory(t *testing.T) {
	r := &REPL{input: []rune("Jy/beam")}
	r.commitInput()
	require.Len(t, r.history, 1)
	assert.Equal(t, "Jy/beam", r.history[0])
	assert.Empty(t, r.input)
}

func TestREPLBrowseHistory(t *testing.T) {
	r := &REPL{history: []string{"m", "km/s"}, historyPos: 2}
	r.browseHistory(-1)
	assert.Equal(t, "km/s", string(r.input))
	r.browseHistory(-1)
	assert.Equal(t, "m", string(r.input))
	r.browseHistory(1)
	r.browseHistory(1)
	assert.Empty(t, r.input)
}

func TestClusterBoundariesOnPlainASCII(t *testing.T) {
	bounds := clusterBoundaries([]rune("abc"))
	assert.Equal(t, []int{0, 1, 2, 3}, bounds)
}

func TestPrevNextClusterBoundary(t *testing.T) {
	input := []rune("abc")
	assert.Equal(t, 2, prevClusterBoundary(input, 3))
	assert.Equal(t, 3, nextClusterBoundary(input, 2))
	assert.Equal(t, 0, prevClusterBoundary(input, 0))
	assert.Equal(t, 3, nextClusterBoundary(input, 3))
}

func defaultTableForTest() *units.Table {
	table, err := units.NewTableWithOverlay(nil)
	if err != nil {
		panic(err)
	}
	return table
}
