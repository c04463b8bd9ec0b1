package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette controls the style of everything the REPL draws.
type Palette struct {
	promptStyle  tcell.Style
	inputStyle   tcell.Style
	cursorStyle  tcell.Style
	funcStyle    tcell.Style
	errorStyle   tcell.Style
	historyStyle tcell.Style
	helpStyle    tcell.Style
}

// NewPalette returns the default REPL palette.
func NewPalette() *Palette {
	s := tcell.StyleDefault
	return &Palette{
		promptStyle:  s.Foreground(tcell.ColorOrange).Bold(true),
		inputStyle:   s,
		cursorStyle:  s.Reverse(true),
		funcStyle:    s.Foreground(tcell.ColorTeal),
		errorStyle:   s.Background(tcell.ColorRed).Foreground(tcell.ColorWhite).Bold(true),
		historyStyle: s.Dim(true),
		helpStyle:    s.Dim(true),
	}
}

// StyleForPrompt returns the style used to draw the "> " prompt.
func (p *Palette) StyleForPrompt() tcell.Style {
	return p.promptStyle
}

// StyleForInput returns the style used to draw the raw input buffer.
func (p *Palette) StyleForInput() tcell.Style {
	return p.inputStyle
}

// StyleForCursor returns the style used to draw the character under the
// cursor.
func (p *Palette) StyleForCursor() tcell.Style {
	return p.cursorStyle
}

// StyleForFuncTag returns the style used to draw a non-trivial function
// tag (log/ln/exp).
func (p *Palette) StyleForFuncTag() tcell.Style {
	return p.funcStyle
}

// StyleForError returns the style used to draw a parse diagnostic.
func (p *Palette) StyleForError() tcell.Style {
	return p.errorStyle
}

// StyleForHistory returns the style used to draw the history list.
func (p *Palette) StyleForHistory() tcell.Style {
	return p.historyStyle
}

// StyleForHelp returns the style used to draw the footer help line.
func (p *Palette) StyleForHelp() tcell.Style {
	return p.helpStyle
}

// StyleForScale returns a style whose foreground hue encodes the
// magnitude of a successfully parsed scale factor: a blue-to-red
// gradient spanning roughly 1e-30 to 1e+30, so a glance at the color
// gives an order-of-magnitude sense of the number before reading the
// digits.
func (p *Palette) StyleForScale(scale float64) tcell.Style {
	const minExp, maxExp = -30.0, 30.0
	exp := maxExp
	if scale != 0 {
		exp = math.Log10(math.Abs(scale))
	}
	t := (exp - minExp) / (maxExp - minExp)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	low := colorful.Hsv(220, 0.65, 0.9)  // blue: very small scale
	high := colorful.Hsv(10, 0.75, 0.95) // red: very large scale
	c := low.BlendHsv(high, t)
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}
