// Package ui implements the interactive terminal REPL for exploring
// FITS unit expressions: type an expression, see its parsed function
// tag, scale factor, and base-quantity vector update live.
package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/google/renameio/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/fitsunits/fitsunits/units"
)

const maxHistory = 200

// REPL holds the mutable state of one interactive session.
type REPL struct {
	table   *units.Table
	screen  tcell.Screen
	palette *Palette

	input      []rune
	cursor     int // rune offset into input
	history    []string
	historyPos int // index into history while browsing with up/down; len(history) means "not browsing"
	quit       bool
}

// Run launches the interactive REPL against the given atom table,
// blocking until the user exits. table is typically built from
// config.LoadOrCreateOverlay followed by Overlay.Table.
func Run(table *units.Table) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	r := &REPL{
		table:      table,
		screen:     screen,
		palette:    NewPalette(),
		history:    loadHistory(),
		historyPos: -1,
	}
	r.historyPos = len(r.history)

	r.runEventLoop()
	saveHistory(r.history)
	return nil
}

func (r *REPL) runEventLoop() {
	r.draw()
	for !r.quit {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			r.handleKey(ev)
		case *tcell.EventResize:
			r.screen.Sync()
		}
		if !r.quit {
			r.draw()
		}
	}
}

func (r *REPL) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
		r.quit = true
	case tcell.KeyEnter:
		r.commitInput()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		r.deleteBeforeCursor()
	case tcell.KeyDelete:
		r.deleteAfterCursor()
	case tcell.KeyLeft:
		r.cursor = prevClusterBoundary(r.input, r.cursor)
	case tcell.KeyRight:
		r.cursor = nextClusterBoundary(r.input, r.cursor)
	case tcell.KeyHome, tcell.KeyCtrlA:
		r.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		r.cursor = len(r.input)
	case tcell.KeyUp:
		r.browseHistory(-1)
	case tcell.KeyDown:
		r.browseHistory(1)
	case tcell.KeyCtrlU:
		r.input = nil
		r.cursor = 0
	case tcell.KeyRune:
		r.insertRune(ev.Rune())
	}
}

func (r *REPL) insertRune(ch rune) {
	out := make([]rune, 0, len(r.input)+1)
	out = append(out, r.input[:r.cursor]...)
	out = append(out, ch)
	out = append(out, r.input[r.cursor:]...)
	r.input = out
	r.cursor++
}

func (r *REPL) deleteBeforeCursor() {
	if r.cursor == 0 {
		return
	}
	start := prevClusterBoundary(r.input, r.cursor)
	r.input = append(r.input[:start], r.input[r.cursor:]...)
	r.cursor = start
}

func (r *REPL) deleteAfterCursor() {
	if r.cursor >= len(r.input) {
		return
	}
	r.input = append(r.input[:r.cursor], r.input[r.cursor+1:]...)
}

func (r *REPL) commitInput() {
	expr := strings.TrimSpace(string(r.input))
	if expr == "" {
		return
	}
	if len(r.history) == 0 || r.history[len(r.history)-1] != expr {
		r.history = append(r.history, expr)
		if len(r.history) > maxHistory {
			r.history = r.history[len(r.history)-maxHistory:]
		}
	}
	r.input = nil
	r.cursor = 0
	r.historyPos = len(r.history)
}

func (r *REPL) browseHistory(delta int) {
	if len(r.history) == 0 {
		return
	}
	pos := r.historyPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos > len(r.history) {
		pos = len(r.history)
	}
	r.historyPos = pos
	if pos == len(r.history) {
		r.input = nil
	} else {
		r.input = []rune(r.history[pos])
	}
	r.cursor = len(r.input)
}

// draw renders the prompt, the live parse result, and a short history
// panel. Column placement accounts for wide runes via go-runewidth and
// cursor movement steps by whole grapheme clusters via rivo/uniseg, so
// combining marks and East Asian wide characters don't misalign the
// cursor.
func (r *REPL) draw() {
	r.screen.Clear()
	width, height := r.screen.Size()

	const promptCol = 0
	emitStr(r.screen, promptCol, 0, r.palette.StyleForPrompt(), "> ")
	inputCol := promptCol + runewidth.StringWidth("> ")
	emitStr(r.screen, inputCol, 0, r.palette.StyleForInput(), string(r.input))

	cursorCol := inputCol + runewidth.StringWidth(string(r.input[:r.cursor]))
	r.screen.ShowCursor(cursorCol, 0)

	r.drawResult(width, 2)
	r.drawHistory(width, height, 4)
	emitStr(r.screen, 0, height-1, r.palette.StyleForHelp(), "enter: record  up/down: history  esc/ctrl-c: quit")

	r.screen.Show()
}

func (r *REPL) drawResult(width, row int) {
	expr := strings.TrimSpace(string(r.input))
	if expr == "" {
		return
	}

	result, err := units.ParseWithTable(r.table, expr)
	if err != nil {
		emitStr(r.screen, 0, row, r.palette.StyleForError(), truncate(err.Error(), width))
		return
	}

	line := fmt.Sprintf("scale = %g", result.Scale)
	emitStr(r.screen, 0, row, r.palette.StyleForScale(result.Scale), truncate(line, width))

	if result.Func != units.FuncNone {
		funcLine := fmt.Sprintf("func  = %s", result.Func)
		emitStr(r.screen, 0, row+1, r.palette.StyleForFuncTag(), truncate(funcLine, width))
	}

	vecLine := "units = " + formatVector(result.Vector)
	emitStr(r.screen, 0, row+2, r.palette.StyleForInput(), truncate(vecLine, width))
}

func (r *REPL) drawHistory(width, height, startRow int) {
	maxRows := height - startRow - 2
	if maxRows <= 0 {
		return
	}
	n := len(r.history)
	shown := n
	if shown > maxRows {
		shown = maxRows
	}
	for i := 0; i < shown; i++ {
		entry := r.history[n-shown+i]
		emitStr(r.screen, 0, startRow+i, r.palette.StyleForHistory(), truncate(entry, width))
	}
}

func formatVector(v units.Vector) string {
	m := v.Map()
	if len(m) == 0 {
		return "(dimensionless)"
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", name, m[name]))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// emitStr draws a string starting at (x, y), advancing by each rune's
// display width so double-width runes don't overlap the next cell.
func emitStr(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		w := runewidth.RuneWidth(c)
		var comb []rune
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		s.SetContent(x, y, c, comb, style)
		x += w
	}
}

// clusterBoundaries returns the rune offsets into input that fall on a
// grapheme cluster boundary, including 0 and len(input). Cursor
// movement steps between these offsets so arrow keys never split a
// combining character sequence in two.
func clusterBoundaries(input []rune) []int {
	bounds := []int{0}
	pos := 0
	gr := uniseg.NewGraphemes(string(input))
	for gr.Next() {
		pos += len(gr.Runes())
		bounds = append(bounds, pos)
	}
	return bounds
}

func prevClusterBoundary(input []rune, cursor int) int {
	bounds := clusterBoundaries(input)
	prev := 0
	for _, b := range bounds {
		if b >= cursor {
			break
		}
		prev = b
	}
	return prev
}

func nextClusterBoundary(input []rune, cursor int) int {
	bounds := clusterBoundaries(input)
	for _, b := range bounds {
		if b > cursor {
			return b
		}
	}
	return len(input)
}

func historyPath() (string, error) {
	return xdg.DataFile(filepath.Join("fitsunits", "history"))
}

func loadHistory() []string {
	path, err := historyPath()
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

func saveHistory(history []string) {
	path, err := historyPath()
	if err != nil {
		log.Printf("historyPath: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("os.MkdirAll: %v", err)
		return
	}
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		log.Printf("renameio.NewPendingFile: %v", err)
		return
	}
	defer pf.Cleanup()

	if _, err := pf.Write([]byte(strings.Join(history, "\n") + "\n")); err != nil {
		log.Printf("pf.Write: %v", err)
		return
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		log.Printf("pf.CloseAtomicallyReplace: %v", err)
	}
}
