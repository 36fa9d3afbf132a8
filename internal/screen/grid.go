// Package screen holds the fixed-size character grid panes draw into.
package screen

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Point is one cell coordinate, column then row.
type Point struct {
	X int
	Y int
}

// Rect is a rectangular grid region.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the region has no drawable cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// cell stores one rune and its foreground colour; nil colour means terminal default.
// A zero rune marks the right half of a wide rune in the cell to its left.
type cell struct {
	r  rune
	fg color.Color
}

// continuation is the rune stored in the trailing cell of a double-width rune.
const continuation rune = 0

// Grid is a width x height block of cells, blank-filled on creation.
type Grid struct {
	width  int
	height int
	cells  []cell
}

// NewGrid constructs a blank grid.
func NewGrid(width, height int) *Grid {
	width, height = max(0, width), max(0, height)
	g := &Grid{width: width, height: height, cells: make([]cell, width*height)}
	g.Clear()
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Clear resets every cell to an uncoloured space.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
}

// Put writes text starting at (x, y) and returns the number of cells written.
// Text outside the grid is clipped.
func (g *Grid) Put(x, y int, text string, fg color.Color) int {
	return g.PutClipped(Rect{X: 0, Y: 0, Width: g.width, Height: g.height}, x, y, text, fg)
}

// PutClipped writes text like Put but also clips to clip. Width is measured in terminal
// cells: a double-width rune takes two cells and is dropped whole when only one is left.
// Zero-width runes are skipped.
func (g *Grid) PutClipped(clip Rect, x, y int, text string, fg color.Color) int {
	if y < 0 || y >= g.height || y < clip.Y || y >= clip.Y+clip.Height {
		return 0
	}
	left := max(0, clip.X)
	right := min(g.width, clip.X+clip.Width)
	written := 0
	for _, r := range text {
		if r < ' ' {
			r = ' '
		}
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if x+w > right {
			break
		}
		if x >= left {
			g.set(x, y, cell{r: r, fg: fg})
			if w == 2 {
				g.set(x+1, y, cell{r: continuation, fg: fg})
			}
			written += w
		} else if w == 2 && x+1 >= left {
			// Left half clipped away: blank the visible half.
			g.set(x+1, y, cell{r: ' '})
			written++
		}
		x += w
	}
	return written
}

// set stores c at (x, y), blanking the other half of any wide rune it splits.
func (g *Grid) set(x, y int, c cell) {
	row := g.cells[y*g.width : (y+1)*g.width]
	if row[x].r == continuation && x > 0 && c.r != continuation {
		row[x-1] = cell{r: ' '}
	}
	if x+1 < len(row) && row[x+1].r == continuation {
		row[x+1] = cell{r: ' '}
	}
	row[x] = c
}

// Row returns the plain text of row y.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[y*g.width : (y+1)*g.width] {
		if c.r != continuation {
			b.WriteRune(c.r)
		}
	}
	return b.String()
}

// Lines returns every row as plain text.
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	for y := range lines {
		lines[y] = g.Row(y)
	}
	return lines
}

// Render returns the grid with runs of equal colour wrapped in lipgloss styles.
func (g *Grid) Render() string {
	rows := make([]string, g.height)
	for y := range rows {
		rows[y] = g.renderRow(y)
	}
	return strings.Join(rows, "\n")
}

// renderRow styles one row run by run.
func (g *Grid) renderRow(y int) string {
	var out, run strings.Builder
	var runColor color.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runColor == nil {
			out.WriteString(run.String())
		} else {
			out.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
		}
		run.Reset()
	}
	for _, c := range g.cells[y*g.width : (y+1)*g.width] {
		if c.r == continuation {
			continue
		}
		fg := c.fg
		if c.r == ' ' {
			// Blank cells join whatever run is open.
			fg = runColor
		}
		if fg != runColor {
			flush()
			runColor = fg
		}
		run.WriteRune(c.r)
	}
	flush()
	return out.String()
}
