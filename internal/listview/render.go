package listview

import (
	"image/color"
	"strings"

	"github.com/evanschultz/todo/internal/screen"
	"github.com/evanschultz/todo/internal/wrap"
)

// Style carries the process-wide drawing settings shared by every pane.
type Style struct {
	// CheckboxWidth is the number of columns reserved left of each item for its glyph.
	CheckboxWidth int
	// Palette colours items by index modulo its length; empty draws uncoloured.
	Palette []color.Color
	// TitleColor colours the title row; nil uses the terminal default.
	TitleColor color.Color
}

// lineWidth returns the wrap width available beside the checkbox column.
func (s Style) lineWidth(paneWidth int) int {
	return max(1, paneWidth-max(0, s.CheckboxWidth))
}

// itemColor picks the palette entry for item index idx.
func (s Style) itemColor(idx int) color.Color {
	if len(s.Palette) == 0 {
		return nil
	}
	return s.Palette[idx%len(s.Palette)]
}

// SelectionRow returns the display row of the current item's first wrapped line, counting
// the title row, before the scroll offset is subtracted.
func (l *List) SelectionRow(style Style, paneWidth int) int {
	width := style.lineWidth(paneWidth)
	row := 1
	for _, item := range l.items[:min(l.selected, len(l.items))] {
		row += len(wrap.Wrap(item, width))
	}
	return row
}

// Scroll updates the scroll offset so the current item's first line is on-screen in a
// pane of the given size, moving the window only when the selection left it.
func (l *List) Scroll(style Style, paneWidth, paneHeight int) {
	if paneHeight < 2 {
		// Only the title row fits; there is no item row to scroll to.
		return
	}
	row := l.SelectionRow(style, paneWidth)
	if row+1 <= paneHeight+l.scroll && row > l.scroll {
		return
	}
	if row > l.scroll {
		l.scroll = max(0, row+1-paneHeight)
		return
	}
	l.scroll = max(0, row-1)
}

// Draw scrolls the list for region, draws it into g and returns where the terminal
// cursor belongs: the first column of the current item's first wrapped line.
func (l *List) Draw(g *screen.Grid, region screen.Rect, style Style) screen.Point {
	if region.Empty() {
		return screen.Point{X: region.X, Y: region.Y}
	}
	l.Scroll(style, region.Width, region.Height)

	g.PutClipped(region, region.X, region.Y, l.pane.Title, style.TitleColor)

	width := style.lineWidth(region.Width)
	checkbox := padRight(l.pane.Checkbox, style.CheckboxWidth)
	blank := strings.Repeat(" ", max(0, style.CheckboxWidth))
	hidden := l.scroll
	row := 0
	for idx, item := range l.items {
		fg := style.itemColor(idx)
		for fragIdx, frag := range wrap.Wrap(item, width) {
			if hidden > 0 {
				hidden--
				continue
			}
			if row > region.Height-2 {
				return l.cursor(region, style)
			}
			y := region.Y + 1 + row
			prefix := blank
			if fragIdx == 0 {
				prefix = checkbox
			}
			x := region.X
			x += g.PutClipped(region, x, y, prefix, fg)
			g.PutClipped(region, x, y, frag, fg)
			row++
		}
	}
	return l.cursor(region, style)
}

// cursor maps the selection row into region coordinates, falling back to the first item
// row when the arithmetic would land on or above the title.
func (l *List) cursor(region screen.Rect, style Style) screen.Point {
	y := l.SelectionRow(style, region.Width) - l.scroll
	if y < 1 {
		y = 1
	}
	if y > region.Height-1 {
		y = max(0, region.Height-1)
	}
	return screen.Point{X: region.X, Y: region.Y + y}
}

// padRight pads or truncates s to exactly width runes.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
