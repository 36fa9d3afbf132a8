// Package layout decides how the terminal is split between the two list panes.
package layout

import "github.com/evanschultz/todo/internal/screen"

// DefaultSinglePaneMaxWidth is the widest terminal that still shows only one pane.
const DefaultSinglePaneMaxWidth = 55

// Placement assigns one pane index a screen region.
type Placement struct {
	Pane   int
	Region screen.Rect
}

// Policy picks single- or dual-pane rendering from the terminal width.
type Policy struct {
	SinglePaneMaxWidth int
}

// DefaultPolicy returns the policy with the stock single-pane cutoff.
func DefaultPolicy() Policy {
	return Policy{SinglePaneMaxWidth: DefaultSinglePaneMaxWidth}
}

// Single reports whether a terminal of this width shows only the focused pane.
func (p Policy) Single(width int) bool {
	return width <= p.SinglePaneMaxWidth
}

// Place splits area between pane 0 (left) and pane 1 (right). In single-pane mode only
// the focused pane is placed and it takes the whole area. In dual-pane mode the left pane
// takes the odd column.
func (p Policy) Place(area screen.Rect, focused int) []Placement {
	if area.Empty() {
		return nil
	}
	if p.Single(area.Width) {
		return []Placement{{Pane: focused, Region: area}}
	}
	leftWidth := (area.Width + 1) / 2
	return []Placement{
		{Pane: 0, Region: screen.Rect{X: area.X, Y: area.Y, Width: leftWidth, Height: area.Height}},
		{Pane: 1, Region: screen.Rect{X: area.X + leftWidth, Y: area.Y, Width: area.Width - leftWidth, Height: area.Height}},
	}
}
