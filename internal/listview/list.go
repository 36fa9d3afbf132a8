// Package listview owns one ordered item list together with its selection and scroll
// state, and draws it as a wrapped, scrolled pane.
package listview

import (
	"cmp"
	"slices"
)

// Pane configures the fixed presentation of one list.
type Pane struct {
	Title    string
	Checkbox string
}

// List is one ordered collection of items plus the selection index and the number of
// wrapped rows scrolled off the top of its pane.
type List struct {
	pane     Pane
	items    []string
	selected int
	scroll   int
}

// New constructs a list over a copy of items with the selection on the first item.
func New(pane Pane, items []string) *List {
	return &List{pane: pane, items: slices.Clone(items)}
}

// Pane returns the presentation config.
func (l *List) Pane() Pane { return l.pane }

// Items returns a copy of the items in order.
func (l *List) Items() []string { return slices.Clone(l.items) }

// Len returns the item count.
func (l *List) Len() int { return len(l.items) }

// Selected returns the selection index; 0 for an empty list.
func (l *List) Selected() int { return l.selected }

// ScrollOffset returns the number of wrapped rows hidden above the pane.
func (l *List) ScrollOffset() int { return l.scroll }

// MoveUp selects the previous item, wrapping to the last.
func (l *List) MoveUp() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected - 1 + len(l.items)) % len(l.items)
}

// MoveDown selects the next item, wrapping to the first.
func (l *List) MoveDown() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
}

// MoveToTop selects the first item.
func (l *List) MoveToTop() {
	l.selected = 0
}

// MoveToBottom selects the last item.
func (l *List) MoveToBottom() {
	l.selected = max(0, len(l.items)-1)
}

// ShiftUp swaps the current item with the one above it. The first item rotates to the
// end instead. The selection follows the moved item.
func (l *List) ShiftUp() {
	n := len(l.items)
	if n == 0 {
		return
	}
	if l.selected == 0 {
		first := l.items[0]
		copy(l.items, l.items[1:])
		l.items[n-1] = first
		l.selected = n - 1
		return
	}
	l.items[l.selected-1], l.items[l.selected] = l.items[l.selected], l.items[l.selected-1]
	l.selected--
}

// ShiftDown swaps the current item with the one below it. The last item rotates to the
// front instead. The selection follows the moved item.
func (l *List) ShiftDown() {
	n := len(l.items)
	if n == 0 {
		return
	}
	if l.selected == n-1 {
		last := l.items[n-1]
		copy(l.items[1:], l.items[:n-1])
		l.items[0] = last
		l.selected = 0
		return
	}
	l.items[l.selected+1], l.items[l.selected] = l.items[l.selected], l.items[l.selected+1]
	l.selected++
}

// Insert places item at position, clamped to [0, Len()]. The selection index is kept.
func (l *List) Insert(item string, position int) {
	position = min(max(0, position), len(l.items))
	l.items = slices.Insert(l.items, position, item)
}

// InsertBefore inserts item at the selection index, so it becomes the current item.
func (l *List) InsertBefore(item string) {
	l.Insert(item, l.selected)
}

// InsertAfter inserts item just below the current item.
func (l *List) InsertAfter(item string) {
	l.Insert(item, l.selected+1)
}

// Append adds item at the end.
func (l *List) Append(item string) {
	l.items = append(l.items, item)
}

// Remove deletes the current item and returns it. The selection is re-clamped into the
// shrunk list. It reports false on an empty list.
func (l *List) Remove() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	item := l.items[l.selected]
	l.items = slices.Delete(l.items, l.selected, l.selected+1)
	l.selected = min(l.selected, max(0, len(l.items)-1))
	return item, true
}

// SetCurrent overwrites the current item's text. No-op on an empty list.
func (l *List) SetCurrent(text string) {
	if len(l.items) == 0 {
		return
	}
	l.items[l.selected] = text
}

// CloneCurrent returns the current item's text.
func (l *List) CloneCurrent() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[l.selected], true
}

// Sort orders items by text. The sort is stable and the selection keeps pointing at the
// item it pointed at before.
func (l *List) Sort() {
	if len(l.items) < 2 {
		return
	}
	order := make([]int, len(l.items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(l.items[a], l.items[b])
	})
	sorted := make([]string, len(l.items))
	selected := 0
	for dst, src := range order {
		sorted[dst] = l.items[src]
		if src == l.selected {
			selected = dst
		}
	}
	l.items = sorted
	l.selected = selected
}
