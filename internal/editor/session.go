// Package editor implements the modal session that routes keys either to list
// navigation or to the insert buffer, and lays both lists out on screen.
package editor

import (
	"unicode"

	"github.com/evanschultz/todo/internal/layout"
	"github.com/evanschultz/todo/internal/listview"
	"github.com/evanschultz/todo/internal/screen"
)

// Focus selects which list receives commands.
type Focus int

// FocusPending and FocusCompleted are the two lists; their values double as pane indexes.
const (
	FocusPending Focus = iota
	FocusCompleted
)

// Other returns the opposite list.
func (f Focus) Other() Focus {
	if f == FocusPending {
		return FocusCompleted
	}
	return FocusPending
}

// String returns the list name.
func (f Focus) String() string {
	if f == FocusCompleted {
		return "completed"
	}
	return "pending"
}

// Panes configures the presentation of both lists.
type Panes struct {
	Pending   listview.Pane
	Completed listview.Pane
}

// DefaultPanes returns the stock titles and checkbox glyphs.
func DefaultPanes() Panes {
	return Panes{
		Pending:   listview.Pane{Title: "TODO", Checkbox: "[ ]"},
		Completed: listview.Pane{Title: "DONE", Checkbox: "[x]"},
	}
}

// Session owns both lists, the focus, the input mode and the insert buffer.
type Session struct {
	lists [2]*listview.List
	focus Focus
	mode  Mode
	buf   Buffer
}

// NewSession starts in Normal mode with the pending list focused.
func NewSession(pending, completed []string, panes Panes) *Session {
	return &Session{
		lists: [2]*listview.List{
			listview.New(panes.Pending, pending),
			listview.New(panes.Completed, completed),
		},
		focus: FocusPending,
		mode:  Normal{},
	}
}

// Mode returns the current input mode.
func (s *Session) Mode() Mode { return s.mode }

// Focus returns the focused list.
func (s *Session) Focus() Focus { return s.focus }

// List returns one of the two lists.
func (s *Session) List(f Focus) *listview.List { return s.lists[f] }

// Focused returns the list receiving commands.
func (s *Session) Focused() *listview.List { return s.lists[s.focus] }

// Buffer returns the insert buffer text and caret.
func (s *Session) Buffer() (string, int) { return s.buf.String(), s.buf.Caret() }

// Pending returns a copy of the pending items.
func (s *Session) Pending() []string { return s.lists[FocusPending].Items() }

// Completed returns a copy of the completed items.
func (s *Session) Completed() []string { return s.lists[FocusCompleted].Items() }

// HandleKey applies one key in the current mode.
func (s *Session) HandleKey(k Key) Outcome {
	if ins, ok := s.mode.(Insert); ok {
		return s.handleInsert(ins, k)
	}
	return s.handleNormal(k)
}

// handleNormal applies navigation and list commands to the focused list.
func (s *Session) handleNormal(k Key) Outcome {
	list := s.Focused()
	switch k.Action {
	case ActionQuit:
		return Quit
	case ActionConfirm:
		item, ok := list.Remove()
		if !ok {
			return Ignored
		}
		s.lists[s.focus.Other()].Append(item)
	case ActionDelete:
		if s.focus != FocusCompleted {
			return Ignored
		}
		if _, ok := list.Remove(); !ok {
			return Ignored
		}
	case ActionToggleFocus:
		s.focus = s.focus.Other()
	case ActionMoveUp:
		list.MoveUp()
	case ActionMoveDown:
		list.MoveDown()
	case ActionMoveToTop:
		list.MoveToTop()
	case ActionMoveToBottom:
		list.MoveToBottom()
	case ActionDragUp:
		list.ShiftUp()
	case ActionDragDown:
		list.ShiftDown()
	case ActionSort:
		list.Sort()
	case ActionNewItem:
		s.startInsert(DestNewItem, "")
	case ActionNewItemBefore, ActionNewItemAfter:
		if s.focus != FocusPending {
			return Ignored
		}
		dest := DestNewItemBefore
		if k.Action == ActionNewItemAfter {
			dest = DestNewItemAfter
		}
		s.startInsert(dest, "")
	case ActionEdit:
		text, ok := list.CloneCurrent()
		if !ok {
			return Ignored
		}
		s.startInsert(DestEditItem, text)
	default:
		return Ignored
	}
	return Changed
}

// startInsert switches to Insert mode seeded with text, caret at the end.
func (s *Session) startInsert(dest Destination, text string) {
	s.buf.Set(text)
	s.mode = Insert{Destination: dest}
}

// handleInsert edits the buffer or leaves Insert mode.
func (s *Session) handleInsert(ins Insert, k Key) Outcome {
	switch k.Action {
	case ActionCancel:
		s.buf.Reset()
		s.mode = Normal{}
	case ActionCaretLeft:
		if !s.buf.Left() {
			return Ignored
		}
	case ActionCaretRight:
		if !s.buf.Right() {
			return Ignored
		}
	case ActionBackspace:
		if !s.buf.Backspace() {
			return Ignored
		}
	case ActionCommit:
		s.mode = Normal{}
		s.commit(ins.Destination, s.buf.Take())
	case ActionRune:
		if !unicode.IsPrint(k.Rune) {
			return Ignored
		}
		s.buf.InsertRune(k.Rune)
	default:
		return Ignored
	}
	return Changed
}

// commit applies a finished buffer to its destination.
func (s *Session) commit(dest Destination, text string) {
	pending := s.lists[FocusPending]
	switch dest {
	case DestNewItem:
		pending.Append(text)
	case DestNewItemBefore:
		pending.InsertBefore(text)
	case DestNewItemAfter:
		pending.InsertAfter(text)
	case DestEditItem:
		s.Focused().SetCurrent(text)
	}
}

// Draw lays the lists out in area, draws them into g, and returns the cursor position
// of the focused list's selection.
func (s *Session) Draw(g *screen.Grid, area screen.Rect, policy layout.Policy, style listview.Style) screen.Point {
	cursor := screen.Point{X: area.X, Y: area.Y}
	for _, placement := range policy.Place(area, int(s.focus)) {
		pt := s.lists[placement.Pane].Draw(g, placement.Region, style)
		if Focus(placement.Pane) == s.focus {
			cursor = pt
		}
	}
	return cursor
}
