package editor

// Action is one abstract key the session understands, independent of any terminal
// library's key event type.
type Action int

// ActionNone and related constants enumerate session actions. The first group applies in
// Normal mode, the second in Insert mode.
const (
	ActionNone Action = iota
	ActionQuit
	ActionConfirm
	ActionDelete
	ActionToggleFocus
	ActionNewItem
	ActionNewItemBefore
	ActionNewItemAfter
	ActionEdit
	ActionMoveUp
	ActionMoveDown
	ActionMoveToTop
	ActionMoveToBottom
	ActionDragUp
	ActionDragDown
	ActionSort

	ActionCancel
	ActionCaretLeft
	ActionCaretRight
	ActionBackspace
	ActionCommit
	ActionRune
)

// Key is one decoded key event. Rune is set only for ActionRune.
type Key struct {
	Action Action
	Rune   rune
}

// Press builds a Key for a non-character action.
func Press(a Action) Key {
	return Key{Action: a}
}

// Char builds a Key for a printable rune.
func Char(r rune) Key {
	return Key{Action: ActionRune, Rune: r}
}

// Outcome tells the caller what a key did.
type Outcome int

// Ignored and related constants enumerate key outcomes.
const (
	// Ignored means nothing changed and no redraw is needed.
	Ignored Outcome = iota
	// Changed means state changed and the screen should be redrawn.
	Changed
	// Quit means the session ended and the lists should be persisted.
	Quit
)
