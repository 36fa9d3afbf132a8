package editor

// Destination names where a committed insert buffer goes.
type Destination int

// DestNewItem and related constants enumerate insert destinations.
const (
	DestNewItem Destination = iota
	DestNewItemBefore
	DestNewItemAfter
	DestEditItem
)

// String returns the label shown next to the insert prompt.
func (d Destination) String() string {
	switch d {
	case DestNewItem:
		return "new"
	case DestNewItemBefore:
		return "new above"
	case DestNewItemAfter:
		return "new below"
	case DestEditItem:
		return "edit"
	default:
		return "insert"
	}
}

// Mode is the session's input mode: Normal or Insert with a destination.
// The interface is sealed so a destination cannot exist outside Insert.
type Mode interface {
	isMode()
}

// Normal routes keys to list navigation and mutation.
type Normal struct{}

// Insert routes keys to the edit buffer until commit or cancel.
type Insert struct {
	Destination Destination
}

func (Normal) isMode() {}
func (Insert) isMode() {}
