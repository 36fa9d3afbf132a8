package app

import (
	"context"
	"fmt"
	"strings"
)

// ListKind names one of the two persisted lists.
type ListKind string

// ListPending and ListCompleted are the two lists.
const (
	ListPending   ListKind = "pending"
	ListCompleted ListKind = "completed"
)

// ParseListKind maps user input to a list kind. Blank input selects the pending list.
func ParseListKind(raw string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "pending", "todo":
		return ListPending, nil
	case "completed", "done":
		return ListCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownList, raw)
	}
}

// Lists holds both lists in display order.
type Lists struct {
	Pending   []string
	Completed []string
}

// Get returns the list named by kind.
func (l Lists) Get(kind ListKind) ([]string, error) {
	switch kind {
	case ListPending:
		return l.Pending, nil
	case ListCompleted:
		return l.Completed, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, kind)
	}
}

// Store persists both lists.
type Store interface {
	Load(context.Context) (Lists, error)
	Save(context.Context, Lists) error
	Append(context.Context, ListKind, string) error
}
