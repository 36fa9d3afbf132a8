package app

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Service wraps a Store with the non-interactive list operations.
type Service struct {
	store Store
}

// NewService constructs a service over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Load reads both lists.
func (s *Service) Load(ctx context.Context) (Lists, error) {
	lists, err := s.store.Load(ctx)
	if err != nil {
		return Lists{}, fmt.Errorf("load lists: %w", err)
	}
	return lists, nil
}

// Save writes both lists.
func (s *Service) Save(ctx context.Context, lists Lists) error {
	if err := s.store.Save(ctx, lists); err != nil {
		return fmt.Errorf("save lists: %w", err)
	}
	return nil
}

// Add appends one pending item. Line breaks collapse to spaces since the text format
// stores one item per line.
func (s *Service) Add(ctx context.Context, text string) (string, error) {
	item := NormalizeItem(text)
	if item == "" {
		return "", ErrEmptyItem
	}
	if err := s.store.Append(ctx, ListPending, item); err != nil {
		return "", fmt.Errorf("append pending item: %w", err)
	}
	return item, nil
}

// Print writes one list to w, one item per line.
func (s *Service) Print(ctx context.Context, kind ListKind, w io.Writer) error {
	lists, err := s.Load(ctx)
	if err != nil {
		return err
	}
	items, err := lists.Get(kind)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := io.WriteString(w, item+"\n"); err != nil {
			return fmt.Errorf("write %s list: %w", kind, err)
		}
	}
	return nil
}

// NormalizeItem trims text and replaces line breaks with spaces.
func NormalizeItem(text string) string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	return strings.TrimSpace(text)
}

