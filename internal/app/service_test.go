package app

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"
)

// cloneLists deep-copies l so the fake store never aliases caller slices.
func cloneLists(l Lists) Lists {
	return Lists{Pending: slices.Clone(l.Pending), Completed: slices.Clone(l.Completed)}
}

type fakeStore struct {
	lists   Lists
	loadErr error
	saveErr error
	saved   int
}

func (f *fakeStore) Load(context.Context) (Lists, error) {
	if f.loadErr != nil {
		return Lists{}, f.loadErr
	}
	return cloneLists(f.lists), nil
}

func (f *fakeStore) Save(_ context.Context, lists Lists) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	f.lists = cloneLists(lists)
	return nil
}

func (f *fakeStore) Append(_ context.Context, kind ListKind, text string) error {
	switch kind {
	case ListPending:
		f.lists.Pending = append(f.lists.Pending, text)
	case ListCompleted:
		f.lists.Completed = append(f.lists.Completed, text)
	default:
		return ErrUnknownList
	}
	return nil
}

// TestServiceAddNormalizesText verifies add trims and flattens line breaks.
func TestServiceAddNormalizesText(t *testing.T) {
	store := &fakeStore{lists: Lists{Pending: []string{"first"}}}
	svc := NewService(store)

	item, err := svc.Add(context.Background(), "  call\nmom \r\n today ")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if item != "call mom   today" {
		t.Fatalf("Add() item = %q", item)
	}
	if !slices.Equal(store.lists.Pending, []string{"first", "call mom   today"}) {
		t.Fatalf("pending = %#v", store.lists.Pending)
	}
}

// TestServiceAddRejectsBlank verifies blank input is reported with ErrEmptyItem.
func TestServiceAddRejectsBlank(t *testing.T) {
	svc := NewService(&fakeStore{})
	for _, raw := range []string{"", "   ", "\n\r\n"} {
		if _, err := svc.Add(context.Background(), raw); !errors.Is(err, ErrEmptyItem) {
			t.Fatalf("Add(%q) error = %v, want ErrEmptyItem", raw, err)
		}
	}
}

// TestServicePrint verifies each list prints one item per line.
func TestServicePrint(t *testing.T) {
	svc := NewService(&fakeStore{lists: Lists{
		Pending:   []string{"a", "b"},
		Completed: []string{"done"},
	}})

	var out bytes.Buffer
	if err := svc.Print(context.Background(), ListPending, &out); err != nil {
		t.Fatalf("Print(pending) error = %v", err)
	}
	if out.String() != "a\nb\n" {
		t.Fatalf("Print(pending) = %q", out.String())
	}

	out.Reset()
	if err := svc.Print(context.Background(), ListCompleted, &out); err != nil {
		t.Fatalf("Print(completed) error = %v", err)
	}
	if out.String() != "done\n" {
		t.Fatalf("Print(completed) = %q", out.String())
	}

	if err := svc.Print(context.Background(), ListKind("archive"), &out); !errors.Is(err, ErrUnknownList) {
		t.Fatalf("Print(archive) error = %v, want ErrUnknownList", err)
	}
}

// TestServiceWrapsStoreErrors verifies store failures keep their cause.
func TestServiceWrapsStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&fakeStore{loadErr: boom, saveErr: boom})
	if _, err := svc.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want wrapped cause", err)
	}
	if err := svc.Save(context.Background(), Lists{}); !errors.Is(err, boom) {
		t.Fatalf("Save() error = %v, want wrapped cause", err)
	}
}

// TestParseListKind verifies aliases and unknown names.
func TestParseListKind(t *testing.T) {
	cases := map[string]ListKind{
		"":          ListPending,
		"pending":   ListPending,
		" TODO ":    ListPending,
		"completed": ListCompleted,
		"Done":      ListCompleted,
	}
	for raw, want := range cases {
		got, err := ParseListKind(raw)
		if err != nil {
			t.Fatalf("ParseListKind(%q) error = %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseListKind(%q) = %q, want %q", raw, got, want)
		}
	}
	if _, err := ParseListKind("later"); !errors.Is(err, ErrUnknownList) {
		t.Fatalf("ParseListKind(later) error = %v, want ErrUnknownList", err)
	}
}
