// Package textfile stores each list as a plain text file with one item per line.
package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanschultz/todo/internal/app"
)

// Store reads and writes the pending and completed list files.
type Store struct {
	pendingPath   string
	completedPath string
}

// New constructs a store over the two list files. Neither file needs to exist yet.
func New(pendingPath, completedPath string) (*Store, error) {
	if strings.TrimSpace(pendingPath) == "" || strings.TrimSpace(completedPath) == "" {
		return nil, errors.New("list file paths are required")
	}
	return &Store{pendingPath: pendingPath, completedPath: completedPath}, nil
}

// Path returns the file backing kind.
func (s *Store) Path(kind app.ListKind) (string, error) {
	switch kind {
	case app.ListPending:
		return s.pendingPath, nil
	case app.ListCompleted:
		return s.completedPath, nil
	default:
		return "", fmt.Errorf("%w: %q", app.ErrUnknownList, kind)
	}
}

// Load reads both files. A missing file is an empty list.
func (s *Store) Load(_ context.Context) (app.Lists, error) {
	pending, err := readItems(s.pendingPath)
	if err != nil {
		return app.Lists{}, err
	}
	completed, err := readItems(s.completedPath)
	if err != nil {
		return app.Lists{}, err
	}
	return app.Lists{Pending: pending, Completed: completed}, nil
}

// Save truncates and rewrites both files.
func (s *Store) Save(_ context.Context, lists app.Lists) error {
	if err := writeItems(s.pendingPath, lists.Pending); err != nil {
		return err
	}
	return writeItems(s.completedPath, lists.Completed)
}

// Append adds one item to the end of a list file without rewriting it.
func (s *Store) Append(_ context.Context, kind app.ListKind, text string) error {
	path, err := s.Path(kind)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create list dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	prefix, err := missingNewline(f)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", path, err)
	}
	if _, err := io.WriteString(f, prefix+text+"\n"); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return f.Close()
}

// readItems returns one item per line of path, or nil when path does not exist.
func readItems(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(content) == 0 {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// writeItems truncates path and writes every item followed by a newline.
func writeItems(path string, items []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create list dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, item := range items {
		if _, err := w.WriteString(item + "\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// missingNewline returns "\n" when f is non-empty and does not end in a newline.
func missingNewline(f *os.File) (string, error) {
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return "", err
	}
	if last[0] == '\n' {
		return "", nil
	}
	return "\n", nil
}
