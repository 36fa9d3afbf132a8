// Package sqlite stores both lists in a single SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanschultz/todo/internal/app"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository implements app.Store over an items table.
type Repository struct {
	db    *sql.DB
	newID func() string
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return newRepository(db)
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	db.SetMaxOpenConns(1)
	return newRepository(db)
}

// newRepository migrates db and wraps it.
func newRepository(db *sql.DB) (*Repository, error) {
	repo := &Repository{db: db, newID: uuid.NewString}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the schema when absent.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			list TEXT NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_list_position ON items(list, position);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Load reads both lists ordered by position.
func (r *Repository) Load(ctx context.Context) (app.Lists, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT list, text FROM items ORDER BY list, position`)
	if err != nil {
		return app.Lists{}, err
	}
	defer rows.Close()

	var lists app.Lists
	for rows.Next() {
		var list, text string
		if err := rows.Scan(&list, &text); err != nil {
			return app.Lists{}, err
		}
		switch app.ListKind(list) {
		case app.ListPending:
			lists.Pending = append(lists.Pending, text)
		case app.ListCompleted:
			lists.Completed = append(lists.Completed, text)
		default:
			return app.Lists{}, fmt.Errorf("%w: %q in items table", app.ErrUnknownList, list)
		}
	}
	return lists, rows.Err()
}

// Save replaces every row of both lists in one transaction.
func (r *Repository) Save(ctx context.Context, lists app.Lists) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.replaceList(ctx, tx, app.ListPending, lists.Pending); err != nil {
		return err
	}
	if err = r.replaceList(ctx, tx, app.ListCompleted, lists.Completed); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// replaceList deletes and reinserts one list's rows.
func (r *Repository) replaceList(ctx context.Context, tx *sql.Tx, kind app.ListKind, items []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list = ?`, string(kind)); err != nil {
		return err
	}
	for pos, text := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items(id, list, position, text) VALUES (?, ?, ?, ?)`,
			r.newID(), string(kind), pos, text,
		); err != nil {
			return err
		}
	}
	return nil
}

// Append inserts one item after the last row of kind.
func (r *Repository) Append(ctx context.Context, kind app.ListKind, text string) error {
	if kind != app.ListPending && kind != app.ListCompleted {
		return fmt.Errorf("%w: %q", app.ErrUnknownList, kind)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items(id, list, position, text)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM items WHERE list = ?), ?)
	`, r.newID(), string(kind), string(kind), text)
	return err
}
