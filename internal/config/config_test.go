package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func testDefaults() Config {
	return Default("/tmp/todo/pending.txt", "/tmp/todo/done.txt", "/tmp/todo/todo.db")
}

func TestDefaultConfig(t *testing.T) {
	cfg := testDefaults()
	if cfg.Storage.Backend != BackendText {
		t.Fatalf("unexpected backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.PendingPath != "/tmp/todo/pending.txt" || cfg.Storage.CompletedPath != "/tmp/todo/done.txt" {
		t.Fatalf("unexpected list paths %#v", cfg.Storage)
	}
	if cfg.Layout.SinglePaneMaxWidth != 55 || cfg.Layout.CheckboxWidth != 4 {
		t.Fatalf("unexpected layout %#v", cfg.Layout)
	}
	if cfg.Keys.Confirm != "enter,space" {
		t.Fatalf("unexpected confirm keys %q", cfg.Keys.Confirm)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := testDefaults()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.PendingPath != defaults.Storage.PendingPath {
		t.Fatalf("expected default pending path, got %q", cfg.Storage.PendingPath)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	cfg, err := Load(path, testDefaults())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Display.PendingTitle != "TODO" {
		t.Fatalf("unexpected title %q", cfg.Display.PendingTitle)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[storage]
backend = "sqlite"
db_path = "/custom/todo.db"

[layout]
single_pane_max_width = 80

[display]
pending_title = "Inbox"
palette = ["#ff0000", "#00ff00"]

[keys]
quit = "x"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, testDefaults())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.DBPath != "/custom/todo.db" {
		t.Fatalf("unexpected storage %#v", cfg.Storage)
	}
	if cfg.Storage.PendingPath != "/tmp/todo/pending.txt" {
		t.Fatalf("expected untouched pending path, got %q", cfg.Storage.PendingPath)
	}
	if cfg.Layout.SinglePaneMaxWidth != 80 || cfg.Layout.CheckboxWidth != 4 {
		t.Fatalf("unexpected layout %#v", cfg.Layout)
	}
	if cfg.Display.PendingTitle != "Inbox" || cfg.Display.CompletedTitle != "DONE" {
		t.Fatalf("unexpected titles %#v", cfg.Display)
	}
	if cfg.Keys.Quit != "x" || cfg.Keys.Sort != "s" {
		t.Fatalf("unexpected keys %#v", cfg.Keys)
	}
	palette, err := cfg.PaletteColors()
	if err != nil {
		t.Fatalf("PaletteColors() error = %v", err)
	}
	if len(palette) != 2 {
		t.Fatalf("expected 2 palette entries, got %d", len(palette))
	}
	if got := palette[0].(colorful.Color).Hex(); got != "#ff0000" {
		t.Fatalf("unexpected first palette entry %q", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"backend":  "[storage]\nbackend = \"csv\"\n",
		"palette":  "[display]\npalette = [\"not-a-colour\"]\n",
		"title":    "[display]\ntitle_color = \"#zz\"\n",
		"level":    "[logging]\nlevel = \"loud\"\n",
		"checkbox": "[layout]\ncheckbox_width = -1\n",
		"width":    "[layout]\nsingle_pane_max_width = -5\n",
		"db path":  "[storage]\nbackend = \"sqlite\"\ndb_path = \"  \"\n",
		"pending":  "[storage]\npending_path = \"\"\n",
		"toml":     "[storage\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := Load(path, testDefaults()); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestDefaultPaletteRotatesHue(t *testing.T) {
	palette := DefaultPalette()
	if len(palette) != DefaultPaletteSize {
		t.Fatalf("expected %d colours, got %d", DefaultPaletteSize, len(palette))
	}
	for i, c := range palette {
		h, _, _ := c.(colorful.Color).Hsv()
		want := float64(i) * 30
		if diff := h - want; diff > 0.5 || diff < -0.5 {
			t.Fatalf("palette[%d] hue = %.2f, want %.0f", i, h, want)
		}
	}
}

func TestWriteRoundTripsAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := testDefaults()
	cfg.Display.CompletedTitle = "Finished"
	if err := Write(path, cfg, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	loaded, err := Load(path, testDefaults())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Display.CompletedTitle != "Finished" {
		t.Fatalf("unexpected completed title %q", loaded.Display.CompletedTitle)
	}
	if err := Write(path, cfg, false); !errors.Is(err, os.ErrExist) {
		t.Fatalf("Write() second call error = %v, want ErrExist", err)
	}
	if err := Write(path, cfg, true); err != nil {
		t.Fatalf("Write() overwrite error = %v", err)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "config.toml")
	if err := EnsureConfigDir(target); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(target)); err != nil {
		t.Fatalf("expected dir to exist, stat error %v", err)
	}
}
