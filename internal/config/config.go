package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	toml "github.com/pelletier/go-toml/v2"
)

// Backend selects the list storage implementation.
type Backend string

// BackendText and BackendSQLite are the supported storage backends.
const (
	BackendText   Backend = "text"
	BackendSQLite Backend = "sqlite"
)

// DefaultPaletteSize is the number of hues in the generated palette.
const DefaultPaletteSize = 12

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Layout  LayoutConfig  `toml:"layout"`
	Display DisplayConfig `toml:"display"`
	Keys    KeyConfig     `toml:"keys"`
	Logging LoggingConfig `toml:"logging"`
}

type StorageConfig struct {
	Backend       Backend `toml:"backend"`
	PendingPath   string  `toml:"pending_path"`
	CompletedPath string  `toml:"completed_path"`
	DBPath        string  `toml:"db_path"`
}

type LayoutConfig struct {
	SinglePaneMaxWidth int `toml:"single_pane_max_width"`
	CheckboxWidth      int `toml:"checkbox_width"`
}

type DisplayConfig struct {
	PendingTitle      string   `toml:"pending_title"`
	CompletedTitle    string   `toml:"completed_title"`
	PendingCheckbox   string   `toml:"pending_checkbox"`
	CompletedCheckbox string   `toml:"completed_checkbox"`
	TitleColor        string   `toml:"title_color"` // hex, blank = terminal default
	Palette           []string `toml:"palette"`     // hex, empty = generated hue wheel
}

// KeyConfig holds comma-separated key overrides per action.
type KeyConfig struct {
	Quit          string `toml:"quit"`
	Confirm       string `toml:"confirm"`
	Delete        string `toml:"delete"`
	ToggleFocus   string `toml:"toggle_focus"`
	NewItem       string `toml:"new_item"`
	NewItemBefore string `toml:"new_item_before"`
	NewItemAfter  string `toml:"new_item_after"`
	Edit          string `toml:"edit"`
	MoveUp        string `toml:"move_up"`
	MoveDown      string `toml:"move_down"`
	MoveToTop     string `toml:"move_to_top"`
	MoveToBottom  string `toml:"move_to_bottom"`
	DragUp        string `toml:"drag_up"`
	DragDown      string `toml:"drag_down"`
	Sort          string `toml:"sort"`
	Copy          string `toml:"copy"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

var logLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Default returns the configuration used when no file overrides it.
func Default(pendingPath, completedPath, dbPath string) Config {
	return Config{
		Storage: StorageConfig{
			Backend:       BackendText,
			PendingPath:   pendingPath,
			CompletedPath: completedPath,
			DBPath:        dbPath,
		},
		Layout: LayoutConfig{
			SinglePaneMaxWidth: 55,
			CheckboxWidth:      4,
		},
		Display: DisplayConfig{
			PendingTitle:      "TODO",
			CompletedTitle:    "DONE",
			PendingCheckbox:   "[ ]",
			CompletedCheckbox: "[x]",
		},
		Keys: KeyConfig{
			Quit:          "q,ctrl+c",
			Confirm:       "enter,space",
			Delete:        "d",
			ToggleFocus:   "tab",
			NewItem:       "a",
			NewItemBefore: "O",
			NewItemAfter:  "o",
			Edit:          "e",
			MoveUp:        "k,up",
			MoveDown:      "j,down",
			MoveToTop:     "g,home",
			MoveToBottom:  "G,end",
			DragUp:        "K,shift+up",
			DragDown:      "J,shift+down",
			Sort:          "s",
			Copy:          "y",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     "log",
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendText:
		if strings.TrimSpace(c.Storage.PendingPath) == "" {
			return errors.New("storage.pending_path is required")
		}
		if strings.TrimSpace(c.Storage.CompletedPath) == "" {
			return errors.New("storage.completed_path is required")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.DBPath) == "" {
			return errors.New("storage.db_path is required")
		}
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	if c.Layout.SinglePaneMaxWidth < 0 {
		return errors.New("layout.single_pane_max_width must be >= 0")
	}
	if c.Layout.CheckboxWidth < 0 {
		return errors.New("layout.checkbox_width must be >= 0")
	}

	if _, err := c.PaletteColors(); err != nil {
		return err
	}
	if _, err := c.TitleColor(); err != nil {
		return err
	}

	level := strings.TrimSpace(strings.ToLower(c.Logging.Level))
	if !slices.Contains(logLevels, level) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// PaletteColors returns the configured item palette, or the generated hue wheel when
// none is configured.
func (c Config) PaletteColors() ([]color.Color, error) {
	if len(c.Display.Palette) == 0 {
		return DefaultPalette(), nil
	}
	out := make([]color.Color, 0, len(c.Display.Palette))
	for i, raw := range c.Display.Palette {
		col, err := colorful.Hex(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("display.palette[%d] %q: %w", i, raw, err)
		}
		out = append(out, col)
	}
	return out, nil
}

// TitleColor returns the configured title colour, nil when blank.
func (c Config) TitleColor() (color.Color, error) {
	raw := strings.TrimSpace(c.Display.TitleColor)
	if raw == "" {
		return nil, nil
	}
	col, err := colorful.Hex(raw)
	if err != nil {
		return nil, fmt.Errorf("display.title_color %q: %w", raw, err)
	}
	return col, nil
}

// DefaultPalette rotates the hue 30 degrees per entry at fixed saturation and value.
func DefaultPalette() []color.Color {
	out := make([]color.Color, DefaultPaletteSize)
	step := 360.0 / DefaultPaletteSize
	for i := range out {
		out[i] = colorful.Hsv(float64(i)*step, 0.55, 0.95).Clamped()
	}
	return out
}

// Write encodes cfg as TOML at path, creating the parent directory. It refuses to
// replace an existing file unless overwrite is set.
func Write(path string, cfg Config, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", os.ErrExist, path)
		}
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
