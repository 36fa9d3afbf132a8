package tui

import (
	"github.com/evanschultz/todo/internal/editor"
	"github.com/evanschultz/todo/internal/layout"
	"github.com/evanschultz/todo/internal/listview"
)

// KeyConfig holds comma-separated key overrides per normal-mode action. Blank fields keep
// the default binding.
type KeyConfig struct {
	Quit          string
	Confirm       string
	Delete        string
	ToggleFocus   string
	NewItem       string
	NewItemBefore string
	NewItemAfter  string
	Edit          string
	MoveUp        string
	MoveDown      string
	MoveToTop     string
	MoveToBottom  string
	DragUp        string
	DragDown      string
	Sort          string
	Copy          string
}

// Logger receives runtime events from the model.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter func(string) error

type Option func(*Model)

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

func WithPanes(panes editor.Panes) Option {
	return func(m *Model) {
		m.panes = panes
	}
}

func WithStyle(style listview.Style) Option {
	return func(m *Model) {
		m.style = style
	}
}

func WithLayoutPolicy(policy layout.Policy) Option {
	return func(m *Model) {
		m.policy = policy
	}
}

func WithLogger(logger Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClipboard(write ClipboardWriter) Option {
	return func(m *Model) {
		if write != nil {
			m.clipboardWrite = write
		}
	}
}
