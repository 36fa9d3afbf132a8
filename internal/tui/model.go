// Package tui runs the list editor session inside a Bubble Tea program.
package tui

import (
	"unicode"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/evanschultz/todo/internal/app"
	"github.com/evanschultz/todo/internal/editor"
	"github.com/evanschultz/todo/internal/layout"
	"github.com/evanschultz/todo/internal/listview"
	"github.com/evanschultz/todo/internal/screen"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
)

// Model represents model data used by this package.
type Model struct {
	session        *editor.Session
	keys           keyMap
	help           help.Model
	panes          editor.Panes
	style          listview.Style
	policy         layout.Policy
	logger         Logger
	clipboardWrite ClipboardWriter

	width  int
	height int
	ready  bool
	status string
}

// NewModel constructs a model over lists. Options apply before the session is built.
func NewModel(lists app.Lists, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		keys:           newKeyMap(),
		help:           h,
		panes:          editor.DefaultPanes(),
		style:          listview.Style{CheckboxWidth: 4},
		policy:         layout.DefaultPolicy(),
		logger:         nopLogger{},
		clipboardWrite: clipboard.WriteAll,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.session = editor.NewSession(lists.Pending, lists.Completed, m.panes)
	return m
}

// Lists returns a snapshot of both lists for persistence.
func (m Model) Lists() app.Lists {
	return app.Lists{
		Pending:   m.session.Pending(),
		Completed: m.session.Completed(),
	}
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		m.logger.Debug("terminal resized", "width", msg.Width, "height", msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		return m.handlePaste(msg.Content)

	default:
		return m, nil
	}
}

// handleKey decodes one key press and feeds it to the session.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	_, inserting := m.session.Mode().(editor.Insert)
	if !inserting && key.Matches(msg, m.keys.copyItem) {
		return m.copyCurrent()
	}
	for _, k := range m.translateKey(msg, inserting) {
		if m.session.HandleKey(k) == editor.Quit {
			m.logger.Info("session quit requested", "pending", len(m.session.Pending()), "completed", len(m.session.Completed()))
			return m, tea.Quit
		}
	}
	return m, nil
}

// translateKey maps a key press to session keys for the current mode. Unbound keys in
// Normal mode produce nothing; in Insert mode their text is typed.
func (m Model) translateKey(msg tea.KeyPressMsg, inserting bool) []editor.Key {
	if !inserting {
		for _, ab := range m.keys.normalBindings() {
			if key.Matches(msg, ab.binding) {
				return []editor.Key{editor.Press(ab.action)}
			}
		}
		return nil
	}
	for _, ab := range m.keys.insertBindings() {
		if key.Matches(msg, ab.binding) {
			return []editor.Key{editor.Press(ab.action)}
		}
	}
	return textKeys(msg.Text)
}

// handlePaste types pasted text into the insert buffer. Line breaks are dropped.
func (m Model) handlePaste(content string) (tea.Model, tea.Cmd) {
	if _, inserting := m.session.Mode().(editor.Insert); !inserting {
		return m, nil
	}
	for _, k := range textKeys(content) {
		m.session.HandleKey(k)
	}
	return m, nil
}

// textKeys converts printable runes of text into character keys.
func textKeys(text string) []editor.Key {
	var out []editor.Key
	for _, r := range text {
		if !unicode.IsPrint(r) {
			continue
		}
		out = append(out, editor.Char(r))
	}
	return out
}

// copyCurrent copies the focused list's current item to the clipboard.
func (m Model) copyCurrent() (tea.Model, tea.Cmd) {
	text, ok := m.session.Focused().CloneCurrent()
	if !ok {
		m.status = "nothing to copy"
		return m, nil
	}
	if err := m.clipboardWrite(text); err != nil {
		m.logger.Warn("clipboard copy failed", "err", err)
		m.status = "copy failed: " + err.Error()
		return m, nil
	}
	m.logger.Debug("item copied", "list", m.session.Focus().String())
	m.status = "copied"
	return m, nil
}

// View handles view.
func (m Model) View() tea.View {
	content, cursor := m.frame()
	v := tea.NewView(content)
	v.AltScreen = true
	v.Cursor = cursor
	return v
}

// frame draws both panes and the status row. The cursor sits on the focused selection in
// Normal mode and on the prompt caret in Insert mode; it is nil before the first resize.
func (m Model) frame() (string, *tea.Cursor) {
	if !m.ready {
		return "", nil
	}

	paneHeight := max(0, m.height-1)
	grid := screen.NewGrid(m.width, paneHeight)
	selection := m.session.Draw(grid, screen.Rect{Width: m.width, Height: paneHeight}, m.policy, m.style)

	content := grid.Render()
	if paneHeight > 0 {
		content += "\n"
	}
	line, promptCol := m.statusLine()
	content += line

	if _, inserting := m.session.Mode().(editor.Insert); inserting {
		return content, tea.NewCursor(promptCol, paneHeight)
	}
	if paneHeight == 0 {
		return content, nil
	}
	return content, tea.NewCursor(selection.X, selection.Y)
}

// statusLine renders the bottom row and returns the prompt caret column when inserting.
func (m Model) statusLine() (string, int) {
	if ins, ok := m.session.Mode().(editor.Insert); ok {
		text, caret := m.session.Buffer()
		label, visible, col := promptLine(ins.Destination.String(), text, caret, m.width)
		return promptStyle.Render(label) + visible, col
	}
	if m.status != "" {
		return statusStyle.Render(truncate(m.status, m.width)), 0
	}
	return m.help.View(m.keys), 0
}

// promptLine lays out "label > text" in width columns, scrolling text horizontally so
// the caret stays visible. It returns the label part, the visible text and the caret column.
func promptLine(label, text string, caret, width int) (string, string, int) {
	prefix := []rune(label + " > ")
	if width <= len(prefix) {
		return string(prefix[:max(0, width)]), "", max(0, width-1)
	}
	avail := width - len(prefix)
	runes := []rune(text)
	caret = min(max(0, caret), len(runes))
	start := 0
	if caret >= avail {
		start = caret - avail + 1
	}
	end := min(len(runes), start+avail)
	return string(prefix), string(runes[start:end]), len(prefix) + caret - start
}

// truncate cuts s to at most width runes.
func truncate(s string, width int) string {
	runes := []rune(s)
	if width < 0 || len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// nopLogger discards every event.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
