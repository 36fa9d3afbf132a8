package tui

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/todo/internal/app"
	"github.com/evanschultz/todo/internal/editor"
)

// applyMsg runs one message through Update and returns the updated model.
func applyMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	out, cmd := m.Update(msg)
	updated, ok := out.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", out)
	}
	return updated, cmd
}

// press builds a printable key press.
func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// typeRunes sends each rune of text as a key press.
func typeRunes(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = applyMsg(t, m, press(r))
	}
	return m
}

// sized applies an initial window size.
func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	m, _ = applyMsg(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

// TestModelConfirmAndQuit verifies confirm moves an item and quit returns tea.Quit.
func TestModelConfirmAndQuit(t *testing.T) {
	m := sized(t, NewModel(app.Lists{Pending: []string{"buy milk", "call mom"}}), 80, 10)

	m, _ = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	lists := m.Lists()
	if !slices.Equal(lists.Pending, []string{"call mom"}) || !slices.Equal(lists.Completed, []string{"buy milk"}) {
		t.Fatalf("unexpected lists after confirm %#v", lists)
	}

	_, cmd := applyMsg(t, m, press('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg from quit command")
	}
}

// TestModelInsertFlow verifies typing, caret movement and commit through key presses.
func TestModelInsertFlow(t *testing.T) {
	m := sized(t, NewModel(app.Lists{}), 80, 10)
	m, _ = applyMsg(t, m, press('a'))
	if _, ok := m.session.Mode().(editor.Insert); !ok {
		t.Fatalf("expected insert mode, got %#v", m.session.Mode())
	}
	m = typeRunes(t, m, "new tsk")
	m, _ = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	m, _ = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	m, _ = applyMsg(t, m, press('a'))
	m, _ = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := m.Lists().Pending; !slices.Equal(got, []string{"new task"}) {
		t.Fatalf("unexpected pending %#v", got)
	}
	if _, ok := m.session.Mode().(editor.Normal); !ok {
		t.Fatalf("expected normal mode after commit, got %#v", m.session.Mode())
	}
}

// TestModelInsertModeTypesBoundKeys verifies normal-mode letters are text while inserting.
func TestModelInsertModeTypesBoundKeys(t *testing.T) {
	m := sized(t, NewModel(app.Lists{}), 80, 10)
	m, _ = applyMsg(t, m, press('a'))
	m = typeRunes(t, m, "q d")
	m, cmd := applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEsc})
	if cmd != nil {
		t.Fatal("unexpected command while cancelling insert")
	}
	if text, _ := m.session.Buffer(); text != "" {
		t.Fatalf("expected cleared buffer, got %q", text)
	}
	if len(m.Lists().Pending) != 0 {
		t.Fatalf("cancel should not add items, got %#v", m.Lists().Pending)
	}
}

// TestModelPasteInsertsPrintableRunes verifies bracketed paste drops line breaks.
func TestModelPasteInsertsPrintableRunes(t *testing.T) {
	m := sized(t, NewModel(app.Lists{}), 80, 10)
	m, _ = applyMsg(t, m, tea.PasteMsg{Content: "ignored in normal"})
	if _, ok := m.session.Mode().(editor.Normal); !ok {
		t.Fatal("paste should not leave normal mode")
	}
	m, _ = applyMsg(t, m, press('a'))
	m, _ = applyMsg(t, m, tea.PasteMsg{Content: "line one\nline two"})
	if text, _ := m.session.Buffer(); text != "line oneline two" {
		t.Fatalf("unexpected pasted buffer %q", text)
	}
}

// TestModelCopyUsesClipboard verifies the copy key writes the current item.
func TestModelCopyUsesClipboard(t *testing.T) {
	var copied []string
	m := NewModel(app.Lists{Pending: []string{"first", "second"}}, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))
	m = sized(t, m, 80, 10)
	m, _ = applyMsg(t, m, press('j'))
	m, _ = applyMsg(t, m, press('y'))
	if !slices.Equal(copied, []string{"second"}) {
		t.Fatalf("unexpected clipboard writes %#v", copied)
	}
	if m.status != "copied" {
		t.Fatalf("unexpected status %q", m.status)
	}
	m, _ = applyMsg(t, m, press('j'))
	if m.status != "" {
		t.Fatalf("expected status cleared on next key, got %q", m.status)
	}
}

// TestModelCopyFailureIsReported verifies clipboard errors surface without quitting.
func TestModelCopyFailureIsReported(t *testing.T) {
	logger := &recordingLogger{}
	m := NewModel(app.Lists{Pending: []string{"x"}},
		WithClipboard(func(string) error { return errors.New("no display") }),
		WithLogger(logger),
	)
	m = sized(t, m, 80, 10)
	m, cmd := applyMsg(t, m, press('y'))
	if cmd != nil {
		t.Fatal("copy failure must not quit")
	}
	if !strings.Contains(m.status, "no display") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !slices.Contains(logger.warns, "clipboard copy failed") {
		t.Fatalf("expected clipboard warning, got %#v", logger.warns)
	}
	if content, _ := m.frame(); !strings.Contains(content, "copy failed") {
		t.Fatal("expected status message in view")
	}
}

// TestModelCopyOnEmptyList verifies copying nothing does not call the clipboard.
func TestModelCopyOnEmptyList(t *testing.T) {
	called := false
	m := NewModel(app.Lists{}, WithClipboard(func(string) error {
		called = true
		return nil
	}))
	m, _ = applyMsg(t, sized(t, m, 80, 10), press('y'))
	if called {
		t.Fatal("clipboard should not be called for an empty list")
	}
	if m.status != "nothing to copy" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

// TestModelKeyConfigOverrides verifies configured keys replace defaults.
func TestModelKeyConfigOverrides(t *testing.T) {
	m := NewModel(app.Lists{Pending: []string{"a"}}, WithKeyConfig(KeyConfig{Confirm: "x"}))
	m = sized(t, m, 80, 10)
	m, _ = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(m.Lists().Completed) != 0 {
		t.Fatal("enter should no longer confirm")
	}
	m, _ = applyMsg(t, m, press('x'))
	if !slices.Equal(m.Lists().Completed, []string{"a"}) {
		t.Fatalf("unexpected completed %#v", m.Lists().Completed)
	}
}

// TestModelViewLayout verifies pane rows, the status row and cursor placement.
func TestModelViewLayout(t *testing.T) {
	m := NewModel(app.Lists{Pending: []string{"buy milk"}, Completed: []string{"call mom"}})
	if _, cursor := m.frame(); cursor != nil {
		t.Fatal("expected no cursor before the first resize")
	}
	m = sized(t, m, 80, 6)
	content, cursor := m.frame()
	if lines := strings.Split(content, "\n"); len(lines) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(lines))
	}
	for _, want := range []string{"TODO", "DONE", "buy milk", "call mom", "add"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in view:\n%s", want, content)
		}
	}
	if cursor == nil || cursor.X != 0 || cursor.Y != 1 {
		t.Fatalf("unexpected cursor %#v", cursor)
	}
	if v := m.View(); !v.AltScreen || v.Cursor == nil {
		t.Fatalf("expected alt screen view with cursor, got %#v", v)
	}

	m, _ = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if _, cursor := m.frame(); cursor == nil || cursor.X != 40 {
		t.Fatalf("expected cursor in right pane, got %#v", cursor)
	}

	m, _ = applyMsg(t, m, press('a'))
	m = typeRunes(t, m, "hi")
	content, cursor = m.frame()
	if !strings.Contains(content, "new > ") || !strings.Contains(content, "hi") {
		t.Fatalf("expected insert prompt in view:\n%s", content)
	}
	if cursor == nil || cursor.Y != 5 || cursor.X != len("new > hi") {
		t.Fatalf("unexpected prompt cursor %#v", cursor)
	}
}

// TestModelNarrowViewShowsFocusedPane verifies the single-pane layout below the threshold.
func TestModelNarrowViewShowsFocusedPane(t *testing.T) {
	m := sized(t, NewModel(app.Lists{Pending: []string{"p"}, Completed: []string{"c"}}), 40, 6)
	content, _ := m.frame()
	if !strings.Contains(content, "TODO") || strings.Contains(content, "DONE") {
		t.Fatalf("expected only the pending pane:\n%s", content)
	}
}

// TestPromptLineScrollsToCaret verifies horizontal scrolling keeps the caret visible.
func TestPromptLineScrollsToCaret(t *testing.T) {
	cases := []struct {
		name        string
		text        string
		caret       int
		width       int
		wantVisible string
		wantCol     int
	}{
		{name: "fits", text: "abc", caret: 3, width: 20, wantVisible: "abc", wantCol: 9},
		{name: "scrolls at end", text: "abcdefghij", caret: 10, width: 10, wantVisible: "hij", wantCol: 9},
		{name: "caret mid", text: "abcdefghij", caret: 2, width: 10, wantVisible: "abcd", wantCol: 8},
		{name: "tiny width", text: "abc", caret: 1, width: 3, wantVisible: "", wantCol: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, visible, col := promptLine("new", tc.text, tc.caret, tc.width)
			if visible != tc.wantVisible || col != tc.wantCol {
				t.Fatalf("promptLine() = (%q, %q, %d), want visible %q col %d", label, visible, col, tc.wantVisible, tc.wantCol)
			}
			if got := len([]rune(label + visible)); got > tc.width {
				t.Fatalf("prompt width %d exceeds %d", got, tc.width)
			}
		})
	}
}

// recordingLogger captures warn messages for assertions.
type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Debug(string, ...any)      {}
func (l *recordingLogger) Info(string, ...any)       {}
func (l *recordingLogger) Warn(msg string, _ ...any) { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(string, ...any)      {}
