package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/glamour"
)

// renderMarkdown converts markdown into terminal text wrapped at width (at least 24
// columns). Rendering failures fall back to the raw markdown.
func renderMarkdown(markdown string, width int, style string) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 24)),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// KeyReferenceMarkdown describes the effective key bindings as a markdown document.
func KeyReferenceMarkdown(cfg KeyConfig) string {
	k := newKeyMap()
	k.applyConfig(cfg)

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Items", []key.Binding{k.newItem, k.newItemBefore, k.newItemAfter, k.editItem, k.confirm, k.deleteItem, k.copyItem}},
		{"Navigation", []key.Binding{k.moveUp, k.moveDown, k.moveToTop, k.moveToBottom, k.dragUp, k.dragDown, k.sortList, k.toggleFocus, k.quit}},
		{"Insert mode", []key.Binding{k.commit, k.cancel, k.caretLeft, k.caretRight, k.backspace}},
	}

	var b strings.Builder
	b.WriteString("# Keys\n")
	for _, section := range sections {
		b.WriteString("\n## " + section.title + "\n\n| key | action |\n|---|---|\n")
		for _, binding := range section.bindings {
			help := binding.Help()
			b.WriteString("| `" + help.Key + "` | " + help.Desc + " |\n")
		}
	}
	return b.String()
}

// RenderKeyReference renders KeyReferenceMarkdown for a terminal of the given width.
// Non-terminal output uses the plain "notty" style.
func RenderKeyReference(cfg KeyConfig, width int, terminal bool) string {
	style := "notty"
	if terminal {
		style = "dark"
	}
	return renderMarkdown(KeyReferenceMarkdown(cfg), width, style)
}
