package tui

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
	"github.com/evanschultz/todo/internal/editor"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit          key.Binding
	confirm       key.Binding
	deleteItem    key.Binding
	toggleFocus   key.Binding
	newItem       key.Binding
	newItemBefore key.Binding
	newItemAfter  key.Binding
	editItem      key.Binding
	moveUp        key.Binding
	moveDown      key.Binding
	moveToTop     key.Binding
	moveToBottom  key.Binding
	dragUp        key.Binding
	dragDown      key.Binding
	sortList      key.Binding
	copyItem      key.Binding

	cancel     key.Binding
	commit     key.Binding
	caretLeft  key.Binding
	caretRight key.Binding
	backspace  key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		confirm:       key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter/space", "toggle done")),
		deleteItem:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete done")),
		toggleFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		newItem:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		newItemBefore: key.NewBinding(key.WithKeys("O", "shift+o"), key.WithHelp("O", "add above")),
		newItemAfter:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "add below")),
		editItem:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		moveUp:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		moveDown:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		moveToTop:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		moveToBottom:  key.NewBinding(key.WithKeys("G", "shift+g", "end"), key.WithHelp("G", "bottom")),
		dragUp:        key.NewBinding(key.WithKeys("K", "shift+k", "shift+up"), key.WithHelp("K", "drag up")),
		dragDown:      key.NewBinding(key.WithKeys("J", "shift+j", "shift+down"), key.WithHelp("J", "drag down")),
		sortList:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		copyItem:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),

		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		caretLeft:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "caret left")),
		caretRight: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "caret right")),
		backspace:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete char")),
	}
}

// applyConfig overrides normal-mode bindings from configured key strings.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.quit, cfg.Quit, "q,ctrl+c", "quit")
	configureBinding(&k.confirm, cfg.Confirm, "enter,space", "toggle done")
	configureBinding(&k.deleteItem, cfg.Delete, "d", "delete done")
	configureBinding(&k.toggleFocus, cfg.ToggleFocus, "tab", "switch list")
	configureBinding(&k.newItem, cfg.NewItem, "a", "add")
	configureBinding(&k.newItemBefore, cfg.NewItemBefore, "O", "add above")
	configureBinding(&k.newItemAfter, cfg.NewItemAfter, "o", "add below")
	configureBinding(&k.editItem, cfg.Edit, "e", "edit")
	configureBinding(&k.moveUp, cfg.MoveUp, "k,up", "up")
	configureBinding(&k.moveDown, cfg.MoveDown, "j,down", "down")
	configureBinding(&k.moveToTop, cfg.MoveToTop, "g,home", "top")
	configureBinding(&k.moveToBottom, cfg.MoveToBottom, "G,end", "bottom")
	configureBinding(&k.dragUp, cfg.DragUp, "K,shift+up", "drag up")
	configureBinding(&k.dragDown, cfg.DragDown, "J,shift+down", "drag down")
	configureBinding(&k.sortList, cfg.Sort, "s", "sort")
	configureBinding(&k.copyItem, cfg.Copy, "y", "copy")
}

// normalBindings pairs each normal-mode binding with its session action, in match order.
func (k keyMap) normalBindings() []actionBinding {
	return []actionBinding{
		{k.quit, editor.ActionQuit},
		{k.confirm, editor.ActionConfirm},
		{k.deleteItem, editor.ActionDelete},
		{k.toggleFocus, editor.ActionToggleFocus},
		{k.newItem, editor.ActionNewItem},
		{k.newItemBefore, editor.ActionNewItemBefore},
		{k.newItemAfter, editor.ActionNewItemAfter},
		{k.editItem, editor.ActionEdit},
		{k.dragUp, editor.ActionDragUp},
		{k.dragDown, editor.ActionDragDown},
		{k.moveUp, editor.ActionMoveUp},
		{k.moveDown, editor.ActionMoveDown},
		{k.moveToTop, editor.ActionMoveToTop},
		{k.moveToBottom, editor.ActionMoveToBottom},
		{k.sortList, editor.ActionSort},
	}
}

// insertBindings pairs each insert-mode binding with its session action.
func (k keyMap) insertBindings() []actionBinding {
	return []actionBinding{
		{k.cancel, editor.ActionCancel},
		{k.commit, editor.ActionCommit},
		{k.caretLeft, editor.ActionCaretLeft},
		{k.caretRight, editor.ActionCaretRight},
		{k.backspace, editor.ActionBackspace},
	}
}

// actionBinding links one key binding to a session action.
type actionBinding struct {
	binding key.Binding
	action  editor.Action
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.newItem, k.confirm, k.editItem, k.toggleFocus, k.deleteItem, k.sortList, k.copyItem, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.newItem, k.newItemBefore, k.newItemAfter, k.editItem, k.confirm, k.deleteItem, k.copyItem},
		{k.moveUp, k.moveDown, k.moveToTop, k.moveToBottom, k.dragUp, k.dragDown, k.sortList},
		{k.toggleFocus, k.quit},
		{k.commit, k.cancel, k.caretLeft, k.caretRight, k.backspace},
	}
}

// configureBinding replaces a binding's keys and help from a raw config value.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a comma-separated key list into matcher keys and help text.
// "space" also matches a literal space and an uppercase rune also matches its shift form.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	if strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	var (
		keys  []string
		helps []string
	)
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		helps = append(helps, token)
		runes := []rune(token)
		switch {
		case strings.EqualFold(token, "space"):
			keys = append(keys, " ", "space")
		case len(runes) == 1 && unicode.IsUpper(runes[0]):
			keys = append(keys, token, "shift+"+string(unicode.ToLower(runes[0])))
		case len(runes) == 1:
			keys = append(keys, token)
		default:
			keys = append(keys, strings.ToLower(token))
		}
	}
	if len(keys) == 0 && raw != fallback {
		return parseBindingKeys(fallback, fallback)
	}
	return keys, strings.Join(helps, "/")
}
