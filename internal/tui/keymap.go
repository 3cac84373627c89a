package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap holds the board key bindings.
type keyMap struct {
	quit          key.Binding
	toggleHelp    key.Binding
	moveLeft      key.Binding
	moveRight     key.Binding
	moveUp        key.Binding
	moveDown      key.Binding
	addItem       key.Binding
	itemInfo      key.Binding
	grab          key.Binding
	drop          key.Binding
	cancel        key.Binding
	moveItemLeft  key.Binding
	moveItemRight key.Binding
	copyID        key.Binding
	activityLog   key.Binding
}

// newKeyMap constructs the default bindings.
func newKeyMap() keyMap {
	return keyMap{
		quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "lane left")),
		moveRight:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "lane right")),
		moveUp:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "item up")),
		moveDown:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "item down")),
		addItem:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		itemInfo:      key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "project info")),
		grab:          key.NewBinding(key.WithKeys("space", " "), key.WithHelp("space", "grab project")),
		drop:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		moveItemLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "drag to lane left")),
		moveItemRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "drag to lane right")),
		copyID:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		activityLog:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "activity log")),
	}
}

// ShortHelp returns the bindings shown in the help bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addItem, k.grab, k.itemInfo, k.activityLog, k.toggleHelp, k.quit,
	}
}

// FullHelp returns the grouped bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addItem, k.itemInfo, k.copyID, k.activityLog, k.toggleHelp, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.grab, k.drop, k.cancel, k.moveItemLeft, k.moveItemRight},
	}
}

// dragKeyMap is the help shown while a keyboard drag is in progress.
type dragKeyMap struct {
	keys keyMap
}

// ShortHelp returns the drag bindings.
func (d dragKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{d.keys.moveLeft, d.keys.moveRight, d.keys.drop, d.keys.cancel}
}

// FullHelp returns the drag bindings as one group.
func (d dragKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{d.ShortHelp()}
}

// KeyConfig holds user overrides for rebindable keys. Blank values keep the
// defaults.
type KeyConfig struct {
	AddItem     string
	Grab        string
	CopyID      string
	ActivityLog string
}

// applyConfig rebinds the configurable keys.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addItem, cfg.AddItem, "n", "new project")
	configureBinding(&k.grab, cfg.Grab, "space", "grab project")
	configureBinding(&k.copyID, cfg.CopyID, "y", "copy id")
	configureBinding(&k.activityLog, cfg.ActivityLog, "g", "activity log")
}

// configureBinding replaces binding keys with the parsed override.
func configureBinding(binding *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	binding.SetKeys(keys...)
	binding.SetHelp(help, desc)
}

// parseBindingKeys turns one configured key into matcher keys and help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	switch lower := strings.ToLower(raw); {
	case lower == "space" || raw == " ":
		return []string{" ", "space"}, "space"
	case utf8.RuneCountInString(raw) == 1:
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + strings.ToLower(raw)}, raw
		}
		return []string{raw}, raw
	default:
		return []string{lower}, raw
	}
}
