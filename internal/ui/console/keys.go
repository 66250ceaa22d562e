// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the console bindings. Single-letter bindings are only
// active while no text input has focus.
type KeyMap struct {
	// Global
	Dashboard key.Binding
	Articles  key.Binding
	Settings  key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
	QuitAlt   key.Binding

	// Dashboard
	Refresh key.Binding
	Scrape  key.Binding

	// Settings
	Next        key.Binding
	Prev        key.Binding
	Save        key.Binding
	Reset       key.Binding
	Toggle      key.Binding
	TestChannel key.Binding
	TestA       key.Binding
	TestB       key.Binding
	TestMessage key.Binding

	// Article
	Regenerate key.Binding
	Post       key.Binding
	Delete     key.Binding
	Copy       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dashboard: key.NewBinding(key.WithKeys("f1", "1"), key.WithHelp("F1/1", "dashboard")),
		Articles:  key.NewBinding(key.WithKeys("f2", "2"), key.WithHelp("F2/2", "article")),
		Settings:  key.NewBinding(key.WithKeys("f3", "3"), key.WithHelp("F3/3", "settings")),
		Dismiss:   key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc/x", "dismiss toast")),
		Help:      key.NewBinding(key.WithKeys("f10", "?"), key.WithHelp("?", "toggle help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("C-c", "quit")),
		QuitAlt:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Scrape:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scrape now")),

		Next:        key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-tab", "prev field")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "save")),
		Reset:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "reset")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "left", "right"), key.WithHelp("space/←→", "change")),
		TestChannel: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("C-l", "test channel")),
		TestA:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("C-o", "test OpenRouter")),
		TestB:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("C-g", "test Gemini")),
		TestMessage: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("C-t", "send test message")),

		Regenerate: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "regenerate")),
		Post:       key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "post")),
		Delete:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
	}
}

// viewKeys adapts the bindings of one view to help.KeyMap.
type viewKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (v viewKeys) ShortHelp() []key.Binding  { return v.short }
func (v viewKeys) FullHelp() [][]key.Binding { return v.full }

// helpFor returns the bindings shown for view.
func (k KeyMap) helpFor(view View) viewKeys {
	global := []key.Binding{k.Dashboard, k.Articles, k.Settings, k.Dismiss, k.Quit}
	var local []key.Binding
	switch view {
	case ViewDashboard:
		local = []key.Binding{k.Refresh, k.Scrape, k.QuitAlt}
	case ViewSettings:
		local = []key.Binding{k.Next, k.Prev, k.Toggle, k.Save, k.Reset, k.TestChannel, k.TestA, k.TestB, k.TestMessage}
	case ViewArticle:
		local = []key.Binding{k.Regenerate, k.Post, k.Delete, k.Copy}
	}
	return viewKeys{
		short: append(local[:len(local):len(local)], k.Help),
		full:  [][]key.Binding{local, global},
	}
}
