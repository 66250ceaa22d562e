// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/newsbot-console/internal/formguard"
)

// =============================================================================
// SETTINGS FORM
// =============================================================================

// settingsForm binds the settings guard to text inputs. Text and number
// fields are edited through a textinput; booleans and choices are changed
// in place with space or the arrow keys.
//
// Until the stored values have been read from the server the form is not
// loaded: it takes no edits and refuses to save, since a save overwrites
// every setting.
type settingsForm struct {
	guard   *formguard.Guard
	inputs  map[string]textinput.Model
	focus   int
	loaded  bool
	loading bool
	loadErr error
}

func newSettingsForm(values formguard.Values) settingsForm {
	f := settingsForm{
		guard:  formguard.New(formguard.SettingsFields, values),
		inputs: make(map[string]textinput.Model),
	}
	for _, field := range formguard.SettingsFields {
		if field.Kind != formguard.KindText && field.Kind != formguard.KindNumber {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		if field.Kind == formguard.KindNumber {
			ti.CharLimit = 9
		}
		ti.SetValue(f.guard.Get(field.Name))
		f.inputs[field.Name] = ti
	}
	return f
}

func (f settingsForm) focused() formguard.Field {
	return f.guard.Fields()[f.focus]
}

// typing reports whether a text input has focus.
func (f settingsForm) typing() bool {
	if !f.loaded {
		return false
	}
	_, ok := f.inputs[f.focused().Name]
	return ok
}

// setFocus moves focus to field i, wrapping around.
func (f *settingsForm) setFocus(i int) tea.Cmd {
	n := len(f.guard.Fields())
	f.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for name, ti := range f.inputs {
		if name == f.focused().Name {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		f.inputs[name] = ti
	}
	return cmd
}

func (f *settingsForm) blur() {
	for name, ti := range f.inputs {
		ti.Blur()
		f.inputs[name] = ti
	}
}

// updateInput forwards msg to the focused input and records a change in the
// guard when its value moved.
func (f *settingsForm) updateInput(msg tea.Msg) tea.Cmd {
	if !f.loaded {
		return nil
	}
	name := f.focused().Name
	ti, ok := f.inputs[name]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	f.inputs[name] = ti
	f.set(name, ti.Value())
	return cmd
}

// change toggles a boolean or steps a choice by dir.
func (f *settingsForm) change(dir int) {
	if !f.loaded {
		return
	}
	field := f.focused()
	switch field.Kind {
	case formguard.KindBool:
		if f.guard.Toggle(field.Name) {
			log.Printf("SETTINGS_DIRTY | field=%s", field.Name)
		}
	case formguard.KindChoice:
		if len(field.Choices) == 0 {
			return
		}
		cur := 0
		for i, c := range field.Choices {
			if c == f.guard.Get(field.Name) {
				cur = i
				break
			}
		}
		n := len(field.Choices)
		f.set(field.Name, field.Choices[((cur+dir)%n+n)%n])
	}
}

func (f *settingsForm) set(name, value string) {
	if f.guard.Set(name, value) {
		log.Printf("SETTINGS_DIRTY | field=%s", name)
	}
}

// reset restores the loaded values into the guard and the inputs.
func (f *settingsForm) reset() {
	f.guard.Reset()
	for name, ti := range f.inputs {
		ti.SetValue(f.guard.Get(name))
		f.inputs[name] = ti
	}
}

// channelID is the channel currently typed into the form.
func (f settingsForm) channelID() string {
	return f.guard.Get(formguard.FieldChannelID)
}
