// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package formguard tracks edits to the settings form and flips a one-way
// "unsaved changes" indicator on the first change after load.
package formguard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// State is whether the form differs from its loaded state.
type State int

const (
	Clean State = iota
	Dirty
)

// String returns the state name.
func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Save button labels.
const (
	LabelSave    = "Save settings"
	LabelUnsaved = "Unsaved changes"
)

// Values maps field names to raw input text. Booleans use "on" for true and
// "" for false, as a browser form would submit them.
type Values map[string]string

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Guard watches one loaded form. Its state only moves Clean to Dirty on
// edits; Reset is the only way back. A reloaded form gets a new Guard.
type Guard struct {
	fields    []Field
	initial   Values
	current   Values
	state     State
	mutations int
	invalid   map[string]string
}

// New creates a clean guard over fields with the loaded values.
func New(fields []Field, loaded Values) *Guard {
	initial := make(Values, len(fields))
	for _, f := range fields {
		initial[f.Name] = loaded[f.Name]
	}
	return &Guard{
		fields:  fields,
		initial: initial,
		current: initial.Clone(),
		invalid: make(map[string]string),
	}
}

// Load converts submitted form values into guard values. A boolean absent
// from form is off. Any other field absent from form is an error, so a page
// that changed shape is never taken as the stored settings.
func Load(fields []Field, form url.Values) (Values, error) {
	values := make(Values, len(fields))
	var errs FieldErrors
	for _, f := range fields {
		if f.Kind == KindBool {
			if form.Get(f.Name) != "" {
				values[f.Name] = "on"
			} else {
				values[f.Name] = ""
			}
			continue
		}
		if _, ok := form[f.Name]; !ok {
			errs = append(errs, FieldError{Field: f.Name, Message: "missing from page"})
			continue
		}
		values[f.Name] = form.Get(f.Name)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// Fields returns the form layout.
func (g *Guard) Fields() []Field {
	return g.fields
}

// Get returns the current value of a field.
func (g *Guard) Get(name string) string {
	return g.current[name]
}

// Set changes a field. A value equal to the current one is not a change.
// It reports whether the indicator flipped as a result.
func (g *Guard) Set(name, value string) bool {
	if _, ok := g.current[name]; !ok {
		return false
	}
	if g.current[name] == value {
		return false
	}
	g.current[name] = value
	delete(g.invalid, name)
	return g.MarkChanged()
}

// Toggle flips a boolean field.
func (g *Guard) Toggle(name string) bool {
	if g.current[name] == "on" {
		return g.Set(name, "")
	}
	return g.Set(name, "on")
}

// MarkChanged registers an input change event. Only the first call after
// load or Reset mutates the indicator; it returns true exactly then.
func (g *Guard) MarkChanged() bool {
	if g.state == Dirty {
		return false
	}
	g.state = Dirty
	g.mutations++
	return true
}

// State returns the current state.
func (g *Guard) State() State {
	return g.state
}

// Dirty reports whether there are unsaved changes.
func (g *Guard) Dirty() bool {
	return g.state == Dirty
}

// Mutations counts indicator changes since the guard was created.
func (g *Guard) Mutations() int {
	return g.mutations
}

// SaveLabel is the save button text for the current state.
func (g *Guard) SaveLabel() string {
	if g.state == Dirty {
		return LabelUnsaved
	}
	return LabelSave
}

// Reset restores the loaded values, clears validation marks and returns the
// guard to Clean.
func (g *Guard) Reset() {
	g.current = g.initial.Clone()
	g.invalid = make(map[string]string)
	g.state = Clean
}

// Values returns a copy of the current values.
func (g *Guard) Values() Values {
	return g.current.Clone()
}

// Form encodes the current values for submission. Unchecked booleans are
// omitted like an unchecked checkbox.
func (g *Guard) Form() url.Values {
	form := url.Values{}
	for _, f := range g.fields {
		v := g.current[f.Name]
		if f.Kind == KindBool {
			if v == "on" {
				form.Set(f.Name, "on")
			}
			continue
		}
		form.Set(f.Name, strings.TrimSpace(v))
	}
	return form
}

// =============================================================================
// VALIDATION
// =============================================================================

// FieldError is a problem with one field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors collects every invalid field.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%d invalid fields: %s", len(e), strings.Join(msgs, "; "))
}

// Validate checks required and numeric fields and marks the invalid ones.
// It returns FieldErrors, or nil when the form may be submitted.
func (g *Guard) Validate() error {
	g.invalid = make(map[string]string)
	var errs FieldErrors

	for _, f := range g.fields {
		v := strings.TrimSpace(g.current[f.Name])
		msg := ""

		switch {
		case f.Required && v == "":
			msg = "required"
		case v == "":
		case f.Kind == KindNumber:
			n, err := strconv.Atoi(v)
			if err != nil {
				msg = "must be a whole number"
			} else if n < f.Min {
				msg = fmt.Sprintf("must be at least %d", f.Min)
			}
		case f.Kind == KindChoice && len(f.Choices) > 0:
			if !contains(f.Choices, v) {
				msg = "must be one of " + strings.Join(f.Choices, ", ")
			}
		}

		if msg != "" {
			g.invalid[f.Name] = msg
			errs = append(errs, FieldError{Field: f.Name, Message: msg})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Invalid returns the validation message for a field marked invalid.
func (g *Guard) Invalid(name string) (string, bool) {
	msg, ok := g.invalid[name]
	return msg, ok
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
