// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package formguard

import (
	"errors"
	"net/url"
	"testing"
)

func newSettingsGuard() *Guard {
	return New(SettingsFields, DefaultSettings())
}

func TestGuard_FirstChangeMutatesOnce(t *testing.T) {
	g := newSettingsGuard()

	if g.State() != Clean || g.SaveLabel() != LabelSave {
		t.Fatalf("new guard = %v/%q, want clean", g.State(), g.SaveLabel())
	}

	if !g.Set(FieldChannelID, "@news") {
		t.Error("first change should flip the indicator")
	}
	for _, edit := range []struct{ name, value string }{
		{FieldChannelID, "@news2"},
		{FieldPostingInterval, "30"},
		{FieldSummaryStyle, "casual"},
	} {
		if g.Set(edit.name, edit.value) {
			t.Errorf("Set(%s) flipped the indicator again", edit.name)
		}
	}
	if g.Toggle(FieldPostingEnabled) {
		t.Error("Toggle flipped the indicator again")
	}

	if g.Mutations() != 1 {
		t.Errorf("Mutations() = %d, want 1", g.Mutations())
	}
	if g.SaveLabel() != LabelUnsaved {
		t.Errorf("SaveLabel() = %q, want %q", g.SaveLabel(), LabelUnsaved)
	}
}

func TestGuard_SameValueIsNotAChange(t *testing.T) {
	g := newSettingsGuard()

	if g.Set(FieldPostingInterval, "60") {
		t.Error("setting the loaded value should not flip the indicator")
	}
	if g.Dirty() {
		t.Error("guard should still be clean")
	}
	if g.Set("unknown_field", "x") {
		t.Error("unknown field should be ignored")
	}
}

func TestGuard_ResetReturnsToClean(t *testing.T) {
	g := newSettingsGuard()
	g.Set(FieldChannelID, "@news")
	g.Set(FieldPostingInterval, "abc")
	_ = g.Validate()

	g.Reset()

	if g.State() != Clean {
		t.Errorf("State() = %v, want clean", g.State())
	}
	if g.Get(FieldChannelID) != "" || g.Get(FieldPostingInterval) != "60" {
		t.Errorf("values not restored: %v", g.Values())
	}
	if _, bad := g.Invalid(FieldPostingInterval); bad {
		t.Error("Reset should clear invalid marks")
	}

	if !g.Set(FieldChannelID, "@again") {
		t.Error("first change after Reset should flip the indicator")
	}
	if g.Mutations() != 2 {
		t.Errorf("Mutations() = %d, want 2", g.Mutations())
	}
}

func TestGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"valid interval", FieldPostingInterval, "15", false},
		{"blank interval", FieldPostingInterval, "  ", true},
		{"non-numeric max", FieldMaxArticlesPerDay, "lots", true},
		{"zero max", FieldMaxArticlesPerDay, "0", true},
		{"unknown style", FieldSummaryStyle, "poetic", true},
		{"gemini provider", FieldAIProvider, "gemini", false},
		{"blank optional channel", FieldChannelID, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSettingsGuard()
			g.Set(tt.field, tt.value)

			err := g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var fe FieldErrors
			if !errors.As(err, &fe) || fe[0].Field != tt.field {
				t.Errorf("error = %v, want field %s", err, tt.field)
			}
			if _, bad := g.Invalid(tt.field); !bad {
				t.Errorf("field %s not marked invalid", tt.field)
			}
		})
	}
}

func TestGuard_EditClearsInvalidMark(t *testing.T) {
	g := newSettingsGuard()
	g.Set(FieldPostingInterval, "x")
	_ = g.Validate()

	g.Set(FieldPostingInterval, "10")
	if _, bad := g.Invalid(FieldPostingInterval); bad {
		t.Error("editing a field should clear its invalid mark")
	}
}

func TestGuard_Form(t *testing.T) {
	g := newSettingsGuard()
	g.Set(FieldChannelID, "  @news ")

	form := g.Form()
	if form.Get(FieldChannelID) != "@news" {
		t.Errorf("channel_id = %q, want trimmed", form.Get(FieldChannelID))
	}
	if _, ok := form[FieldPostingEnabled]; ok {
		t.Error("unchecked boolean should be omitted")
	}

	g.Toggle(FieldPostingEnabled)
	if g.Form().Get(FieldPostingEnabled) != "on" {
		t.Error("checked boolean should submit 'on'")
	}
}

func TestLoad_RoundTripsServerValues(t *testing.T) {
	page := url.Values{
		FieldChannelID:         {"@markets"},
		FieldPostingEnabled:    {"on"},
		FieldPostingInterval:   {"30"},
		FieldMaxArticlesPerDay: {"50"},
		FieldCustomHashtags:    {"#news"},
		FieldSummaryStyle:      {"engaging"},
		FieldAIProvider:        {"gemini"},
	}

	values, err := Load(SettingsFields, page)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	g := New(SettingsFields, values)
	if g.Dirty() {
		t.Error("freshly loaded guard should be clean")
	}

	form := g.Form()
	for name, want := range page {
		if got := form.Get(name); got != want[0] {
			t.Errorf("%s = %q, want %q", name, got, want[0])
		}
	}
}

func TestLoad_UncheckedBoolIsOff(t *testing.T) {
	page := url.Values{}
	for _, f := range SettingsFields {
		if f.Kind != KindBool {
			page.Set(f.Name, "x")
		}
	}
	values, err := Load(SettingsFields, page)
	if err != nil {
		t.Fatal(err)
	}
	if values[FieldPostingEnabled] != "" {
		t.Errorf("posting_enabled = %q, want off", values[FieldPostingEnabled])
	}
}

func TestLoad_MissingFieldFails(t *testing.T) {
	_, err := Load(SettingsFields, url.Values{FieldChannelID: {"@markets"}})
	var errs FieldErrors
	if !errors.As(err, &errs) {
		t.Fatalf("error = %v, want FieldErrors", err)
	}
	if len(errs) != 5 {
		t.Errorf("got %d missing fields, want 5: %v", len(errs), errs)
	}
}
