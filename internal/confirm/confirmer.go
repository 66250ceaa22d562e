// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package confirm

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrConfirmationRequired is returned when a gated command cannot be
// confirmed interactively and was not pre-approved.
var ErrConfirmationRequired = errors.New("confirmation required but stdin is not a terminal; use --yes")

// Prompter asks a yes/no question.
type Prompter interface {
	Confirm(prompt string) (bool, error)
}

// HuhPrompter asks on the terminal with a huh confirm field.
type HuhPrompter struct{}

// Confirm runs a blocking confirm form. Aborting with ctrl+c counts as no.
func (HuhPrompter) Confirm(prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Confirmer gates commands for the command line.
type Confirmer struct {
	prompter    Prompter
	assumeYes   bool
	interactive bool
}

// NewConfirmer creates a gate. assumeYes skips prompting; interactive says
// whether prompting is possible at all.
func NewConfirmer(p Prompter, assumeYes, interactive bool) *Confirmer {
	if p == nil {
		p = HuhPrompter{}
	}
	return &Confirmer{prompter: p, assumeYes: assumeYes, interactive: interactive}
}

// Guard reports whether cmd may run. Ungated commands always may.
func (c *Confirmer) Guard(cmd Command) (bool, error) {
	if !cmd.NeedsConfirm || c.assumeYes {
		return true, nil
	}
	if !c.interactive {
		return false, ErrConfirmationRequired
	}
	return c.prompter.Confirm(cmd.PromptText())
}
