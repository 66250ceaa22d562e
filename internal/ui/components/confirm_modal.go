// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/confirm"
	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// =============================================================================
// CONFIRM MODAL
// =============================================================================

// ConfirmedMsg is sent when the operator accepts a gated command.
type ConfirmedMsg struct {
	Command confirm.Command
}

// ConfirmModal asks for confirmation without blocking the Update loop.
// Accepting emits ConfirmedMsg; declining or aborting emits nothing.
type ConfirmModal struct {
	form     *huh.Form
	command  confirm.Command
	accepted bool
	visible  bool
	width    int
	height   int

	theme *styles.Theme
}

// NewConfirmModal creates a hidden modal.
func NewConfirmModal(theme *styles.Theme) *ConfirmModal {
	return &ConfirmModal{theme: theme}
}

// Show opens the modal for cmd and returns the form's init command.
func (m *ConfirmModal) Show(cmd confirm.Command) tea.Cmd {
	m.command = cmd
	m.accepted = false
	m.visible = true

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(cmd.PromptText()).
				Affirmative("Yes").
				Negative("No").
				Value(&m.accepted),
		),
	).
		WithShowHelp(false).
		WithWidth(56).
		WithTheme(huh.ThemeCharm())
	m.form.SubmitCmd = nil
	m.form.CancelCmd = nil

	log.Printf("CONFIRM_SHOWN | action=%s", cmd.Kind)
	return m.form.Init()
}

// Hide closes the modal without emitting anything.
func (m *ConfirmModal) Hide() {
	m.visible = false
	m.form = nil
}

// IsVisible returns whether the modal is visible.
func (m *ConfirmModal) IsVisible() bool {
	return m.visible
}

// Command returns the command awaiting confirmation.
func (m *ConfirmModal) Command() confirm.Command {
	return m.command
}

// SetSize updates the modal dimensions.
func (m *ConfirmModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update forwards msg to the form. It reports true when msg was a key press
// consumed by the modal, so the caller must not also act on it.
func (m *ConfirmModal) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !m.visible || m.form == nil {
		return nil, false
	}

	_, isKey := msg.(tea.KeyMsg)
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		log.Printf("CONFIRM_DECLINED | action=%s", m.command.Kind)
		m.Hide()
		return nil, true
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		command := m.command
		accepted := m.accepted
		m.Hide()
		if !accepted {
			log.Printf("CONFIRM_DECLINED | action=%s", command.Kind)
			return nil, isKey
		}
		log.Printf("CONFIRM_ACCEPTED | action=%s", command.Kind)
		return func() tea.Msg { return ConfirmedMsg{Command: command} }, isKey
	case huh.StateAborted:
		log.Printf("CONFIRM_DECLINED | action=%s", m.command.Kind)
		m.Hide()
		return nil, isKey
	}

	return cmd, isKey
}

// View renders the modal centered on screen.
func (m *ConfirmModal) View() string {
	if !m.visible || m.form == nil {
		return ""
	}

	box := m.theme.Modal.Render(m.form.View() + "\n" + m.theme.Help.Render("y/n  enter confirm  esc cancel"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
