// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the newsbot console.
//
// This file implements non-blocking toasts. Each toast carries its own expiry
// timer, stacks in the top-right corner and may be dismissed early. Identical
// messages are shown as separate toasts.
package components

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/ui/styles"
	"github.com/jeranaias/newsbot-console/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindInfo is an informational toast (cyan color)
	ToastKindInfo ToastKind = iota
	// ToastKindError is an error toast (rose/red color)
	ToastKindError
	// ToastKindWarning is a warning toast (amber color)
	ToastKindWarning
	// ToastKindSuccess is a success toast (emerald color)
	ToastKindSuccess
)

// String returns the kind name.
func (k ToastKind) String() string {
	switch k {
	case ToastKindError:
		return "error"
	case ToastKindWarning:
		return "warning"
	case ToastKindSuccess:
		return "success"
	default:
		return "info"
	}
}

// DefaultToastDuration is how long a toast stays up unless configured.
const DefaultToastDuration = 3 * time.Second

// Toast is one notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// TimeRemaining returns how much time is left before expiry at now.
func (t Toast) TimeRemaining(now time.Time) time.Duration {
	remaining := t.Duration - now.Sub(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastExpireMsg is delivered by a toast's own timer.
type ToastExpireMsg struct {
	ID int
}

// NotifyMsg asks the console to show a toast. Background commands return it
// to report results that need no other state change.
type NotifyMsg struct {
	Message string
	Kind    ToastKind
}

// =============================================================================
// NOTIFIER
// =============================================================================

// Notifier owns the visible toasts. It is mutated only from the console's
// Update loop.
type Notifier struct {
	toasts   []Toast
	nextID   int
	duration time.Duration
	now      func() time.Time
}

// NewNotifier creates a notifier whose toasts last d.
func NewNotifier(d time.Duration) *Notifier {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &Notifier{nextID: 1, duration: d, now: time.Now}
}

// SetDuration changes the lifetime of toasts created from now on.
func (n *Notifier) SetDuration(d time.Duration) {
	if d > 0 {
		n.duration = d
	}
}

// Notify appends a toast and returns its ID with the command that expires it.
func (n *Notifier) Notify(message string, kind ToastKind) (int, tea.Cmd) {
	id := n.nextID
	n.nextID++

	n.toasts = append(n.toasts, Toast{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: n.now(),
		Duration:  n.duration,
	})

	return id, tea.Tick(n.duration, func(time.Time) tea.Msg {
		return ToastExpireMsg{ID: id}
	})
}

// Remove drops a toast by ID. Removing an unknown or already removed toast
// is a no-op; it reports whether anything was removed.
func (n *Notifier) Remove(id int) bool {
	for i, toast := range n.toasts {
		if toast.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// DismissNewest removes the most recent toast.
func (n *Notifier) DismissNewest() bool {
	if len(n.toasts) == 0 {
		return false
	}
	n.toasts = n.toasts[:len(n.toasts)-1]
	return true
}

// Update handles expiry and dismiss messages. It reports whether msg was
// a toast message.
func (n *Notifier) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ToastExpireMsg:
		n.Remove(msg.ID)
		return nil, true
	case NotifyMsg:
		_, cmd := n.Notify(msg.Message, msg.Kind)
		return cmd, true
	}
	return nil, false
}

// Toasts returns a copy of the visible toasts, oldest first.
func (n *Notifier) Toasts() []Toast {
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Len returns the number of visible toasts.
func (n *Notifier) Len() int {
	return len(n.toasts)
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast notification.
func RenderToast(toast Toast, width int, now time.Time) string {
	maxWidth := 48
	if width > 0 && width-8 < maxWidth {
		maxWidth = width - 8
	}
	if maxWidth < 24 {
		maxWidth = 24
	}

	var color lipgloss.AdaptiveColor
	var icon string
	switch toast.Kind {
	case ToastKindError:
		color, icon = styles.Rose, styles.StatusIndicators.Error
	case ToastKindWarning:
		color, icon = styles.Amber, styles.StatusIndicators.Warning
	case ToastKindSuccess:
		color, icon = styles.Emerald, styles.StatusIndicators.Success
	default:
		color, icon = styles.Cyan, styles.StatusIndicators.Info
	}

	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	message := wrapToastText(toast.Message, maxWidth-10)
	hints := []string{"[esc] Dismiss"}
	if secs := int(toast.TimeRemaining(now).Seconds()); secs > 0 {
		hints = append(hints, strconv.Itoa(secs)+"s")
	}

	content := iconStyle.Render(icon+" ") + messageStyle.Render(message) +
		"\n" + hintStyle.Render(strings.Join(hints, "  "))

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders toasts stacked in the top-right corner, newest
// at the top.
func RenderToastStack(toasts []Toast, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for i := len(toasts) - 1; i >= 0; i-- {
		rendered = append(rendered, RenderToast(toasts[i], width, now))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)

	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return stack
}

// wrapToastText performs simple word wrapping; single words longer than
// maxWidth are truncated.
func wrapToastText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var current strings.Builder
	for _, word := range words {
		word = util.Truncate(word, maxWidth)
		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case current.Len()+1+len(word) <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
