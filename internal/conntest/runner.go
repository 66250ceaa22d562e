// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conntest

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrPending is returned by Begin while the control's previous request
	// has not settled.
	ErrPending = errors.New("test already in progress")

	// ErrEmptyChannelID is returned by Begin for a blank channel lookup.
	ErrEmptyChannelID = errors.New("channel id is empty")
)

// Validation and transport texts rendered in place of a server message.
const (
	TextEnterChannelID  = "Enter a channel ID"
	TextConnectionError = "Connection error"
)

// =============================================================================
// STATE TYPES
// =============================================================================

// ButtonState is the visual state of a test control.
type ButtonState int

const (
	Idle ButtonState = iota
	Pending
	Settled
)

// String returns the state name.
func (s ButtonState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Policy decides which settled result a shared surface keeps.
type Policy int

const (
	// LastSettled renders every settlement; the latest one to arrive wins.
	LastSettled Policy = iota
	// LatestDispatched drops settlements for requests older than the newest
	// request dispatched to the surface.
	LatestDispatched
)

// ParsePolicy maps a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last_settled":
		return LastSettled, nil
	case "latest_dispatched":
		return LatestDispatched, nil
	}
	return LastSettled, fmt.Errorf("unknown surface policy %q", s)
}

// Request is one dispatched test. It is not modified after Begin returns it.
type Request struct {
	Target Target
	Method string
	Path   string
	Form   url.Values
	Token  uint64
}

// ChannelID returns the channel submitted with a channel lookup.
func (r Request) ChannelID() string {
	if r.Form == nil {
		return ""
	}
	return r.Form.Get("channel_id")
}

// Outcome is how a request resolved.
type Outcome struct {
	Success   bool
	Message   string
	Error     string
	ChatTitle string

	// Transport is set when no usable response arrived.
	Transport bool
	// Validation is set for local input failures that never left the console.
	Validation bool
}

// Result is a rendered outcome as shown on a surface or control cell.
type Result struct {
	Target  Target
	Success bool
	Text    string
	Token   uint64
	At      time.Time
}

// Control is a snapshot of one test control.
type Control struct {
	Target     Target
	State      ButtonState
	Generation uint64
	Cell       *Result
	token      uint64
}

// Label is the text shown on the control for its current state.
func (c Control) Label() string {
	if c.State == Pending {
		return "Testing..."
	}
	return c.Target.Label()
}

// Enabled reports whether the control accepts a new Begin.
func (c Control) Enabled() bool {
	return c.State != Pending
}

// Surface is a snapshot of one shared result surface.
type Surface struct {
	Name       string
	Visible    bool
	InProgress *Target
	Result     *Result
	Generation uint64
	AutoHide   bool

	dispatched uint64
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner tracks control and surface state for the connectivity tests.
type Runner struct {
	policy   Policy
	token    uint64
	controls map[Target]*Control
	surfaces map[string]*Surface
	now      func() time.Time
}

// NewRunner creates a runner with every control Idle and every surface hidden.
func NewRunner(policy Policy) *Runner {
	r := &Runner{
		policy:   policy,
		controls: make(map[Target]*Control),
		surfaces: map[string]*Surface{
			SurfaceChannel: {Name: SurfaceChannel, AutoHide: true},
			SurfaceAPI:     {Name: SurfaceAPI},
		},
		now: time.Now,
	}
	for _, t := range Targets() {
		r.controls[t] = &Control{Target: t}
	}
	return r
}

// Policy returns the shared-surface overwrite policy.
func (r *Runner) Policy() Policy {
	return r.policy
}

// SetPolicy changes the overwrite policy for future settlements.
func (r *Runner) SetPolicy(p Policy) {
	r.policy = p
}

// Control returns a snapshot of the target's control.
func (r *Runner) Control(t Target) Control {
	return *r.controls[t]
}

// Surface returns a snapshot of the named surface.
func (r *Runner) Surface(name string) Surface {
	s, ok := r.surfaces[name]
	if !ok {
		return Surface{Name: name}
	}
	return *s
}

// Begin starts a test. input is the channel ID for ChannelLookup and is
// ignored otherwise.
//
// A Pending control returns ErrPending and nothing changes. A blank channel
// ID renders a validation failure on the channel surface and returns
// ErrEmptyChannelID; no request must be sent.
func (r *Runner) Begin(t Target, input string) (Request, error) {
	ctrl := r.controls[t]
	if ctrl.State == Pending {
		return Request{}, ErrPending
	}

	var form url.Values
	switch t {
	case ChannelLookup:
		channelID := strings.TrimSpace(input)
		if channelID == "" {
			r.render(t, 0, Outcome{Validation: true, Error: TextEnterChannelID}, "", true)
			return Request{}, ErrEmptyChannelID
		}
		form = url.Values{"channel_id": {channelID}}
	case MessagingTest:
		form = url.Values{}
	}

	r.token++
	req := Request{
		Target: t,
		Method: t.Method(),
		Path:   t.Path(),
		Form:   form,
		Token:  r.token,
	}

	ctrl.State = Pending
	ctrl.token = req.Token

	s := r.surfaces[t.Surface()]
	target := t
	s.InProgress = &target
	s.Visible = true
	s.dispatched = req.Token
	s.Generation++

	return req, nil
}

// Settle applies the outcome of req. The control always leaves Pending and
// records the result in its cell. It returns whether the shared surface
// rendered the result; under LatestDispatched an outdated request does not.
func (r *Runner) Settle(req Request, out Outcome) bool {
	ctrl := r.controls[req.Target]
	if ctrl.State != Pending || ctrl.token != req.Token {
		return false
	}
	return r.render(req.Target, req.Token, out, req.ChannelID(), false)
}

func (r *Runner) render(t Target, token uint64, out Outcome, channelID string, local bool) bool {
	res := &Result{
		Target:  t,
		Success: out.Success && !out.Transport && !out.Validation,
		Text:    RenderText(t, out, channelID),
		Token:   token,
		At:      r.now(),
	}

	ctrl := r.controls[t]
	ctrl.Cell = res
	if !local {
		ctrl.State = Settled
		ctrl.Generation++
	}

	s := r.surfaces[t.Surface()]
	if !local && r.policy == LatestDispatched && token < s.dispatched {
		return false
	}

	s.Result = res
	s.InProgress = nil
	s.Visible = true
	s.Generation++
	return true
}

// Revert returns a Settled control to Idle if generation still matches.
func (r *Runner) Revert(t Target, generation uint64) bool {
	ctrl := r.controls[t]
	if ctrl.State != Settled || ctrl.Generation != generation {
		return false
	}
	ctrl.State = Idle
	return true
}

// Hide hides a surface if nothing was rendered on it since generation.
func (r *Runner) Hide(name string, generation uint64) bool {
	s, ok := r.surfaces[name]
	if !ok || s.Generation != generation || s.InProgress != nil {
		return false
	}
	s.Visible = false
	return true
}

// RenderText builds the user-facing text for an outcome.
func RenderText(t Target, out Outcome, channelID string) string {
	switch {
	case out.Validation:
		if out.Error != "" {
			return out.Error
		}
		return TextEnterChannelID
	case out.Transport:
		return TextConnectionError
	case out.Success:
		if t == ChannelLookup {
			name := out.ChatTitle
			if name == "" {
				name = channelID
			}
			return "Channel found: " + name
		}
		if out.Message != "" {
			return out.Message
		}
		return t.successFallback()
	default:
		if out.Error != "" {
			return out.Error
		}
		return t.failureFallback()
	}
}
