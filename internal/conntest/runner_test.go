// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conntest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/newsbot-console/internal/backend"
)

// =============================================================================
// BEGIN TESTS
// =============================================================================

func TestBegin_MarksPendingAndShowsProgress(t *testing.T) {
	r := NewRunner(LastSettled)

	req, err := r.Begin(ProviderA, "")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, backend.PathTestOpenRouter, req.Path)
	assert.NotZero(t, req.Token)

	ctrl := r.Control(ProviderA)
	assert.Equal(t, Pending, ctrl.State)
	assert.False(t, ctrl.Enabled())
	assert.Equal(t, "Testing...", ctrl.Label())

	s := r.Surface(SurfaceAPI)
	assert.True(t, s.Visible)
	require.NotNil(t, s.InProgress)
	assert.Equal(t, ProviderA, *s.InProgress)
}

func TestBegin_PendingRejectsReentry(t *testing.T) {
	r := NewRunner(LastSettled)

	first, err := r.Begin(MessagingTest, "")
	require.NoError(t, err)

	_, err = r.Begin(MessagingTest, "")
	assert.ErrorIs(t, err, ErrPending)
	assert.Equal(t, first.Token, r.Control(MessagingTest).token, "rejected Begin must not replace the in-flight request")

	// Other controls are independent.
	_, err = r.Begin(ProviderB, "")
	assert.NoError(t, err)
}

func TestBegin_EmptyChannelID(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		r := NewRunner(LastSettled)

		req, err := r.Begin(ChannelLookup, input)
		assert.ErrorIs(t, err, ErrEmptyChannelID)
		assert.Zero(t, req.Token)

		ctrl := r.Control(ChannelLookup)
		assert.Equal(t, Idle, ctrl.State, "validation failure must not disable the control")

		s := r.Surface(SurfaceChannel)
		require.NotNil(t, s.Result)
		assert.False(t, s.Result.Success)
		assert.Equal(t, TextEnterChannelID, s.Result.Text)
		assert.True(t, s.Visible)
	}
}

func TestBegin_ChannelIDTrimmed(t *testing.T) {
	r := NewRunner(LastSettled)

	req, err := r.Begin(ChannelLookup, "  @market_news ")
	require.NoError(t, err)
	assert.Equal(t, "@market_news", req.ChannelID())
	assert.Equal(t, http.MethodPost, req.Method)
}

// =============================================================================
// SETTLE TESTS
// =============================================================================

func TestSettle_OutcomeClasses(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		input   string
		outcome Outcome
		success bool
		text    string
	}{
		{"channel found with title", ChannelLookup, "@news", Outcome{Success: true, ChatTitle: "Market News"}, true, "Channel found: Market News"},
		{"channel found without title", ChannelLookup, "@news", Outcome{Success: true}, true, "Channel found: @news"},
		{"channel app failure", ChannelLookup, "@news", Outcome{Error: "Chat not found"}, false, "Chat not found"},
		{"channel app failure fallback", ChannelLookup, "@news", Outcome{}, false, "Channel lookup failed"},
		{"openrouter message", ProviderA, "", Outcome{Success: true, Message: "OK from OpenRouter"}, true, "OK from OpenRouter"},
		{"openrouter fallback", ProviderA, "", Outcome{Success: true}, true, "OpenRouter API is reachable"},
		{"gemini fallback", ProviderB, "", Outcome{Success: true}, true, "Gemini API is reachable"},
		{"gemini failure fallback", ProviderB, "", Outcome{}, false, "Check failed"},
		{"telegram fallback", MessagingTest, "", Outcome{Success: true}, true, "Test message sent!"},
		{"telegram failure fallback", MessagingTest, "", Outcome{}, false, "Send failed"},
		{"transport", ProviderA, "", Outcome{Transport: true, Error: "dial tcp: refused"}, false, "Connection error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(LastSettled)
			req, err := r.Begin(tt.target, tt.input)
			require.NoError(t, err)

			rendered := r.Settle(req, tt.outcome)
			assert.True(t, rendered)

			ctrl := r.Control(tt.target)
			assert.Equal(t, Settled, ctrl.State)
			assert.True(t, ctrl.Enabled(), "control must be re-enabled on every exit path")
			assert.Equal(t, tt.target.Label(), ctrl.Label())

			s := r.Surface(tt.target.Surface())
			assert.Nil(t, s.InProgress, "exactly one rendering, no leftover progress line")
			require.NotNil(t, s.Result)
			assert.Equal(t, tt.success, s.Result.Success)
			assert.Equal(t, tt.text, s.Result.Text)

			require.NotNil(t, ctrl.Cell)
			assert.Equal(t, tt.text, ctrl.Cell.Text)
		})
	}
}

func TestSettle_LastSettledWins(t *testing.T) {
	r := NewRunner(LastSettled)

	reqA, err := r.Begin(ProviderA, "")
	require.NoError(t, err)
	reqB, err := r.Begin(ProviderB, "")
	require.NoError(t, err)

	assert.True(t, r.Settle(reqB, Outcome{Success: true}))
	assert.True(t, r.Settle(reqA, Outcome{Error: "401 Unauthorized"}))

	s := r.Surface(SurfaceAPI)
	require.NotNil(t, s.Result)
	assert.Equal(t, ProviderA, s.Result.Target)
	assert.False(t, s.Result.Success)
	assert.Equal(t, "401 Unauthorized", s.Result.Text)

	// Per-control cells are isolated.
	assert.Equal(t, "Gemini API is reachable", r.Control(ProviderB).Cell.Text)
	assert.Equal(t, "401 Unauthorized", r.Control(ProviderA).Cell.Text)
}

func TestSettle_LatestDispatchedDropsOlder(t *testing.T) {
	r := NewRunner(LatestDispatched)

	reqA, err := r.Begin(ProviderA, "")
	require.NoError(t, err)
	reqB, err := r.Begin(ProviderB, "")
	require.NoError(t, err)

	assert.True(t, r.Settle(reqB, Outcome{Success: true}))
	assert.False(t, r.Settle(reqA, Outcome{Error: "401 Unauthorized"}))

	s := r.Surface(SurfaceAPI)
	assert.Equal(t, ProviderB, s.Result.Target)
	assert.True(t, s.Result.Success)

	// The older request still settles its own control.
	ctrl := r.Control(ProviderA)
	assert.Equal(t, Settled, ctrl.State)
	assert.Equal(t, "401 Unauthorized", ctrl.Cell.Text)
}

func TestSettle_IgnoresUnknownRequest(t *testing.T) {
	r := NewRunner(LastSettled)

	assert.False(t, r.Settle(Request{Target: ProviderA, Token: 99}, Outcome{Success: true}))
	assert.Nil(t, r.Surface(SurfaceAPI).Result)
	assert.Equal(t, Idle, r.Control(ProviderA).State)
}

// =============================================================================
// TIMER TESTS
// =============================================================================

func TestRevert_GenerationChecked(t *testing.T) {
	r := NewRunner(LastSettled)

	req, _ := r.Begin(ProviderA, "")
	r.Settle(req, Outcome{Success: true})
	staleGen := r.Control(ProviderA).Generation

	req, _ = r.Begin(ProviderA, "")
	r.Settle(req, Outcome{Success: true})
	freshGen := r.Control(ProviderA).Generation

	assert.False(t, r.Revert(ProviderA, staleGen))
	assert.Equal(t, Settled, r.Control(ProviderA).State)

	assert.True(t, r.Revert(ProviderA, freshGen))
	assert.Equal(t, Idle, r.Control(ProviderA).State)
}

func TestRevert_DoesNotTouchPending(t *testing.T) {
	r := NewRunner(LastSettled)

	req, _ := r.Begin(ProviderA, "")
	r.Settle(req, Outcome{Success: true})
	gen := r.Control(ProviderA).Generation

	_, err := r.Begin(ProviderA, "")
	require.NoError(t, err)

	assert.False(t, r.Revert(ProviderA, gen))
	assert.Equal(t, Pending, r.Control(ProviderA).State)
}

func TestHide_StaleTimerKeepsNewerResult(t *testing.T) {
	r := NewRunner(LastSettled)

	req, _ := r.Begin(ChannelLookup, "@one")
	r.Settle(req, Outcome{Success: true})
	firstGen := r.Surface(SurfaceChannel).Generation

	req, _ = r.Begin(ChannelLookup, "@two")
	r.Settle(req, Outcome{Success: true})
	secondGen := r.Surface(SurfaceChannel).Generation

	assert.False(t, r.Hide(SurfaceChannel, firstGen))
	assert.True(t, r.Surface(SurfaceChannel).Visible)

	assert.True(t, r.Hide(SurfaceChannel, secondGen))
	assert.False(t, r.Surface(SurfaceChannel).Visible)
}

func TestHide_NotWhileInProgress(t *testing.T) {
	r := NewRunner(LastSettled)

	_, _ = r.Begin(ChannelLookup, "")
	gen := r.Surface(SurfaceChannel).Generation

	_, err := r.Begin(ChannelLookup, "@news")
	require.NoError(t, err)

	assert.False(t, r.Hide(SurfaceChannel, gen))
	assert.False(t, r.Hide(SurfaceChannel, r.Surface(SurfaceChannel).Generation))
	assert.True(t, r.Surface(SurfaceChannel).Visible)
}

func TestSurfaceAutoHide(t *testing.T) {
	r := NewRunner(LastSettled)
	assert.True(t, r.Surface(SurfaceChannel).AutoHide)
	assert.False(t, r.Surface(SurfaceAPI).AutoHide)
}

// =============================================================================
// EXECUTE TESTS
// =============================================================================

func TestExecute_EmptyChannelSendsNothing(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	r := NewRunner(LastSettled)
	client := backend.NewClient(srv.URL)

	req, err := r.Begin(ChannelLookup, "  ")
	if !errors.Is(err, ErrEmptyChannelID) {
		t.Fatalf("Begin() error = %v, want ErrEmptyChannelID", err)
	}
	if err == nil {
		Execute(context.Background(), client, req)
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestExecute_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.URL.Path != backend.PathTestChannel {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success": true, "chat_title": "` + r.PostForm.Get("channel_id") + ` HQ"}`))
	}))
	defer srv.Close()

	r := NewRunner(LastSettled)
	req, err := r.Begin(ChannelLookup, "@desk")
	require.NoError(t, err)

	out := Execute(context.Background(), backend.NewClient(srv.URL), req)
	r.Settle(req, out)

	assert.Equal(t, "Channel found: @desk HQ", r.Surface(SurfaceChannel).Result.Text)
}

func TestExecute_NonJSONIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := Execute(context.Background(), backend.NewClient(srv.URL), Request{
		Target: ProviderB,
		Method: http.MethodGet,
		Path:   backend.PathTestGemini,
	})
	assert.True(t, out.Transport)
	assert.Equal(t, TextConnectionError, RenderText(ProviderB, out, ""))
}

func TestParseTargetAndPolicy(t *testing.T) {
	for _, name := range []string{"channel", "openrouter", "gemini", "telegram"} {
		target, err := ParseTarget(name)
		require.NoError(t, err)
		assert.Equal(t, name, target.String())
	}
	_, err := ParseTarget("slack")
	assert.Error(t, err)

	p, err := ParsePolicy("latest_dispatched")
	require.NoError(t, err)
	assert.Equal(t, LatestDispatched, p)

	_, err = ParsePolicy("random")
	assert.Error(t, err)
}
