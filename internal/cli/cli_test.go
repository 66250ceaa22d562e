// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/config"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"stats"},
			wantSub: "stats",
		},
		{
			name:    "flag with value",
			args:    []string{"test", "channel", "--channel", "@markets"},
			wantSub: "test",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "@markets", p.Flag("channel"))
				assert.Equal(t, "channel", p.Positional(1))
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"audit", "--limit=5"},
			wantSub: "audit",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, 5, p.FlagIntOrDefault("limit", 20))
			},
		},
		{
			name:    "bool flag does not swallow positional",
			args:    []string{"delete", "--yes", "42"},
			wantSub: "delete",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("yes"))
				assert.Equal(t, "42", p.Positional(1))
			},
		},
		{
			name:    "negative channel id is a value",
			args:    []string{"test", "channel", "--channel", "-1001234567"},
			wantSub: "test",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "-1001234567", p.Flag("channel"))
			},
		},
		{
			name:    "explicit bool value",
			args:    []string{"stats", "--json=false"},
			wantSub: "stats",
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("json"))
				assert.True(t, p.HasFlag("json"))
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"post", "--", "--7"},
			wantSub: "post",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "--7", p.Positional(1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestParseArticleID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseArticleID(tt.in)
		if tt.wantErr {
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), "ParseArticleID(%q) error = %v", tt.in, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

// =============================================================================
// COMMAND PARSING TESTS
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		want  Command
		check func(*testing.T, Args)
	}{
		{"default is tui", nil, CmdTUI, nil},
		{"tui with view", []string{"tui", "--view", "settings", "--no-refresh"}, CmdTUI, func(t *testing.T, a Args) {
			assert.Equal(t, "settings", a.View)
			assert.True(t, a.NoRefresh)
		}},
		{"test target", []string{"test", "openrouter", "--json"}, CmdTest, func(t *testing.T, a Args) {
			assert.Equal(t, "openrouter", a.Subcommand)
			assert.True(t, a.JSON)
		}},
		{"post with channel", []string{"--url", "http://bot:5000", "post", "7", "--channel", "@x", "-y"}, CmdPost, func(t *testing.T, a Args) {
			assert.Equal(t, "7", a.ArticleID)
			assert.Equal(t, "@x", a.Channel)
			assert.Equal(t, "http://bot:5000", a.URL)
			assert.True(t, a.Yes)
		}},
		{"regen alias", []string{"regen", "3"}, CmdRegenerate, nil},
		{"config sub", []string{"config", "PATH"}, CmdConfig, func(t *testing.T, a Args) {
			assert.Equal(t, "path", a.Subcommand)
		}},
		{"audit limit", []string{"audit", "--limit", "5"}, CmdAudit, func(t *testing.T, a Args) {
			assert.Equal(t, 5, a.Limit)
		}},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"help flag wins", []string{"stats", "--help"}, CmdHelp, nil},
		{"unknown", []string{"frobnicate"}, CmdHelp, func(t *testing.T, a Args) {
			assert.Equal(t, "frobnicate", a.Unknown)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			assert.Equal(t, tt.want, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

// =============================================================================
// EXIT CODE TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("target", "x", "bad"), ExitValidation},
		{"transport", &backend.ClientError{Type: backend.ErrTypeConnection, Message: "down"}, ExitTransport},
		{"status", &backend.ClientError{Type: backend.ErrTypeStatus, Message: "500"}, ExitFailure},
		{"explicit", &ExitError{Code: 2}, 2},
		{"generic", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

type adminServer struct {
	*httptest.Server
	mu    sync.Mutex
	hits  map[string]int
	forms map[string]map[string][]string
}

func newAdminServer(t *testing.T) *adminServer {
	t.Helper()
	s := &adminServer{hits: make(map[string]int), forms: make(map[string]map[string][]string)}

	mux := http.NewServeMux()
	mux.HandleFunc(backend.PathTestChannel, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "chat_title": "Markets"}`))
	})
	mux.HandleFunc(backend.PathTestOpenRouter, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "error": "Invalid API key"}`))
	})
	mux.HandleFunc(backend.PathTestGemini, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true}`))
	})
	mux.HandleFunc(backend.PathTestTelegram, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>Bad Gateway</html>`))
	})
	mux.HandleFunc(backend.PathStats, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"today_posts": 3, "pending_articles": 0}`))
	})
	mux.HandleFunc(backend.PathManualScrape, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("/post_article/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/article/7", http.StatusFound)
	})
	mux.HandleFunc("/delete_article/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.forms[r.URL.Path] = r.PostForm
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *adminServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

type stubPrompter struct {
	answer bool
	asked  []string
}

func (p *stubPrompter) Confirm(prompt string) (bool, error) {
	p.asked = append(p.asked, prompt)
	return p.answer, nil
}

func newTestRuntime(t *testing.T, srv *adminServer, interactive bool) (*Runtime, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Server.BaseURL = srv.URL

	j, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	var out bytes.Buffer
	return &Runtime{
		Config:      cfg,
		Client:      backend.NewClient(srv.URL),
		Journal:     j,
		Prompter:    &stubPrompter{answer: true},
		Interactive: interactive,
		Out:         &out,
		Err:         &out,
	}, &out
}

func TestHandleTest_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCode int
		wantText string
		wantHit  string
	}{
		{"channel found", []string{"test", "channel", "--channel", "@markets"}, ExitSuccess, "Channel found: Markets", backend.PathTestChannel},
		{"provider failure", []string{"test", "openrouter"}, ExitFailure, "Invalid API key", backend.PathTestOpenRouter},
		{"provider fallback text", []string{"test", "gemini"}, ExitSuccess, "Gemini API is reachable", backend.PathTestGemini},
		{"transport failure", []string{"test", "telegram"}, ExitTransport, "Connection error", backend.PathTestTelegram},
		{"empty channel", []string{"test", "channel", "--channel", "   "}, ExitValidation, "Enter a channel ID", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newAdminServer(t)
			rt, out := newTestRuntime(t, srv, false)

			cmd, args := ParseArgs(tt.argv)
			err := Run(context.Background(), cmd, args, rt)

			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Contains(t, out.String(), tt.wantText)
			if tt.wantHit != "" {
				assert.Equal(t, 1, srv.hitCount(tt.wantHit))
			} else {
				assert.Zero(t, srv.hitCount(backend.PathTestChannel), "validation failure must not send")
			}
		})
	}
}

func TestHandleTest_UnknownTarget(t *testing.T) {
	srv := newAdminServer(t)
	rt, _ := newTestRuntime(t, srv, false)

	err := HandleTest(context.Background(), rt, Args{Subcommand: "slack"})
	assert.Equal(t, ExitValidation, GetExitCode(err))
}

func TestHandleTest_JSONAndJournal(t *testing.T) {
	srv := newAdminServer(t)
	rt, out := newTestRuntime(t, srv, false)

	err := HandleTest(context.Background(), rt, Args{Subcommand: "openrouter", JSON: true})
	require.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Success bool     `json:"success"`
		Error   *string  `json:"error"`
		Data    TestData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid API key", *resp.Error)
	assert.Equal(t, "openrouter", resp.Data.Target)

	entries, err := rt.Journal.Recent(context.Background(), audit.KindTest, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "openrouter", entries[0].Target)
	assert.False(t, entries[0].Success)
}

func TestHandleStats(t *testing.T) {
	srv := newAdminServer(t)
	rt, out := newTestRuntime(t, srv, false)

	require.NoError(t, HandleStats(context.Background(), rt, Args{}))
	text := out.String()
	assert.Contains(t, text, "Posts today")
	assert.Contains(t, text, "3")
	assert.Contains(t, text, "-", "missing counters render as '-'")

	out.Reset()
	require.NoError(t, HandleStats(context.Background(), rt, Args{JSON: true}))
	var resp struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, map[string]int{"today_posts": 3, "pending_articles": 0}, resp.Data)
}

func TestHandleAction_Confirmation(t *testing.T) {
	t.Run("declined sends nothing", func(t *testing.T) {
		srv := newAdminServer(t)
		rt, out := newTestRuntime(t, srv, true)
		p := &stubPrompter{answer: false}
		rt.Prompter = p

		require.NoError(t, HandleAction(context.Background(), rt, CmdScrape, Args{}))
		assert.Zero(t, srv.hitCount(backend.PathManualScrape))
		assert.Len(t, p.asked, 1)
		assert.Contains(t, out.String(), "Cancelled")
	})

	t.Run("non-interactive requires --yes", func(t *testing.T) {
		srv := newAdminServer(t)
		rt, _ := newTestRuntime(t, srv, false)

		err := HandleAction(context.Background(), rt, CmdScrape, Args{})
		assert.Equal(t, ExitValidation, GetExitCode(err))
		assert.Zero(t, srv.hitCount(backend.PathManualScrape))
	})

	t.Run("yes skips prompt", func(t *testing.T) {
		srv := newAdminServer(t)
		rt, out := newTestRuntime(t, srv, false)
		p := &stubPrompter{answer: false}
		rt.Prompter = p

		require.NoError(t, HandleAction(context.Background(), rt, CmdPost, Args{ArticleID: "7", Channel: "@markets", Yes: true}))
		assert.Empty(t, p.asked)
		assert.Equal(t, 1, srv.hitCount("/post_article/7"))
		assert.Equal(t, []string{"@markets"}, srv.forms["/post_article/7"]["channel_id"])
		assert.Contains(t, out.String(), "/article/7")

		entries, err := rt.Journal.Recent(context.Background(), audit.KindAction, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "post_article", entries[0].Target)
		assert.True(t, entries[0].Success)
	})

	t.Run("bad id never prompts", func(t *testing.T) {
		srv := newAdminServer(t)
		rt, _ := newTestRuntime(t, srv, true)
		p := &stubPrompter{answer: true}
		rt.Prompter = p

		err := HandleAction(context.Background(), rt, CmdDelete, Args{ArticleID: "x"})
		assert.Equal(t, ExitValidation, GetExitCode(err))
		assert.Empty(t, p.asked)
	})

	t.Run("server error is a failure", func(t *testing.T) {
		srv := newAdminServer(t)
		rt, _ := newTestRuntime(t, srv, false)

		err := HandleAction(context.Background(), rt, CmdDelete, Args{ArticleID: "9", Yes: true})
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})
}

func TestHandleConfig(t *testing.T) {
	srv := newAdminServer(t)
	rt, out := newTestRuntime(t, srv, false)
	path := filepath.Join(t.TempDir(), "console.toml")

	require.NoError(t, HandleConfig(rt, Args{Subcommand: "init", ConfigPath: path}))
	_, err := os.Stat(path)
	require.NoError(t, err)

	err = HandleConfig(rt, Args{Subcommand: "init", ConfigPath: path})
	assert.Equal(t, ExitValidation, GetExitCode(err), "init must not overwrite without --yes")

	loaded, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Server.BaseURL, loaded.Server.BaseURL)

	out.Reset()
	require.NoError(t, HandleConfig(rt, Args{Subcommand: "path", ConfigPath: path}))
	assert.Equal(t, path, strings.TrimSpace(out.String()))

	out.Reset()
	require.NoError(t, HandleConfig(rt, Args{Subcommand: "show"}))
	assert.Contains(t, out.String(), "poll_interval_secs")

	assert.Error(t, HandleConfig(rt, Args{Subcommand: "set"}))
}

func TestHandleAudit(t *testing.T) {
	srv := newAdminServer(t)
	rt, out := newTestRuntime(t, srv, false)
	ctx := context.Background()

	_ = HandleTest(ctx, rt, Args{Subcommand: "gemini"})
	_ = HandleTest(ctx, rt, Args{Subcommand: "openrouter"})
	out.Reset()

	require.NoError(t, HandleAudit(ctx, rt, Args{Limit: 1, JSON: true}))
	var resp struct {
		Data AuditData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	require.Len(t, resp.Data.Entries, 1)
	assert.Equal(t, "openrouter", resp.Data.Entries[0].Target)

	err := HandleAudit(ctx, rt, Args{Limit: 10, Raw: []string{"bogus"}})
	assert.Equal(t, ExitValidation, GetExitCode(err))

	rt.Journal = nil
	assert.Error(t, HandleAudit(ctx, rt, Args{Limit: 10}))
}

func TestHandleHelp_Unknown(t *testing.T) {
	var out bytes.Buffer
	err := HandleHelp(&out, Args{Unknown: "frobnicate"})
	assert.Contains(t, out.String(), "newsbot-console test <target>")
	assert.Equal(t, ExitValidation, GetExitCode(err))
}
