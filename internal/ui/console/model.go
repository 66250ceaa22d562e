// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/config"
	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/dashboard"
	"github.com/jeranaias/newsbot-console/internal/formguard"
	"github.com/jeranaias/newsbot-console/internal/ui/components"
	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// =============================================================================
// VIEWS
// =============================================================================

// View is one console page.
type View int

const (
	ViewDashboard View = iota
	ViewArticle
	ViewSettings
)

// String returns the tab title.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewArticle:
		return "Article"
	case ViewSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// ParseView maps a --view name to a View. Empty means the dashboard.
func ParseView(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dashboard":
		return ViewDashboard, nil
	case "article", "articles":
		return ViewArticle, nil
	case "settings":
		return ViewSettings, nil
	}
	return ViewDashboard, fmt.Errorf("unknown view %q (want dashboard, article or settings)", name)
}

// ParseRoute maps a server path, typically a redirect Location, to a view.
// The article ID is returned for /article/{id}; unknown paths land on the
// dashboard.
func ParseRoute(location string) (View, int) {
	path := location
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")

	switch {
	case path == "":
		return ViewDashboard, 0
	case path == backend.PathSettings:
		return ViewSettings, 0
	case strings.HasPrefix(path, "/article/"):
		id, err := strconv.Atoi(strings.TrimPrefix(path, "/article/"))
		if err != nil {
			return ViewArticle, 0
		}
		return ViewArticle, id
	case path == backend.PathArticles:
		return ViewArticle, 0
	}
	log.Printf("ROUTE_UNKNOWN | location=%s", location)
	return ViewDashboard, 0
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a console Model.
type Options struct {
	Config  *config.Config
	Client  *backend.Client
	Journal *audit.Journal
	Watcher *config.Watcher

	// Start is the view shown first.
	Start View
	// NoRefresh disables the dashboard tick chain; manual refresh still works.
	NoRefresh bool
	// Clipboard replaces the system clipboard writer.
	Clipboard func(string) error
}

// Model is the root console model.
type Model struct {
	cfg     *config.Config
	client  *backend.Client
	journal *audit.Journal
	watcher *config.Watcher

	theme  *styles.Theme
	keys   KeyMap
	help   help.Model
	header *components.Header
	status *components.StatusBar

	view      View
	width     int
	height    int
	noRefresh bool

	runner   *conntest.Runner
	spinner  components.Spinner
	board    *dashboard.Board
	poller   *dashboard.Poller
	notifier *components.Notifier
	modal    *components.ConfirmModal

	settings settingsForm
	article  articleView

	copyFn func(string) error
	now    func() time.Time
}

// New creates the console model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	client := opts.Client
	if client == nil {
		client = backend.NewClient(cfg.Server.BaseURL)
	}

	policy, err := conntest.ParsePolicy(cfg.Tests.SurfacePolicy)
	if err != nil {
		log.Printf("CONFIG_POLICY_INVALID | value=%q error=%v", cfg.Tests.SurfacePolicy, err)
	}

	theme := styles.NewTheme()
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		cfg:       cfg,
		client:    client,
		journal:   opts.Journal,
		watcher:   opts.Watcher,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		header:    components.NewHeader(theme, client.BaseURL(), ViewDashboard.String(), ViewArticle.String(), ViewSettings.String()),
		status:    components.NewStatusBar(theme),
		view:      opts.Start,
		noRefresh: opts.NoRefresh || !cfg.Dashboard.AutoRefresh,
		runner:    conntest.NewRunner(policy),
		spinner:   components.NewSpinner(),
		board:     dashboard.NewBoard(cfg.HighlightDuration()),
		poller:    dashboard.NewPoller(cfg.PollInterval(), cfg.Dashboard.SingleFlight),
		notifier:  components.NewNotifier(cfg.ToastDuration()),
		modal:     components.NewConfirmModal(theme),
		settings:  newSettingsForm(formguard.DefaultSettings()), // not loaded: no edits, no save
		article:   newArticleView(),
		copyFn:    copyFn,
		now:       time.Now,
	}
	m.header.SetActive(int(m.view))
	switch m.view {
	case ViewSettings:
		m.settings.setFocus(0)
	case ViewArticle:
		m.article.input.Focus()
	}
	return m
}

// Init enters the start view and begins listening for config reloads.
func (m Model) Init() tea.Cmd {
	m, cmd := m.enterView(m.view, 0)
	return tea.Batch(cmd, m.watchConfig())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// CurrentView returns the active view.
func (m Model) CurrentView() View {
	return m.view
}

// Runner exposes the test runner state.
func (m Model) Runner() *conntest.Runner {
	return m.runner
}

// Board exposes the dashboard slots.
func (m Model) Board() *dashboard.Board {
	return m.board
}

// Poller exposes the stats poller.
func (m Model) Poller() *dashboard.Poller {
	return m.poller
}

// Guard exposes the settings form guard.
func (m Model) Guard() *formguard.Guard {
	return m.settings.guard
}

// Notifier exposes the toasts.
func (m Model) Notifier() *components.Notifier {
	return m.notifier
}

// ConfirmVisible reports whether the confirmation modal is open.
func (m Model) ConfirmVisible() bool {
	return m.modal.IsVisible()
}

// ArticleID returns the article selected on the article view.
func (m Model) ArticleID() int {
	return m.article.id
}
