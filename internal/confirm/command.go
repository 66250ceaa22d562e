// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package confirm defines the side-effecting console actions as explicit
// commands and the confirmation gate that must be passed before they run.
package confirm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/jeranaias/newsbot-console/internal/backend"
)

// Kind identifies an action.
type Kind int

const (
	KindRegenerate Kind = iota
	KindPost
	KindDelete
	KindScrape
	KindSaveSettings
)

// String returns the action name used in logs and the audit journal.
func (k Kind) String() string {
	switch k {
	case KindRegenerate:
		return "regenerate_summary"
	case KindPost:
		return "post_article"
	case KindDelete:
		return "delete_article"
	case KindScrape:
		return "manual_scrape"
	case KindSaveSettings:
		return "save_settings"
	default:
		return "unknown"
	}
}

// Prompts shown before an action runs.
const (
	PromptRegenerate = "Regenerate the article summary? The current summary will be replaced."
	PromptPost       = "Publish the article to the channel?"
	PromptDelete     = "Are you sure you want to delete this item?"
	PromptScrape     = "Start a news scrape now?"
	PromptDefault    = "Are you sure?"
)

// Command is a side-effecting request to the server. Navigate states whether
// the console should follow the server's redirect once the command completes.
type Command struct {
	Kind         Kind
	Method       string
	Path         string
	Form         url.Values
	ArticleID    int
	Prompt       string
	NeedsConfirm bool
	Navigate     bool
}

// WithNavigate returns a copy of c with Navigate set.
func (c Command) WithNavigate(navigate bool) Command {
	c.Navigate = navigate
	return c
}

// PromptText returns the confirmation question for c.
func (c Command) PromptText() string {
	if c.Prompt != "" {
		return c.Prompt
	}
	return PromptDefault
}

// RegenerateSummary asks the server to rebuild an article summary.
func RegenerateSummary(id int) Command {
	return Command{
		Kind:         KindRegenerate,
		Method:       http.MethodPost,
		Path:         backend.RegeneratePath(id),
		ArticleID:    id,
		Prompt:       PromptRegenerate,
		NeedsConfirm: true,
		Navigate:     true,
	}
}

// PostArticle publishes an article. channelID is sent only when set.
func PostArticle(id int, channelID string) Command {
	form := url.Values{}
	if channelID != "" {
		form.Set("channel_id", channelID)
	}
	return Command{
		Kind:         KindPost,
		Method:       http.MethodPost,
		Path:         backend.PostArticlePath(id),
		Form:         form,
		ArticleID:    id,
		Prompt:       PromptPost,
		NeedsConfirm: true,
		Navigate:     true,
	}
}

// DeleteArticle removes an article.
func DeleteArticle(id int) Command {
	return Command{
		Kind:         KindDelete,
		Method:       http.MethodPost,
		Path:         backend.DeleteArticlePath(id),
		ArticleID:    id,
		Prompt:       PromptDelete,
		NeedsConfirm: true,
		Navigate:     true,
	}
}

// ManualScrape starts a scraping run on the server.
func ManualScrape() Command {
	return Command{
		Kind:         KindScrape,
		Method:       http.MethodPost,
		Path:         backend.PathManualScrape,
		Prompt:       PromptScrape,
		NeedsConfirm: true,
		Navigate:     true,
	}
}

// SaveSettings submits the settings form. Saving is not gated.
func SaveSettings(values url.Values) Command {
	return Command{
		Kind:     KindSaveSettings,
		Method:   http.MethodPost,
		Path:     backend.PathSettings,
		Form:     values,
		Navigate: true,
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Result is the outcome of a submitted command.
type Result struct {
	Command  Command
	Location string
}

// ShouldNavigate reports whether the console should switch to Location.
func (r Result) ShouldNavigate() bool {
	return r.Command.Navigate && r.Location != ""
}

// Submit sends cmd and reports where the server redirected.
func Submit(ctx context.Context, client *backend.Client, cmd Command) (Result, error) {
	form := cmd.Form
	if form == nil {
		form = url.Values{}
	}
	redirect, err := client.Submit(ctx, cmd.Method, cmd.Path, form)
	if err != nil {
		log.Printf("ACTION_FAILED | action=%s path=%s error=%v", cmd.Kind, cmd.Path, err)
		return Result{Command: cmd}, fmt.Errorf("%s: %w", cmd.Kind, err)
	}
	log.Printf("ACTION_SUBMITTED | action=%s path=%s location=%s", cmd.Kind, cmd.Path, redirect.Location)
	return Result{Command: cmd, Location: redirect.Location}, nil
}
