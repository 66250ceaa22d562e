// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard holds the live stat slots of the console dashboard and
// the poller that keeps them fresh.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/util"
)

// Stat keys reported by the stats endpoint.
const (
	KeyTodayPosts      = "today_posts"
	KeyTotalArticles   = "total_articles"
	KeyPostedArticles  = "posted_articles"
	KeyPendingArticles = "pending_articles"
)

// Stats is a stats payload. A nil field was absent from the response and
// leaves its slot untouched.
type Stats struct {
	TodayPosts      *int `json:"today_posts,omitempty"`
	TotalArticles   *int `json:"total_articles,omitempty"`
	PostedArticles  *int `json:"posted_articles,omitempty"`
	PendingArticles *int `json:"pending_articles,omitempty"`
}

// Values returns the present fields keyed by stat key.
func (s Stats) Values() map[string]int {
	out := make(map[string]int, 4)
	for key, v := range map[string]*int{
		KeyTodayPosts:      s.TodayPosts,
		KeyTotalArticles:   s.TotalArticles,
		KeyPostedArticles:  s.PostedArticles,
		KeyPendingArticles: s.PendingArticles,
	} {
		if v != nil {
			out[key] = *v
		}
	}
	return out
}

// Fetch requests the current stats from the server.
func Fetch(ctx context.Context, client *backend.Client) (Stats, error) {
	var s Stats
	if err := client.GetJSON(ctx, backend.PathStats, &s); err != nil {
		return Stats{}, fmt.Errorf("fetch stats: %w", err)
	}
	return s, nil
}

// =============================================================================
// SLOTS
// =============================================================================

// Slot is one named counter on the dashboard.
type Slot struct {
	Key            string
	Label          string
	Value          *int
	UpdatedAt      time.Time
	HighlightUntil time.Time
}

// Text is the rendered value; an empty slot shows a dash.
func (s Slot) Text() string {
	if s.Value == nil {
		return "-"
	}
	return util.FormatCount(*s.Value)
}

// Highlighted reports whether the slot was updated recently enough to draw
// attention.
func (s Slot) Highlighted(now time.Time) bool {
	return now.Before(s.HighlightUntil)
}

// Board is the ordered set of stat slots.
type Board struct {
	slots     []Slot
	highlight time.Duration
}

// NewBoard creates a board with all four slots empty.
func NewBoard(highlight time.Duration) *Board {
	return &Board{
		highlight: highlight,
		slots: []Slot{
			{Key: KeyTodayPosts, Label: "Posts today"},
			{Key: KeyTotalArticles, Label: "Total articles"},
			{Key: KeyPostedArticles, Label: "Posted"},
			{Key: KeyPendingArticles, Label: "Pending"},
		},
	}
}

// SetHighlight changes how long updated slots stay highlighted.
func (b *Board) SetHighlight(d time.Duration) {
	b.highlight = d
}

// Highlight returns the highlight duration.
func (b *Board) Highlight() time.Duration {
	return b.highlight
}

// Merge writes every present field into its slot and highlights it.
// Absent fields are left as they were. It returns the keys it updated.
func (b *Board) Merge(s Stats, now time.Time) []string {
	values := s.Values()
	var updated []string
	for i := range b.slots {
		v, ok := values[b.slots[i].Key]
		if !ok {
			continue
		}
		val := v
		b.slots[i].Value = &val
		b.slots[i].UpdatedAt = now
		b.slots[i].HighlightUntil = now.Add(b.highlight)
		updated = append(updated, b.slots[i].Key)
	}
	return updated
}

// Slots returns a copy of the slots in display order.
func (b *Board) Slots() []Slot {
	out := make([]Slot, len(b.slots))
	copy(out, b.slots)
	return out
}

// Slot returns the slot for key.
func (b *Board) Slot(key string) (Slot, bool) {
	for _, s := range b.slots {
		if s.Key == key {
			return s, true
		}
	}
	return Slot{}, false
}
