// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - The stats command: one dashboard fetch, printed.
//
// Examples:
//   newsbot-console stats
//   newsbot-console stats --json

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/dashboard"
)

// statLabels are the card titles in display order.
var statLabels = []struct {
	Key   string
	Label string
}{
	{dashboard.KeyTodayPosts, "Posts today"},
	{dashboard.KeyTotalArticles, "Total articles"},
	{dashboard.KeyPostedArticles, "Posted"},
	{dashboard.KeyPendingArticles, "Pending"},
}

// HandleStats fetches the dashboard counters once. Counters the server did
// not report print as "-".
func HandleStats(ctx context.Context, rt *Runtime, args Args) error {
	stats, err := dashboard.Fetch(ctx, rt.Client)
	if err != nil {
		recordEntry(ctx, rt, audit.Entry{
			Kind:   audit.KindStats,
			Target: "stats",
			Detail: err.Error(),
		})
		if args.JSON {
			_ = NewJSONErrorResponse("stats", err, nil).Print(rt.Out)
			return &ExitError{Code: GetExitCode(err), Err: err, Silent: true}
		}
		return err
	}

	if args.JSON {
		return NewJSONResponse("stats", stats.Values()).Print(rt.Out)
	}

	board := dashboard.NewBoard(0)
	board.Merge(stats, time.Now())

	fmt.Fprintln(rt.Out, TitleStyle.Render("Dashboard "+rt.Client.BaseURL()))
	for _, l := range statLabels {
		slot, _ := board.Slot(l.Key)
		fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel(l.Label), ValueStyle.Render(slot.Text()))
	}
	return nil
}
