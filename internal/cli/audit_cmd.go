// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// audit_cmd.go - Show the operator journal.
//
// Command: audit [test|action|stats] [--limit N] [--json]
//
// Examples:
//   newsbot-console audit
//   newsbot-console audit test --limit 5
//   newsbot-console audit --json

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/newsbot-console/internal/audit"
)

// AuditData is the --json payload of the audit command.
type AuditData struct {
	Path    string        `json:"path"`
	Total   int           `json:"total"`
	Entries []audit.Entry `json:"entries"`
}

// HandleAudit prints the most recent journal entries, newest first.
func HandleAudit(ctx context.Context, rt *Runtime, args Args) error {
	if rt.Journal == nil {
		if !rt.Config.Audit.Enabled {
			return NewCommandError("audit", "show", "audit journal is disabled (audit.enabled = false)", nil)
		}
		return NewCommandError("audit", "show", "audit journal could not be opened", nil)
	}

	kind, err := parseAuditKind(args.Raw)
	if err != nil {
		return err
	}
	if args.Limit <= 0 {
		return NewValidationError("limit", fmt.Sprint(args.Limit), "must be positive")
	}

	entries, err := rt.Journal.Recent(ctx, kind, args.Limit)
	if err != nil {
		return NewCommandError("audit", "show", "query failed", err)
	}
	total, err := rt.Journal.Count(ctx)
	if err != nil {
		return NewCommandError("audit", "show", "count failed", err)
	}

	if args.JSON {
		if entries == nil {
			entries = []audit.Entry{}
		}
		return NewJSONResponse("audit", AuditData{
			Path:    rt.Journal.Path(),
			Total:   total,
			Entries: entries,
		}).Print(rt.Out)
	}

	fmt.Fprintln(rt.Out, TitleStyle.Render(fmt.Sprintf("Audit journal (%d of %d)", len(entries), total)))
	if len(entries) == 0 {
		fmt.Fprintln(rt.Out, DimStyle.Render("  no entries"))
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(rt.Out, "%s %s %s %s %s\n",
			DimStyle.Render(e.At.Local().Format("2006-01-02 15:04:05")),
			RenderStatus(e.Success),
			RenderLabel(string(e.Kind), 7),
			RenderLabel(e.Target, 20),
			e.Detail,
		)
	}
	return nil
}

// parseAuditKind reads an optional "kind" from the positional words after
// "audit" ("audit test", "audit action").
func parseAuditKind(rest []string) (audit.Kind, error) {
	if len(rest) == 0 {
		return "", nil
	}
	switch k := audit.Kind(rest[0]); k {
	case audit.KindTest, audit.KindAction, audit.KindStats:
		return k, nil
	}
	return "", NewValidationErrorWithExample("kind", rest[0], "must be test, action or stats", "newsbot-console audit test")
}
