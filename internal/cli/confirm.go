// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Gated article and scrape actions.
//
// Commands: regenerate <id>, post <id> [--channel ID], delete <id>, scrape
//
// Confirmation flow:
//  1. --yes proceeds without prompting
//  2. --json or a non-terminal stdin refuses to prompt and fails
//  3. otherwise a huh confirm prompt asks; "No" cancels and sends nothing

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/confirm"
)

// ActionData is the --json payload of an action command.
type ActionData struct {
	Action    string `json:"action"`
	ArticleID int    `json:"article_id,omitempty"`
	Location  string `json:"location,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
}

// commandFor builds the confirm.Command for an action.
func commandFor(cmd Command, args Args) (confirm.Command, error) {
	if cmd == CmdScrape {
		return confirm.ManualScrape(), nil
	}

	id, err := ParseArticleID(args.ArticleID)
	if err != nil {
		return confirm.Command{}, err
	}
	switch cmd {
	case CmdRegenerate:
		return confirm.RegenerateSummary(id), nil
	case CmdPost:
		return confirm.PostArticle(id, args.Channel), nil
	case CmdDelete:
		return confirm.DeleteArticle(id), nil
	}
	return confirm.Command{}, fmt.Errorf("%s is not an action", cmd)
}

// HandleAction confirms and submits one side-effecting command. A declined
// prompt sends nothing and is not an error.
func HandleAction(ctx context.Context, rt *Runtime, cmd Command, args Args) error {
	command, err := commandFor(cmd, args)
	if err != nil {
		return err
	}

	gate := confirm.NewConfirmer(rt.Prompter, args.Yes, rt.Interactive)
	ok, err := gate.Guard(command)
	if errors.Is(err, confirm.ErrConfirmationRequired) {
		return NewValidationErrorWithExample("confirmation", "", err.Error(),
			fmt.Sprintf("newsbot-console %s --yes", cmd))
	}
	if err != nil {
		return NewCommandError(cmd.String(), "confirm", "prompt failed", err)
	}

	data := ActionData{Action: command.Kind.String(), ArticleID: command.ArticleID}
	if !ok {
		data.Cancelled = true
		if args.JSON {
			return NewJSONResponse(cmd.String(), data).Print(rt.Out)
		}
		fmt.Fprintln(rt.Out, DimStyle.Render("Cancelled."))
		return nil
	}

	result, err := confirm.Submit(ctx, rt.Client, command)
	recordEntry(ctx, rt, audit.Entry{
		Kind:    audit.KindAction,
		Target:  command.Kind.String(),
		Success: err == nil,
		Detail:  actionDetail(result, err),
	})
	if err != nil {
		if args.JSON {
			_ = NewJSONErrorResponse(cmd.String(), err, data).Print(rt.Out)
			return &ExitError{Code: GetExitCode(err), Err: err, Silent: true}
		}
		return err
	}

	data.Location = result.Location
	if args.JSON {
		return NewJSONResponse(cmd.String(), data).Print(rt.Out)
	}
	fmt.Fprintf(rt.Out, "%s %s\n", RenderStatus(true), command.Kind)
	if result.Location != "" {
		fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel("Redirected to"), result.Location)
	}
	return nil
}

func actionDetail(r confirm.Result, err error) string {
	if err != nil {
		return err.Error()
	}
	return r.Location
}
