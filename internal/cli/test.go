// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// test.go - Connectivity tests from the command line.
//
// Command: test <target>
// Short:   Check the bot's connection to a channel or an AI provider
//
// Examples:
//   newsbot-console test channel --channel @markets
//   newsbot-console test openrouter
//   newsbot-console test gemini --json
//   newsbot-console test telegram
//
// Exit codes: 0 success, 1 server reported failure, 2 server unreachable,
// 3 invalid input (nothing sent).

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/conntest"
)

// TestData is the --json payload of the test command.
type TestData struct {
	Target    string `json:"target"`
	Success   bool   `json:"success"`
	Text      string `json:"text"`
	Transport bool   `json:"transport,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

// HandleTest runs one connectivity test and reports it the way the console
// would render it on the result surface.
func HandleTest(ctx context.Context, rt *Runtime, args Args) error {
	if args.Subcommand == "" {
		return ErrMissingArgument("target", "newsbot-console test openrouter")
	}
	target, err := conntest.ParseTarget(args.Subcommand)
	if err != nil {
		return NewValidationErrorWithExample("target", args.Subcommand,
			"must be channel, openrouter, gemini or telegram", "newsbot-console test gemini")
	}

	runner := conntest.NewRunner(conntest.LastSettled)
	req, err := runner.Begin(target, args.Channel)
	if errors.Is(err, conntest.ErrEmptyChannelID) {
		data := TestData{Target: target.String(), Text: runner.Control(target).Cell.Text}
		log.Printf("CONNTEST_VALIDATION_FAILED | target=%s", target)
		return reportTest(rt, args, data, ExitValidation)
	}
	if err != nil {
		return err
	}

	log.Printf("CONNTEST_DISPATCHED | target=%s token=%d", target, req.Token)
	out := conntest.Execute(ctx, rt.Client, req)
	runner.Settle(req, out)
	cell := runner.Control(target).Cell

	recordEntry(ctx, rt, audit.Entry{
		Kind:    audit.KindTest,
		Target:  target.String(),
		Success: cell.Success,
		Detail:  cell.Text,
	})

	data := TestData{
		Target:    target.String(),
		Success:   cell.Success,
		Text:      cell.Text,
		Transport: out.Transport,
		ChannelID: req.ChannelID(),
	}
	code := ExitSuccess
	switch {
	case out.Transport:
		code = ExitTransport
	case !cell.Success:
		code = ExitFailure
	}
	return reportTest(rt, args, data, code)
}

// reportTest prints data and turns a non-zero code into a silent ExitError.
func reportTest(rt *Runtime, args Args, data TestData, code int) error {
	var failure error
	if code != ExitSuccess {
		failure = errors.New(data.Text)
	}

	if args.JSON {
		resp := NewJSONResponse("test", data)
		if failure != nil {
			resp = NewJSONErrorResponse("test", failure, data)
		}
		if err := resp.Print(rt.Out); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(rt.Out, "%s %s %s\n", RenderStatus(data.Success), RenderLabel(data.Target, 12), data.Text)
	}

	if failure == nil {
		return nil
	}
	return &ExitError{Code: code, Err: failure, Silent: true}
}

// recordEntry journals e when a journal is open. Failures are logged only.
func recordEntry(ctx context.Context, rt *Runtime, e audit.Entry) {
	if rt.Journal == nil {
		return
	}
	if _, err := rt.Journal.Record(ctx, e); err != nil {
		log.Printf("AUDIT_RECORD_FAILED | kind=%s target=%s error=%v", e.Kind, e.Target, err)
	}
}
