// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the newsbot-console command line and implements the
// one-shot subcommands.
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if cmd == cli.CmdTUI {
//	    // start the interactive console
//	}
//	rt, err := cli.NewRuntime(cmd, args)
//	...
//	err = cli.Run(ctx, cmd, args, rt)
//	os.Exit(cli.GetExitCode(err))
//
// # Commands
//
//   - test: connectivity test against the channel lookup, OpenRouter, Gemini
//     or the Telegram messaging endpoint
//   - stats: one dashboard fetch
//   - regenerate, post, delete, scrape: confirmed actions
//   - config: show, init, path
//   - audit: recent journal entries
//
// Every command accepts --json and prints a JSONResponse envelope.
package cli
