// newsbot-console - Terminal admin console for the news bot.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/cli"
	"github.com/jeranaias/newsbot-console/internal/config"
	"github.com/jeranaias/newsbot-console/internal/ui/console"
	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
	backend.UserAgent = "newsbot-console/" + Version
}

func main() {
	cmd, args := cli.Parse()

	closeLog := setupLogging()
	defer closeLog()

	if cmd == cli.CmdTUI {
		if err := runTUI(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error running newsbot-console: %v\n", err)
			closeLog()
			os.Exit(1)
		}
		return
	}

	code := runCommand(cmd, args)
	closeLog()
	os.Exit(code)
}

// setupLogging sends the event log to ~/.newsbot-console/console.log so it
// never interleaves with the TUI or command output.
func setupLogging() func() {
	dir, err := config.ConfigDir()
	if err == nil {
		err = config.EnsureConfigDir()
	}
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}

	f, err := tea.LogToFile(filepath.Join(dir, "console.log"), "newsbot")
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { _ = f.Close() }
}

// =============================================================================
// ONE-SHOT COMMANDS
// =============================================================================

func runCommand(cmd cli.Command, args cli.Args) int {
	errOut := io.Writer(os.Stderr)
	if args.JSON {
		errOut = os.Stdout
	}

	switch cmd {
	case cli.CmdVersion:
		return cli.GetExitCode(cli.HandleVersion(os.Stdout, args))
	case cli.CmdHelp:
		err := cli.HandleHelp(os.Stdout, args)
		cli.DisplayError(errOut, err, args.JSON)
		return cli.GetExitCode(err)
	}

	rt, err := cli.NewRuntime(cmd, args)
	if err != nil {
		cli.DisplayError(errOut, err, args.JSON)
		return cli.ExitFailure
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("COMMAND_START | command=%s url=%s", cmd, rt.Config.Server.BaseURL)
	err = cli.Run(ctx, cmd, args, rt)
	cli.DisplayError(errOut, err, args.JSON)
	code := cli.GetExitCode(err)
	log.Printf("COMMAND_DONE | command=%s exit=%d", cmd, code)
	return code
}

// =============================================================================
// INTERACTIVE CONSOLE
// =============================================================================

func runTUI(args cli.Args) error {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)
	styles.ApplyThemeName(cfg.UI.Theme)

	start, err := console.ParseView(args.View)
	if err != nil {
		return err
	}

	var journal *audit.Journal
	if cfg.Audit.Enabled {
		path, err := cfg.AuditPath()
		if err == nil {
			journal, err = audit.Open(path)
		}
		if err != nil {
			log.Printf("AUDIT_OPEN_FAILED | error=%v", err)
			journal = nil
		} else {
			defer journal.Close()
		}
	}

	watcher := openWatcher(args)
	if watcher != nil {
		defer watcher.Close()
	}

	m := console.New(console.Options{
		Config:    cfg,
		Client:    backend.NewClient(cfg.Server.BaseURL),
		Journal:   journal,
		Watcher:   watcher,
		Start:     start,
		NoRefresh: args.NoRefresh,
	})

	log.Printf("TUI_START | url=%s view=%s", cfg.Server.BaseURL, start)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// openWatcher watches the config file the console loaded from. Without a
// file there is nothing to reload.
func openWatcher(args cli.Args) *config.Watcher {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return nil
		}
		path = p
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := config.NewWatcher(path, config.DefaultReloadDebounce)
	if err != nil {
		log.Printf("CONFIG_WATCH_FAILED | path=%s error=%v", path, err)
		return nil
	}
	return w
}
