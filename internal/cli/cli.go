// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and shared runtime for newsbot-console.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/config"
	"github.com/jeranaias/newsbot-console/internal/confirm"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdTest
	CmdStats
	CmdRegenerate
	CmdPost
	CmdDelete
	CmdScrape
	CmdConfig
	CmdAudit
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdTest:
		return "test"
	case CmdStats:
		return "stats"
	case CmdRegenerate:
		return "regenerate"
	case CmdPost:
		return "post"
	case CmdDelete:
		return "delete"
	case CmdScrape:
		return "scrape"
	case CmdConfig:
		return "config"
	case CmdAudit:
		return "audit"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// journaled reports whether the command reads or writes the audit journal.
func (c Command) journaled() bool {
	switch c {
	case CmdTest, CmdStats, CmdRegenerate, CmdPost, CmdDelete, CmdScrape, CmdAudit:
		return true
	}
	return false
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	URL        string
	ConfigPath string
	NoRefresh  bool
	JSON       bool
	Yes        bool

	// Command-specific
	Subcommand string // config show|init|path, or the test target
	ArticleID  string
	Channel    string
	Limit      int
	View       string // tui start view: dashboard|settings|article

	// Unknown is set when the first word was not a command.
	Unknown string

	Raw []string
}

const usageText = `newsbot-console - admin console for the news bot

Usage:
  newsbot-console [tui] [--view dashboard|settings|article]
                                      Interactive console (default)
  newsbot-console test <target>       Run a connectivity test
      targets: channel, openrouter, gemini, telegram
      --channel ID                    Channel to look up (channel target)
  newsbot-console stats               Show dashboard counters
  newsbot-console regenerate <id>     Regenerate an article summary
  newsbot-console post <id>           Publish an article
      --channel ID                    Override the target channel
  newsbot-console delete <id>         Delete an article
  newsbot-console scrape              Start a news scrape
  newsbot-console config [show|init|path]
  newsbot-console audit [test|action|stats] [--limit N]
                                      Show recent journal entries
  newsbot-console version
  newsbot-console help

Global flags:
  --url URL         Admin server root (overrides config and NEWSBOT_URL)
  --config PATH     Config file to load
  --no-refresh      Disable dashboard auto-refresh
  --json            Machine-readable output
  --yes, -y         Skip confirmation prompts

Exit codes (test and actions):
  0 success, 1 server reported failure, 2 server unreachable, 3 invalid input

Version: %s
`

// PrintUsage prints the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "newsbot-console version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	p := NewArgParser(argv)
	args := Args{
		URL:        p.Flag("url"),
		ConfigPath: p.Flag("config"),
		NoRefresh:  p.BoolFlag("no-refresh"),
		JSON:       p.BoolFlag("json"),
		Yes:        p.BoolFlag("yes", "y"),
		Channel:    p.Flag("channel"),
		Limit:      p.FlagIntOrDefault("limit", 20),
		View:       p.Flag("view"),
		Raw:        p.PositionalFrom(1),
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args
	}
	if p.BoolFlag("version") {
		return CmdVersion, args
	}

	name := strings.ToLower(p.Subcommand())
	switch name {
	case "", "tui":
		return CmdTUI, args
	case "test":
		args.Subcommand = p.Positional(1)
		return CmdTest, args
	case "stats":
		return CmdStats, args
	case "regenerate", "regen":
		args.ArticleID = p.Positional(1)
		return CmdRegenerate, args
	case "post", "publish":
		args.ArticleID = p.Positional(1)
		return CmdPost, args
	case "delete", "rm":
		args.ArticleID = p.Positional(1)
		return CmdDelete, args
	case "scrape":
		return CmdScrape, args
	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		return CmdConfig, args
	case "audit":
		return CmdAudit, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		args.Unknown = name
		return CmdHelp, args
	}
}

// =============================================================================
// RUNTIME
// =============================================================================

// Runtime is what command handlers share: loaded config, server client,
// journal and where to write.
type Runtime struct {
	Config  *config.Config
	Client  *backend.Client
	Journal *audit.Journal

	// Prompter asks for confirmation; Interactive says whether it may.
	Prompter    confirm.Prompter
	Interactive bool

	Out io.Writer
	Err io.Writer
}

// LoadConfig loads the config named by --config (or the default location)
// and applies --url on top of file and environment values.
func LoadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if args.URL != "" {
		cfg.Server.BaseURL = strings.TrimRight(args.URL, "/")
	}
	return cfg, nil
}

// NewRuntime builds the runtime for a one-shot command. The journal is
// opened when auditing is enabled; failing to open it is logged and the
// command runs without it. "config init" and "config path" work without a
// loadable config file.
func NewRuntime(cmd Command, args Args) (*Runtime, error) {
	cfg, err := LoadConfig(args)
	if err != nil {
		if cmd != CmdConfig || (args.Subcommand != "init" && args.Subcommand != "path") {
			return nil, err
		}
		log.Printf("CONFIG_LOAD_SKIPPED | subcommand=%s error=%v", args.Subcommand, err)
		cfg = config.Default()
		if args.URL != "" {
			cfg.Server.BaseURL = strings.TrimRight(args.URL, "/")
		}
	}

	rt := &Runtime{
		Config:      cfg,
		Client:      backend.NewClient(cfg.Server.BaseURL),
		Prompter:    confirm.HuhPrompter{},
		Interactive: CanPrompt() && !args.JSON,
		Out:         os.Stdout,
		Err:         os.Stderr,
	}

	if cfg.Audit.Enabled && cmd.journaled() {
		path, err := cfg.AuditPath()
		if err == nil {
			rt.Journal, err = audit.Open(path)
		}
		if err != nil {
			log.Printf("AUDIT_OPEN_FAILED | error=%v", err)
		}
	}
	return rt, nil
}

// Close releases the journal.
func (rt *Runtime) Close() error {
	if rt.Journal == nil {
		return nil
	}
	return rt.Journal.Close()
}

// Run dispatches a non-TUI command. CmdTUI is handled by main.
func Run(ctx context.Context, cmd Command, args Args, rt *Runtime) error {
	switch cmd {
	case CmdTest:
		return HandleTest(ctx, rt, args)
	case CmdStats:
		return HandleStats(ctx, rt, args)
	case CmdRegenerate, CmdPost, CmdDelete, CmdScrape:
		return HandleAction(ctx, rt, cmd, args)
	case CmdConfig:
		return HandleConfig(rt, args)
	case CmdAudit:
		return HandleAudit(ctx, rt, args)
	case CmdVersion:
		return HandleVersion(rt.Out, args)
	default:
		return HandleHelp(rt.Out, args)
	}
}

// =============================================================================
// VERSION AND HELP
// =============================================================================

// VersionData is the --json payload of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion prints version information.
func HandleVersion(w io.Writer, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(w)
	}
	PrintVersion(w)
	return nil
}

// HandleHelp prints usage. An unknown command is reported as a usage error
// after the text.
func HandleHelp(w io.Writer, args Args) error {
	PrintUsage(w)
	if args.Unknown != "" {
		return NewValidationErrorWithExample("command", args.Unknown, "unknown command", "newsbot-console help")
	}
	return nil
}
