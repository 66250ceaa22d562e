// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Subcommands:
//   show (default)      Display the effective configuration
//   init                Write a default config file
//   path                Show the configuration file path
//
// Examples:
//   newsbot-console config
//   newsbot-console config show --json
//   newsbot-console config init
//   newsbot-console config init --yes     Overwrite an existing file
//   newsbot-console --config ./dev.toml config path

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/newsbot-console/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(rt *Runtime, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(rt, args)
	case "init":
		return handleConfigInit(rt, args)
	case "path":
		return handleConfigPath(rt, args)
	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"must be show, init or path", "newsbot-console config show")
	}
}

// configFilePath is --config when given, else the default TOML location.
func configFilePath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

func handleConfigShow(rt *Runtime, args Args) error {
	if args.JSON {
		return NewJSONResponse("config show", rt.Config).Print(rt.Out)
	}
	fmt.Fprintln(rt.Out, TitleStyle.Render("Effective configuration"))
	if err := toml.NewEncoder(rt.Out).Encode(rt.Config); err != nil {
		return NewCommandError("config", "show", "failed to encode config", err)
	}
	return nil
}

func handleConfigInit(rt *Runtime, args Args) error {
	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr == nil && !args.Yes {
		return NewValidationErrorWithExample("config", path, "file already exists", "newsbot-console config init --yes")
	}
	if args.ConfigPath == "" {
		if err := config.EnsureConfigDir(); err != nil {
			return NewCommandError("config", "init", "cannot create config directory", err)
		}
	}

	cfg := config.Default()
	if args.URL != "" {
		cfg.Server.BaseURL = rt.Config.Server.BaseURL
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return NewCommandError("config", "init", "cannot write config", err)
	}

	if args.JSON {
		return NewJSONResponse("config init", map[string]string{"path": path}).Print(rt.Out)
	}
	fmt.Fprintf(rt.Out, "%s wrote %s\n", RenderStatus(true), path)
	return nil
}

func handleConfigPath(rt *Runtime, args Args) error {
	path, err := configFilePath(args)
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config path", map[string]string{"path": path}).Print(rt.Out)
	}
	fmt.Fprintln(rt.Out, path)
	return nil
}
