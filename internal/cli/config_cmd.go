// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config command implementation.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Effective configuration, API key redacted
//   get KEY             One value
//   set KEY VALUE       Edit the config file
//   keys                Every settable key
//   path                The config file path
//   reset               Restore defaults
//
// show and get report the effective values (file plus environment);
// set and reset edit only the file, so environment overrides are never
// written to disk.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chatguru/chatguru-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args, w)
	case "get":
		return handleConfigGet(args, w)
	case "set":
		return handleConfigSet(args, w)
	case "keys":
		return handleConfigKeys(args, w)
	case "path":
		return handleConfigPath(args, w)
	case "reset":
		return handleConfigReset(args, w)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   args.Subcommand,
			Reason:  "unknown config subcommand",
			Example: "chatguru config [show|get|set|keys|path|reset]",
		}
	}
}

func handleConfigShow(args Args, w io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return NewCommandError("config", "show", "could not load configuration", err)
	}
	if args.JSON {
		redacted := cfg.Clone()
		redacted.Backend.APIKey = maskAPIKey(cfg.Backend.APIKey)
		return NewJSONResponse("config", redacted).Print(w)
	}

	path, _ := ConfigPath(args)
	fmt.Fprintln(w, TitleStyle.Render("chatguru Configuration"))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("File"), ValueStyle.Render(path))
	for _, key := range cfg.Keys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s\n", RenderLabel(key, 32), ValueStyle.Render(maskIfSecret(key, fmt.Sprint(value))))
	}
	return nil
}

func handleConfigGet(args Args, w io.Writer) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "chatguru config get backend.base_url")
	}
	cfg, err := LoadConfig(args)
	if err != nil {
		return NewCommandError("config", "get", "could not load configuration", err)
	}
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return &ValidationError{Field: "key", Value: args.ConfigKey, Reason: err.Error(), Example: "chatguru config keys"}
	}
	value = maskIfSecret(args.ConfigKey, fmt.Sprint(value))

	if args.JSON {
		return NewJSONResponse("config", ConfigValueData{Key: args.ConfigKey, Value: value}).Print(w)
	}
	fmt.Fprintln(w, value)
	return nil
}

func handleConfigSet(args Args, w io.Writer) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "chatguru config set throttle.min_interval_ms 3000")
	}
	path, err := ConfigPath(args)
	if err != nil {
		return err
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		return NewCommandError("config", "set", "could not read config file", err)
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &ValidationError{Field: args.ConfigKey, Value: args.ConfigVal, Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTo(cfg, path); err != nil {
		return NewCommandError("config", "set", "could not save config file", err)
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigValueData{
			Key:   args.ConfigKey,
			Value: maskIfSecret(args.ConfigKey, args.ConfigVal),
		}).Print(w)
	}
	fmt.Fprintf(w, "%s %s = %s\n", SuccessStyle.Render("[OK]"), args.ConfigKey, maskIfSecret(args.ConfigKey, args.ConfigVal))
	return nil
}

func handleConfigKeys(args Args, w io.Writer) error {
	keys := config.Default().Keys()
	if args.JSON {
		return NewJSONResponse("config", keys).Print(w)
	}
	fmt.Fprintln(w, strings.Join(keys, "\n"))
	return nil
}

func handleConfigPath(args Args, w io.Writer) error {
	path, err := ConfigPath(args)
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config", map[string]string{"config_path": path}).Print(w)
	}
	fmt.Fprintln(w, path)
	return nil
}

func handleConfigReset(args Args, w io.Writer) error {
	path, err := ConfigPath(args)
	if err != nil {
		return err
	}
	if !args.Yes {
		if err := RequiresTTY("confirm config reset"); err != nil {
			return &ValidationError{Field: "--yes", Reason: "required when not running interactively"}
		}
		answer := promptInput(w, stdin, "Restore default configuration? The API key will be removed. [y/N] ")
		if ok, _ := ParseBoolString(answer); !ok {
			fmt.Fprintln(w, DimStyle.Render("Cancelled."))
			return nil
		}
	}
	if err := config.SaveTo(config.Default(), path); err != nil {
		return NewCommandError("config", "reset", "could not save config file", err)
	}
	if args.JSON {
		return NewJSONResponse("config", map[string]string{"config_path": path}).Print(w)
	}
	fmt.Fprintf(w, "%s Configuration reset: %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

// maskAPIKey keeps the first and last four characters of long keys.
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 12 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskIfSecret(key, value string) string {
	if strings.HasSuffix(strings.ToLower(key), "api_key") {
		return maskAPIKey(value)
	}
	return value
}
