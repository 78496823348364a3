// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// subcommands of chatguru.
//
// # Key Types
//
//   - Command: enumeration of the available subcommands
//   - Args: parsed global flags plus command-specific values
//   - ArgParser: flag and positional parsing shared by all commands
//   - JSONResponse: machine-readable output for --json
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdTUI:
//	    runTUI(args)
//	case cli.CmdConfig:
//	    err = cli.HandleConfig(args, os.Stdout)
//	}
//
// # Commands
//
//   - (none) / tui: start the interactive terminal UI
//   - config [show|get|set|keys|path|reset]: inspect or edit config.toml
//   - status: configuration, storage and profile summary
//   - doctor: health checks for config, backend and local storage
//   - reset [--all]: restart onboarding and delete every chat
//   - version, help
package cli
