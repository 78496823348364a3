// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and the version/help handlers for chatguru.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
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
	CmdConfig
	CmdStatus
	CmdDoctor
	CmdReset
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config, overrides ~/.chatguru/config.toml
	JSON       bool   // Output in JSON format
	Yes        bool   // Skip confirmation prompts
	Verbose    bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	All        bool // reset --all also clears the saved profile
	Recent     int  // status --recent N
}

const usageText = `chatguru - AI comment suggestions for social media posts

Usage:
  chatguru                          Start the TUI (default)
  chatguru config [subcommand]      Show or edit configuration
  chatguru status, s                Show configuration, storage and profile
  chatguru doctor                   Run health checks
  chatguru reset [--all]            Restart onboarding and delete every chat
  chatguru version                  Show version information
  chatguru help                     Show this help

Config Subcommands:
  chatguru config show              Print the effective configuration (key redacted)
  chatguru config get KEY           Print one value, e.g. backend.base_url
  chatguru config set KEY VALUE     Set one value in the config file
  chatguru config keys              List every settable key
  chatguru config path              Print the config file path
  chatguru config reset             Restore defaults

Global Flags:
  --config PATH                     Use PATH instead of ~/.chatguru/config.toml
  --json                            Machine-readable output
  -y, --yes                         Do not ask for confirmation
  -v, --verbose                     Verbose output

Environment:
  CHATGURU_BASE_URL, CHATGURU_API_KEY, CHATGURU_THROTTLE_MS,
  CHATGURU_DB, CHATGURU_SETTINGS, CHATGURU_LOG_BODIES

Examples:
  chatguru config set backend.api_key <anon-key>
  chatguru config set throttle.min_interval_ms 3000
  chatguru status --recent 10
  chatguru doctor --json
`

// PrintUsage prints the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "status", "s":
		parsedArgs.Recent = parseCommandArgs(remaining, "recent").intValue("recent", 5)
		return CmdStatus, parsedArgs

	case "doctor", "diag":
		return CmdDoctor, parsedArgs

	case "reset":
		parsedArgs.All = parseCommandArgs(remaining).on("all")
		return CmdReset, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts flags valid for every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--json":
			parsedArgs.JSON = true
		case "-y", "--yes":
			parsedArgs.Yes = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--config", "-c":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	a := parseCommandArgs(remaining)
	args.Subcommand = strings.ToLower(a.arg(0))
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
	args.ConfigKey = a.arg(1)
	args.ConfigVal = a.rest(2)
}

// HandleVersion prints version information.
func HandleVersion(args Args, w io.Writer) error {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if args.JSON {
		return NewJSONResponse("version", data).Print(w)
	}
	fmt.Fprintf(w, "chatguru %s (commit %s, built %s, %s)\n", data.Version, data.GitCommit, data.BuildDate, data.GoVersion)
	return nil
}

// HandleHelp prints the usage text.
func HandleHelp(w io.Writer) {
	PrintUsage(w)
}
