// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - per-command argument splitting for config, status and reset.

package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// COMMAND ARGS
// =============================================================================

// commandArgs is what follows a command name once the global flags are
// gone: positionals in order plus the flags that command understands.
type commandArgs struct {
	positional []string
	values     map[string]string
	switches   map[string]bool
}

// parseCommandArgs splits raw for one command. valueFlags names the
// flags that take a value ("--recent 10" or "--recent=10"); every other
// flag is a switch, which may be written "--all=false". Numbers such as
// "-1" stay positional so "config set" can receive them, and everything
// after "--" is positional.
func parseCommandArgs(raw []string, valueFlags ...string) commandArgs {
	a := commandArgs{
		values:   make(map[string]string),
		switches: make(map[string]bool),
	}
	takesValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "--" {
			a.positional = append(a.positional, raw[i+1:]...)
			break
		}
		if !isFlag(arg) {
			a.positional = append(a.positional, arg)
			continue
		}

		name, val, hasVal := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case takesValue[name] && hasVal:
			a.values[name] = val
		case takesValue[name]:
			if i+1 < len(raw) && !isFlag(raw[i+1]) {
				i++
				a.values[name] = raw[i]
			}
		case hasVal:
			on, err := ParseBoolString(val)
			a.switches[name] = err == nil && on
		default:
			a.switches[name] = true
		}
	}
	return a
}

func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err != nil
}

// arg returns positional i, or "".
func (a commandArgs) arg(i int) string {
	if i < 0 || i >= len(a.positional) {
		return ""
	}
	return a.positional[i]
}

// rest joins positionals from i on, so unquoted values with spaces
// survive "config set".
func (a commandArgs) rest(i int) string {
	if i < 0 || i >= len(a.positional) {
		return ""
	}
	return strings.Join(a.positional[i:], " ")
}

// intValue returns a numeric value flag, or def when it is missing or
// not a number.
func (a commandArgs) intValue(name string, def int) int {
	v, ok := a.values[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// on reports whether a switch was given and not turned off.
func (a commandArgs) on(name string) bool {
	return a.switches[name]
}

// =============================================================================
// CONFIRMATION ANSWERS
// =============================================================================

// ParseBoolString parses a boolean from various string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive)
func ParseBoolString(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
