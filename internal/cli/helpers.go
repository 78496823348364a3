// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chatguru/chatguru-tui/internal/config"
)

// stdin is where confirmation prompts read from.
var stdin io.Reader = os.Stdin

// formatBytes formats bytes as human-readable string.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// promptInput prints prompt to w and reads one line from in.
func promptInput(w io.Writer, in io.Reader, prompt string) string {
	fmt.Fprint(w, prompt)
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ConfigPath returns --config if given, otherwise ~/.chatguru/config.toml.
func ConfigPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return config.ExpandPath(args.ConfigPath), nil
	}
	return config.ConfigPathTOML()
}

// LoadConfig returns the effective configuration: the file named by
// --config (or the default search), environment overrides, validation.
func LoadConfig(args Args) (*config.Config, error) {
	if args.ConfigPath == "" {
		return config.Load()
	}
	path := config.ExpandPath(args.ConfigPath)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadFromPath(path)
}
