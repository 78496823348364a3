// chatguru - AI comment suggestions for social media posts, in the terminal.
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
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/cli"
	"github.com/chatguru/chatguru-tui/internal/cloud"
	"github.com/chatguru/chatguru-tui/internal/config"
	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/imaging"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
	"github.com/chatguru/chatguru-tui/internal/throttle"
	"github.com/chatguru/chatguru-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var (
		name string
		err  error
	)
	switch cmd {
	case cli.CmdConfig:
		name, err = "config", cli.HandleConfig(args, os.Stdout)
	case cli.CmdStatus:
		name, err = "status", cli.HandleStatus(args, os.Stdout)
	case cli.CmdDoctor:
		name, err = "doctor", cli.HandleDoctor(args, os.Stdout)
	case cli.CmdReset:
		name, err = "reset", cli.HandleReset(args, os.Stdout)
	case cli.CmdVersion:
		name, err = "version", cli.HandleVersion(args, os.Stdout)
	case cli.CmdHelp:
		cli.HandleHelp(os.Stdout)
		return
	default:
		name, err = "chatguru", runTUI(args)
	}

	if err != nil {
		cli.DisplayError(os.Stderr, name, err, args.JSON)
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI wires the stores, backend client and orchestrator, then hands the
// terminal to the UI until the user quits.
func runTUI(args cli.Args) error {
	if !cli.IsTTY() || !cli.IsStdoutTTY() {
		return &cli.TTYRequiredError{Operation: "run the interactive UI"}
	}

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}

	logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Printf("[main] chatguru %s starting", Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open chat database: %w", err)
	}
	defer store.Close()

	prefs, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer prefs.Close()

	connect, read, write := cfg.Backend.Timeouts()
	client := cloud.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey).
		WithTimeouts(cloud.Timeouts{Connect: connect, Read: read, Write: write}).
		WithLogBodies(cfg.Backend.LogBodies)
	if !client.IsConfigured() {
		log.Printf("[main] backend API key is not set; requests will fail until it is")
	}

	orch, err := conversation.New(conversation.Deps{
		Chats:     store,
		Messages:  store,
		Profile:   prefs,
		API:       client,
		Images:    imaging.NewEncoder(),
		Throttler: throttle.New(cfg.Throttle.MinInterval()),
	})
	if err != nil {
		return err
	}

	model := app.New(ctx, orch, app.Options{
		Theme:          cfg.UI.Theme,
		RenderMarkdown: cfg.UI.RenderMarkdown,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("ui: %w", err)
	}
	log.Printf("[main] exiting")
	return nil
}

// openLog opens ~/.chatguru/chatguru.log for appending.
func openLog() (io.WriteCloser, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	path, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return f, nil
}
