// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// reset.go - reset command implementation.
//
// Command: reset [--all] [--yes]
//
// Deletes every chat and message and clears both onboarding flags, so the
// next launch starts at onboarding. The saved profile survives unless
// --all is given.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
)

// HandleReset clears local state.
func HandleReset(args Args, w io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return NewCommandError("reset", "load", "could not load configuration", err)
	}

	if !args.Yes {
		if err := RequiresTTY("confirm reset"); err != nil {
			return &ValidationError{Field: "--yes", Reason: "required when not running interactively"}
		}
		prompt := "Delete all chats and restart onboarding? [y/N] "
		if args.All {
			prompt = "Delete all chats, the saved profile and restart onboarding? [y/N] "
		}
		if ok, _ := ParseBoolString(promptInput(w, stdin, prompt)); !ok {
			fmt.Fprintln(w, DimStyle.Render("Cancelled."))
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prefs, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		return NewCommandError("reset", "settings", "could not open settings (is chatguru running?)", err)
	}
	defer prefs.Close()

	store, err := storage.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return NewCommandError("reset", "storage", "could not open chat database", err)
	}
	defer store.Close()

	n, err := store.CountChats(ctx)
	if err != nil {
		return NewCommandError("reset", "storage", "could not count chats", err)
	}

	if args.All {
		err = prefs.ClearAll()
	} else {
		err = prefs.ResetOnboarding()
	}
	if err != nil {
		return NewCommandError("reset", "settings", "could not reset settings", err)
	}
	if err := store.DeleteAllChats(ctx); err != nil {
		return NewCommandError("reset", "storage", "could not delete chats", err)
	}

	data := ResetData{ChatsDeleted: n, ProfileCleared: args.All}
	if args.JSON {
		return NewJSONResponse("reset", data).Print(w)
	}
	fmt.Fprintf(w, "%s Deleted %d chat(s); onboarding will run on next launch.\n", SuccessStyle.Render("[OK]"), n)
	if args.All {
		fmt.Fprintln(w, DimStyle.Render("Saved profile cleared."))
	}
	return nil
}
