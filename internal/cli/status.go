// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - status command implementation.
//
// Command: status [--recent N]
// Aliases: s
//
// Shows the backend configuration, local storage counts, the saved
// profile and the N most recently updated chats.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chatguru/chatguru-tui/internal/config"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
	"github.com/chatguru/chatguru-tui/internal/util"
)

// HandleStatus displays the current status.
func HandleStatus(args Args, w io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return NewCommandError("status", "load", "could not load configuration", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data := collectStatus(ctx, args, cfg)
	if args.JSON {
		return NewJSONResponse("status", data).Print(w)
	}

	fmt.Fprintln(w, TitleStyle.Render("chatguru Status"))
	fmt.Fprintln(w, RenderSeparator())

	fmt.Fprintln(w, SectionStyle.Render("Backend"))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Base URL"), ValueStyle.Render(data.Backend.BaseURL))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("API key"), yesNo(data.Backend.APIKeySet))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Request spacing"), ValueStyle.Render(cfg.Throttle.MinInterval().String()))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Read timeout"), ValueStyle.Render(fmt.Sprintf("%ds", data.Backend.ReadTimeoutSec)))

	fmt.Fprintln(w, SectionStyle.Render("Storage"))
	fmt.Fprintf(w, "%s%s (%s)\n", RenderLabel("Database"), ValueStyle.Render(data.Storage.DatabasePath), formatBytes(data.Storage.DatabaseBytes))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Settings"), ValueStyle.Render(data.Storage.SettingsPath))
	if data.Storage.Error != "" {
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Error"), ErrorStyle.Render(data.Storage.Error))
	} else {
		fmt.Fprintf(w, "%s%d (%d favorites)\n", RenderLabel("Chats"), data.Storage.Chats, data.Storage.Favorites)
	}

	fmt.Fprintln(w, SectionStyle.Render("Profile"))
	if data.Profile.Error != "" {
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Error"), WarningStyle.Render(data.Profile.Error))
	} else {
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Onboarding done"), yesNo(data.Profile.OnboardingCompleted))
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Profile saved"), yesNo(data.Profile.ProfileSetupCompleted))
		fmt.Fprintf(w, "%s%s, %d, %s\n", RenderLabel("Gender/Age/Lang"), data.Profile.Gender, data.Profile.Age, data.Profile.Language)
	}

	if len(data.Recent) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Recent chats"))
		for _, c := range data.Recent {
			star := " "
			if c.Favorite {
				star = HighlightStyle.Render("*")
			}
			fmt.Fprintf(w, "%s %s  %s\n", star, DimStyle.Render(c.UpdatedAt), util.TruncateWidth(util.SingleLine(c.Title), 50))
		}
	}
	fmt.Fprintln(w)
	return nil
}

func collectStatus(ctx context.Context, args Args, cfg *config.Config) StatusData {
	path, _ := ConfigPath(args)
	data := StatusData{
		ConfigPath: path,
		Backend: StatusBackendInfo{
			BaseURL:        cfg.Backend.BaseURL,
			APIKeySet:      cfg.Backend.APIKey != "",
			MinIntervalMs:  cfg.Throttle.MinIntervalMs,
			ReadTimeoutSec: cfg.Backend.ReadTimeoutSecs,
			LogBodies:      cfg.Backend.LogBodies,
		},
		Storage: StatusStorageInfo{
			DatabasePath: cfg.DatabasePath(),
			SettingsPath: cfg.SettingsPath(),
		},
		Recent: []StatusChatInfo{},
	}

	if info, err := os.Stat(data.Storage.DatabasePath); err == nil {
		data.Storage.DatabaseBytes = info.Size()
	}

	if store, err := storage.Open(ctx, data.Storage.DatabasePath); err != nil {
		data.Storage.Error = err.Error()
	} else {
		defer store.Close()
		if chats, err := store.ListChats(ctx); err != nil {
			data.Storage.Error = err.Error()
		} else {
			data.Storage.Chats = len(chats)
			for i, c := range chats {
				if c.IsFavorite {
					data.Storage.Favorites++
				}
				if i < args.Recent {
					data.Recent = append(data.Recent, StatusChatInfo{
						ID:        c.ID,
						Title:     c.Title,
						Favorite:  c.IsFavorite,
						UpdatedAt: c.UpdatedAt().Format("2006-01-02 15:04"),
					})
				}
			}
		}
	}

	if prefs, err := settings.Open(data.Storage.SettingsPath); err != nil {
		data.Profile.Error = "settings unavailable (is chatguru running?): " + err.Error()
	} else {
		defer prefs.Close()
		snap, err := prefs.Snapshot()
		if err != nil {
			data.Profile.Error = err.Error()
		} else {
			data.Profile = StatusProfileInfo{
				OnboardingCompleted:   snap.OnboardingCompleted,
				ProfileSetupCompleted: snap.ProfileSetupCompleted,
				Gender:                snap.Profile.Gender.DisplayName(),
				Age:                   snap.Profile.Age,
				Language:              snap.Profile.PreferredLanguage.DisplayName(),
			}
		}
	}

	return data
}

func yesNo(b bool) string {
	if b {
		return SuccessStyle.Render("yes")
	}
	return WarningStyle.Render("no")
}
