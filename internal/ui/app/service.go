// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/settings"
)

// Service is the part of *conversation.Orchestrator the UI drives.
type Service interface {
	State() conversation.State
	Subscribe() (<-chan conversation.State, func())
	ResetUIState()

	CurrentChatID() string
	CurrentLanguage() model.Language
	CurrentTones() []model.Tone
	LastGeneration() (conversation.GenerationParams, bool)
	SetCurrentChat(ctx context.Context, id string) error
	UpdateTones(ctx context.Context, tones []model.Tone) error

	Chats(ctx context.Context) ([]model.Chat, error)
	FavoriteChats(ctx context.Context) ([]model.Chat, error)
	Chat(ctx context.Context, id string) (model.Chat, error)
	Messages(ctx context.Context, chatID string) ([]model.Message, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	DeleteChat(ctx context.Context, id string) error
	DeleteAllChats(ctx context.Context) error

	Preferences() (settings.Preferences, error)
	Profile() model.UserProfile
	CompleteOnboarding() error
	SaveProfile(p model.UserProfile) error
	UpdateLanguage(lang model.Language) error
	ResetApp(ctx context.Context) error

	Generate(ctx context.Context, in conversation.GenerateInput) (conversation.Reply, error)
	Continue(ctx context.Context, in conversation.ContinueInput) (conversation.Reply, error)
	Regenerate(ctx context.Context, in conversation.RegenerateInput) (conversation.Reply, error)
	RetryLastGeneration(ctx context.Context) (conversation.Reply, error)
}

var _ Service = (*conversation.Orchestrator)(nil)
