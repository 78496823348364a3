// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"time"

	"github.com/chatguru/chatguru-tui/internal/cloud"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/throttle"
)

// ChatStore persists chats. Missing chats are reported by wrapping
// storage.ErrChatNotFound. CreateChat writes the chat and its messages
// atomically.
type ChatStore interface {
	CreateChat(ctx context.Context, chat model.Chat, msgs []model.Message) error
	UpdateChat(ctx context.Context, chat model.Chat) error
	GetChat(ctx context.Context, id string) (model.Chat, error)
	ListChats(ctx context.Context) ([]model.Chat, error)
	ListFavoriteChats(ctx context.Context) ([]model.Chat, error)
	DeleteChat(ctx context.Context, id string) error
	DeleteAllChats(ctx context.Context) error
}

// MessageStore persists messages.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg model.Message) error
	MessagesByChat(ctx context.Context, chatID string) ([]model.Message, error)
}

// ProfileStore holds onboarding flags and the user profile.
type ProfileStore interface {
	Snapshot() (settings.Preferences, error)
	Profile() (model.UserProfile, error)
	SaveProfile(profile model.UserProfile) error
	UpdateLanguage(lang model.Language) error
	SetOnboardingCompleted() error
	ResetOnboarding() error
}

// CommentAPI is the remote backend.
type CommentAPI interface {
	GenerateComment(ctx context.Context, req cloud.GenerateCommentRequest) (*cloud.CommentResponse, error)
	ContinueConversation(ctx context.Context, req cloud.ContinueConversationRequest) (*cloud.CommentResponse, error)
}

// ImageEncoder produces the base64 upload for an image reference.
type ImageEncoder interface {
	EncodeBase64(ctx context.Context, ref string) (string, error)
}

// Deps are the Orchestrator's collaborators. Chats, Messages, Profile,
// API and Images are required; the rest default.
type Deps struct {
	Chats     ChatStore
	Messages  MessageStore
	Profile   ProfileStore
	API       CommentAPI
	Images    ImageEncoder
	Throttler *throttle.Throttler

	// Now defaults to time.Now.
	Now func() time.Time
	// NewID defaults to random UUIDs.
	NewID func() string
}
