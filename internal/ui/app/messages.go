// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/settings"
)

// =============================================================================
// STATE
// =============================================================================

// stateMsg carries one orchestrator state from the subscription.
type stateMsg struct {
	State conversation.State
}

// stateClosedMsg means the subscription ended.
type stateClosedMsg struct{}

// =============================================================================
// LOADING
// =============================================================================

// prefsLoadedMsg decides the start screen.
type prefsLoadedMsg struct {
	Prefs settings.Preferences
	Err   error
}

// chatLoadedMsg opens a conversation.
type chatLoadedMsg struct {
	Chat     model.Chat
	Messages []model.Message
	Tones    []model.Tone
	Language model.Language
	Err      error
}

// historyLoadedMsg fills the history list.
type historyLoadedMsg struct {
	Favorites bool
	Chats     []model.Chat
	Err       error
}

// =============================================================================
// FLOWS
// =============================================================================

type flowKind int

const (
	flowGenerate flowKind = iota
	flowContinue
	flowRegenerate
	flowRetry
)

func (f flowKind) String() string {
	switch f {
	case flowGenerate:
		return "generate"
	case flowContinue:
		return "continue"
	case flowRegenerate:
		return "regenerate"
	default:
		return "retry"
	}
}

// flowDoneMsg is returned when a flow finishes, successfully or not.
type flowDoneMsg struct {
	Kind  flowKind
	Reply conversation.Reply
	Err   error
}

// =============================================================================
// ACTIONS
// =============================================================================

type onboardingDoneMsg struct{ Err error }

type profileSavedMsg struct {
	Profile model.UserProfile
	Err     error
}

type languageSavedMsg struct {
	Language model.Language
	Err      error
}

type tonesSavedMsg struct {
	Tones []model.Tone
	Err   error
}

type favoriteToggledMsg struct {
	ChatID   string
	Favorite bool
	Err      error
}

type chatDeletedMsg struct {
	ChatID string
	Err    error
}

type allChatsDeletedMsg struct{ Err error }

type appResetMsg struct{ Err error }

type copiedMsg struct{ Err error }
