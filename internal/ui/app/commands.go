// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/model"
)

// =============================================================================
// STATE SUBSCRIPTION
// =============================================================================

// waitForState blocks on the next state. The model re-issues it after
// every stateMsg.
func waitForState(ch <-chan conversation.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return stateClosedMsg{}
		}
		return stateMsg{State: s}
	}
}

// =============================================================================
// LOADERS
// =============================================================================

func (m Model) loadPrefsCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		p, err := svc.Preferences()
		return prefsLoadedMsg{Prefs: p, Err: err}
	}
}

// openChatCmd makes id current and loads it.
func (m Model) openChatCmd(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.SetCurrentChat(ctx, id); err != nil {
			return chatLoadedMsg{Err: err}
		}
		chat, err := svc.Chat(ctx, id)
		if err != nil {
			return chatLoadedMsg{Err: err}
		}
		msgs, err := svc.Messages(ctx, id)
		if err != nil {
			return chatLoadedMsg{Err: err}
		}
		return chatLoadedMsg{
			Chat:     chat,
			Messages: msgs,
			Tones:    svc.CurrentTones(),
			Language: svc.CurrentLanguage(),
		}
	}
}

func (m Model) loadHistoryCmd(favorites bool) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		var chats []model.Chat
		var err error
		if favorites {
			chats, err = svc.FavoriteChats(ctx)
		} else {
			chats, err = svc.Chats(ctx)
		}
		return historyLoadedMsg{Favorites: favorites, Chats: chats, Err: err}
	}
}

// =============================================================================
// FLOWS
// =============================================================================

func (m Model) generateCmd(in conversation.GenerateInput) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		r, err := svc.Generate(ctx, in)
		return flowDoneMsg{Kind: flowGenerate, Reply: r, Err: err}
	}
}

func (m Model) continueCmd(in conversation.ContinueInput) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		r, err := svc.Continue(ctx, in)
		return flowDoneMsg{Kind: flowContinue, Reply: r, Err: err}
	}
}

func (m Model) regenerateCmd(in conversation.RegenerateInput) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		r, err := svc.Regenerate(ctx, in)
		return flowDoneMsg{Kind: flowRegenerate, Reply: r, Err: err}
	}
}

func (m Model) retryCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		r, err := svc.RetryLastGeneration(ctx)
		return flowDoneMsg{Kind: flowRetry, Reply: r, Err: err}
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) completeOnboardingCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return onboardingDoneMsg{Err: svc.CompleteOnboarding()}
	}
}

func (m Model) saveProfileCmd(p model.UserProfile) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return profileSavedMsg{Profile: p, Err: svc.SaveProfile(p)}
	}
}

func (m Model) saveLanguageCmd(lang model.Language) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return languageSavedMsg{Language: lang, Err: svc.UpdateLanguage(lang)}
	}
}

func (m Model) saveTonesCmd(tones []model.Tone) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		err := svc.UpdateTones(ctx, tones)
		return tonesSavedMsg{Tones: svc.CurrentTones(), Err: err}
	}
}

func (m Model) toggleFavoriteCmd(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		fav, err := svc.ToggleFavorite(ctx, id)
		return favoriteToggledMsg{ChatID: id, Favorite: fav, Err: err}
	}
}

func (m Model) deleteChatCmd(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return chatDeletedMsg{ChatID: id, Err: svc.DeleteChat(ctx, id)}
	}
}

func (m Model) deleteAllChatsCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return allChatsDeletedMsg{Err: svc.DeleteAllChats(ctx)}
	}
}

func (m Model) resetAppCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return appResetMsg{Err: svc.ResetApp(ctx)}
	}
}

func (m Model) copyCmd(text string) tea.Cmd {
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{Err: copyFn(text)}
	}
}
