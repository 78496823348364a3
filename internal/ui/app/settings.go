// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/components"
)

const (
	settingLanguage = iota
	settingProfile
	settingClearHistory
	settingResetApp
	settingCount
)

type settingsView struct {
	cursor int
}

// =============================================================================
// UPDATE
// =============================================================================

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.settings
	k := m.keys
	switch {
	case key.Matches(msg, k.Back):
		return m.leaveOverlayScreen()
	case key.Matches(msg, k.Up):
		v.cursor = cycle(v.cursor, -1, settingCount)
	case key.Matches(msg, k.Down):
		v.cursor = cycle(v.cursor, 1, settingCount)
	case key.Matches(msg, k.Left), key.Matches(msg, k.Right):
		if v.cursor == settingLanguage {
			delta := 1
			if key.Matches(msg, k.Left) {
				delta = -1
			}
			cur := indexOf(model.AllLanguages, m.prefs.Profile.PreferredLanguage)
			return m, m.saveLanguageCmd(model.AllLanguages[cycle(cur, delta, len(model.AllLanguages))])
		}
	case key.Matches(msg, k.Open):
		switch v.cursor {
		case settingLanguage:
			cur := indexOf(model.AllLanguages, m.prefs.Profile.PreferredLanguage)
			return m, m.saveLanguageCmd(model.AllLanguages[cycle(cur, 1, len(model.AllLanguages))])
		case settingProfile:
			return m.openProfile(true)
		case settingClearHistory:
			m.confirm = &confirmDialog{
				prompt: "Delete all chats and messages?",
				onYes:  m.deleteAllChatsCmd(),
			}
		case settingResetApp:
			m.confirm = &confirmDialog{
				prompt: "Reset the app? Chats are deleted and onboarding starts again.",
				onYes:  m.resetAppCmd(),
			}
		}
	}
	return m, nil
}

func (m Model) handleLanguageSaved(msg languageSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not change language", msg.Err)
		return m, nil
	}
	m.prefs.Profile.PreferredLanguage = msg.Language
	m.home.setLanguage(msg.Language)
	m.setStatus("Language set to "+msg.Language.DisplayName(), components.LevelSuccess)
	return m, nil
}

func (m Model) handleAppReset(msg appResetMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not reset", msg.Err)
		return m, nil
	}
	m.chat.clear()
	m.home = newHomeView()
	m.history = historyView{}
	m.settings = settingsView{}
	m.prev = screenHome
	m.setStatus("App reset", components.LevelSuccess)
	return m, m.loadPrefsCmd()
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewSettings() string {
	t := m.theme
	p := m.prefs.Profile

	item := func(i int, label, value string) string {
		marker := "  "
		style := t.Body
		if m.settings.cursor == i {
			marker = t.Selected.Render("> ")
			style = t.Selected
		}
		line := marker + style.Render(label)
		if value != "" {
			line += "  " + t.Accent.Render(value)
		}
		return line
	}

	var b strings.Builder
	b.WriteString(t.Title.Render("Account") + "\n")
	b.WriteString("  " + t.Label.Render("Gender ") + t.Body.Render(p.Gender.DisplayName()) + "\n")
	b.WriteString("  " + t.Label.Render("Age    ") + t.Body.Render(fmt.Sprint(p.Age)) + "\n")
	b.WriteString(item(settingProfile, "Edit profile", "") + "\n\n")

	b.WriteString(t.Title.Render("Preferences") + "\n")
	b.WriteString(item(settingLanguage, "Language", "< "+p.PreferredLanguage.DisplayName()+" >") + "\n")
	b.WriteString("    " + t.Muted.Render(p.PreferredLanguage.Example()) + "\n\n")

	b.WriteString(t.Title.Render("Data") + "\n")
	b.WriteString(item(settingClearHistory, "Clear chat history", "") + "\n")
	b.WriteString(item(settingResetApp, "Reset app", ""))
	return b.String()
}
