// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/components"
	"github.com/chatguru/chatguru-tui/internal/util"
)

type historyView struct {
	favorites bool
	chats     []model.Chat
	cursor    int
}

func (v historyView) current() (model.Chat, bool) {
	if v.cursor < 0 || v.cursor >= len(v.chats) {
		return model.Chat{}, false
	}
	return v.chats[v.cursor], true
}

// =============================================================================
// UPDATE
// =============================================================================

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not load history", msg.Err)
		return m, nil
	}
	if msg.Favorites != m.history.favorites {
		return m, nil
	}
	m.history.chats = msg.Chats
	if m.history.cursor >= len(msg.Chats) {
		m.history.cursor = len(msg.Chats) - 1
	}
	if m.history.cursor < 0 {
		m.history.cursor = 0
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.history
	k := m.keys
	switch {
	case key.Matches(msg, k.Back):
		return m.leaveOverlayScreen()
	case key.Matches(msg, k.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, k.Down):
		if v.cursor < len(v.chats)-1 {
			v.cursor++
		}
	case key.Matches(msg, k.Tab):
		v.cursor = 0
		return m.openHistory(!v.favorites)
	case key.Matches(msg, k.Open):
		if c, ok := v.current(); ok {
			return m, m.openChatCmd(c.ID)
		}
	case key.Matches(msg, k.ToggleFav):
		if c, ok := v.current(); ok {
			return m, m.toggleFavoriteCmd(c.ID)
		}
	case key.Matches(msg, k.Delete):
		if c, ok := v.current(); ok {
			m.confirm = &confirmDialog{
				prompt: "Delete \"" + util.TruncateWidth(c.Title, 40) + "\"?",
				onYes:  m.deleteChatCmd(c.ID),
			}
		}
	case key.Matches(msg, k.DeleteAll):
		if len(v.chats) > 0 {
			m.confirm = &confirmDialog{
				prompt: "Delete every chat? This cannot be undone.",
				onYes:  m.deleteAllChatsCmd(),
			}
		}
	}
	return m, nil
}

// leaveOverlayScreen returns from history or settings.
func (m Model) leaveOverlayScreen() (tea.Model, tea.Cmd) {
	if m.prev == screenConversation && m.chat.chat.ID != "" {
		m.screen = screenConversation
		cmd := m.chat.focusCurrent()
		return m, cmd
	}
	return m.goHome()
}

func (m Model) handleFavoriteToggled(msg favoriteToggledMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not update favorite", msg.Err)
		return m, nil
	}
	if m.chat.chat.ID == msg.ChatID {
		m.chat.chat.IsFavorite = msg.Favorite
	}
	if msg.Favorite {
		m.setStatus("Added to favorites", components.LevelSuccess)
	} else {
		m.setStatus("Removed from favorites", components.LevelSuccess)
	}
	if m.screen == screenHistory {
		return m, m.loadHistoryCmd(m.history.favorites)
	}
	return m, nil
}

func (m Model) handleChatDeleted(msg chatDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not delete chat", msg.Err)
		return m, nil
	}
	if m.chat.chat.ID == msg.ChatID {
		m.chat.clear()
	}
	m.setStatus("Chat deleted", components.LevelSuccess)
	if m.screen == screenHistory {
		return m, m.loadHistoryCmd(m.history.favorites)
	}
	return m, nil
}

func (m Model) handleAllChatsDeleted(msg allChatsDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not clear history", msg.Err)
		return m, nil
	}
	m.chat.clear()
	m.history.chats = nil
	m.history.cursor = 0
	if m.prev == screenConversation {
		m.prev = screenHome
	}
	m.setStatus("Chat history cleared", components.LevelSuccess)
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewHistory() string {
	t := m.theme
	v := m.history

	all, favs := t.Selected.Render("All"), t.Muted.Render("Favorites")
	if v.favorites {
		all, favs = t.Muted.Render("All"), t.Selected.Render("Favorites")
	}
	var b strings.Builder
	b.WriteString(all + t.Muted.Render("  |  ") + favs + "\n\n")

	if len(v.chats) == 0 {
		if v.favorites {
			b.WriteString(t.Muted.Render("No favorites yet. Press f on a chat to pin it here."))
		} else {
			b.WriteString(t.Muted.Render("No chats yet. Generate your first comment from the home screen."))
		}
		return b.String()
	}

	now := m.now()
	width := m.width - 4
	rows := m.listRows()
	first := firstVisible(len(v.chats), v.cursor, rows)
	for i, c := range visibleWindow(v.chats, v.cursor, rows) {
		b.WriteString(m.historyRow(c, first+i == v.cursor, width, now))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) historyRow(c model.Chat, selected bool, width int, now time.Time) string {
	t := m.theme

	marker := "  "
	if selected {
		marker = t.Selected.Render("> ")
	}
	star := "  "
	if c.IsFavorite {
		star = t.Favorite.Render("★ ")
	}
	when := components.RelativeTime(c.UpdatedAt(), now)

	titleWidth := width - 4 - runewidth.StringWidth(when) - 2
	if titleWidth < 8 {
		titleWidth = 8
	}
	title := util.TruncateWidth(util.SingleLine(c.Title), titleWidth)
	pad := titleWidth - runewidth.StringWidth(title)
	if pad < 0 {
		pad = 0
	}

	titleStyle := t.Body
	if selected {
		titleStyle = t.Selected
	}
	line := marker + star + titleStyle.Render(title) + strings.Repeat(" ", pad) + "  " + t.Timestamp.Render(when)
	preview := "    " + t.Muted.Render(util.TruncateWidth(util.SingleLine(c.LastMessage), maxInt(width-4, 8)))
	return line + "\n" + preview
}

// listRows is how many two-line rows fit on screen.
func (m Model) listRows() int {
	rows := (m.height - 8) / 2
	if rows < 1 {
		return 1
	}
	return rows
}

func firstVisible(n, cursor, rows int) int {
	if n <= rows || cursor < rows {
		return 0
	}
	if cursor >= n {
		cursor = n - 1
	}
	return cursor - rows + 1
}

func visibleWindow(chats []model.Chat, cursor, rows int) []model.Chat {
	start := firstVisible(len(chats), cursor, rows)
	end := start + rows
	if end > len(chats) {
		end = len(chats)
	}
	return chats[start:end]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
