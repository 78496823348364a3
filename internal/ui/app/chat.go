// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/config"
	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/components"
	"github.com/chatguru/chatguru-tui/internal/ui/styles"
)

const (
	chatFieldReply = iota
	chatFieldImage
)

// chatView is the open conversation. selected indexes messages and always
// points at an AI message, or is -1.
type chatView struct {
	chat     model.Chat
	messages []model.Message
	selected int
	language model.Language
	tones    []model.Tone

	reply    textinput.Model
	image    textinput.Model
	focus    int
	viewport viewport.Model
	width    int

	moodOpen bool
	mood     components.TonePicker
}

func newChatView() chatView {
	reply := textinput.New()
	reply.Placeholder = "Their reply, or what you want to say next"
	reply.CharLimit = 2000
	reply.Prompt = "> "

	image := textinput.New()
	image.Placeholder = "image path (optional)"
	image.CharLimit = 1024
	image.Prompt = "+ "

	return chatView{
		selected: -1,
		language: model.DefaultLanguage,
		reply:    reply,
		image:    image,
		viewport: viewport.New(defaultWidth, minViewport),
		width:    defaultWidth,
	}
}

// load shows a chat and selects its newest AI message.
func (v *chatView) load(msg chatLoadedMsg) {
	v.chat = msg.Chat
	v.messages = msg.Messages
	v.language = msg.Language
	v.tones = msg.Tones
	v.selected = v.lastAI()
	v.moodOpen = false
}

func (v *chatView) clear() {
	*v = chatView{
		selected: -1,
		language: model.DefaultLanguage,
		reply:    v.reply,
		image:    v.image,
		viewport: v.viewport,
		width:    v.width,
	}
	v.reply.Reset()
	v.image.Reset()
	v.viewport.SetContent("")
}

func (v chatView) lastAI() int {
	for i := len(v.messages) - 1; i >= 0; i-- {
		if !v.messages[i].IsUser {
			return i
		}
	}
	return -1
}

// step moves the selection to the previous (-1) or next (+1) AI message.
func (v *chatView) step(dir int) {
	for i := v.selected + dir; i >= 0 && i < len(v.messages); i += dir {
		if !v.messages[i].IsUser {
			v.selected = i
			return
		}
	}
}

func (v chatView) selectedMessage() (model.Message, bool) {
	if v.selected < 0 || v.selected >= len(v.messages) {
		return model.Message{}, false
	}
	return v.messages[v.selected], true
}

func (v *chatView) resize(width, height int) {
	v.width = width
	v.viewport.Width = width - 2
	v.viewport.Height = height
	v.reply.Width = width - 8
	v.image.Width = width - 8
}

// refresh re-renders the transcript into the viewport.
func (v *chatView) refresh(theme *styles.Theme, md *components.Markdown) {
	var b strings.Builder
	for i, msg := range v.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.Bubble{
			Message:  msg,
			Selected: i == v.selected,
			Width:    v.viewport.Width,
			Markdown: md,
		}.View(theme))
	}
	v.viewport.SetContent(b.String())
	v.viewport.GotoBottom()
}

func (v *chatView) focusCurrent() tea.Cmd {
	v.reply.Blur()
	v.image.Blur()
	if v.focus == chatFieldImage {
		return v.image.Focus()
	}
	return v.reply.Focus()
}

func (v *chatView) updateInput(msg tea.Msg) tea.Cmd {
	if v.moodOpen {
		return nil
	}
	var cmd tea.Cmd
	if v.focus == chatFieldImage {
		v.image, cmd = v.image.Update(msg)
	} else {
		v.reply, cmd = v.reply.Update(msg)
	}
	return cmd
}

// =============================================================================
// LOADING
// =============================================================================

func (m Model) handleChatLoaded(msg chatLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not open chat", msg.Err)
		return m, nil
	}
	m.chat.load(msg)
	m.chat.resize(m.width, m.chatViewportHeight())
	m.chat.refresh(m.theme, m.md)
	m.screen = screenConversation
	cmd := m.chat.focusCurrent()
	return m, cmd
}

func (m Model) handleFlowDone(msg flowDoneMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	if msg.Err != nil {
		m.setStatus(msg.Err.Error(), components.LevelError)
		// A failed continue still stored the user's message.
		if msg.Kind == flowContinue && m.chat.chat.ID != "" {
			return m, m.openChatCmd(m.chat.chat.ID)
		}
		return m, nil
	}
	if msg.Reply.ChatID == "" {
		m.setStatus("Nothing to retry", components.LevelInfo)
		return m, nil
	}
	if msg.Kind == flowGenerate {
		m.home.reset()
	}
	return m, m.openChatCmd(msg.Reply.ChatID)
}

// =============================================================================
// UPDATE
// =============================================================================

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chat.moodOpen {
		return m.updateMood(msg)
	}
	v := &m.chat
	k := m.keys

	switch {
	case key.Matches(msg, k.Back):
		v.reply.Blur()
		v.image.Blur()
		return m.goHome()
	case key.Matches(msg, k.Submit):
		return m.submitContinue()
	case msg.String() == "tab" || msg.String() == "shift+tab":
		v.focus = 1 - v.focus
		cmd := v.focusCurrent()
		return m, cmd
	case key.Matches(msg, k.PrevComment):
		v.step(-1)
		v.refresh(m.theme, m.md)
		return m, nil
	case key.Matches(msg, k.NextComment):
		v.step(1)
		v.refresh(m.theme, m.md)
		return m, nil
	case key.Matches(msg, k.ScrollUp):
		v.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, k.ScrollDown):
		v.viewport.HalfViewDown()
		return m, nil
	case key.Matches(msg, k.Regenerate):
		return m.submitRegenerate()
	case key.Matches(msg, k.Retry):
		return m.submitRetry()
	case key.Matches(msg, k.Copy):
		sel, ok := v.selectedMessage()
		if !ok {
			m.setStatus("No comment to copy", components.LevelInfo)
			return m, nil
		}
		return m, m.copyCmd(sel.Text)
	case key.Matches(msg, k.Mood):
		v.mood = components.NewTonePicker(v.tones)
		v.moodOpen = true
		return m, nil
	case key.Matches(msg, k.Favorite):
		return m, m.toggleFavoriteCmd(v.chat.ID)
	}
	cmd := v.updateInput(msg)
	return m, cmd
}

func (m Model) submitContinue() (tea.Model, tea.Cmd) {
	if m.busy() {
		m.setStatus("Please wait for the current comment", components.LevelInfo)
		return m, nil
	}
	reply := strings.TrimSpace(m.chat.reply.Value())
	image := strings.TrimSpace(m.chat.image.Value())
	if reply == "" && image == "" {
		m.setStatus("Type a reply or add an image", components.LevelError)
		return m, nil
	}
	if image != "" {
		image = config.ExpandPath(image)
	}

	m.chat.reply.Reset()
	m.chat.image.Reset()
	m.pending = true
	return m, m.continueCmd(conversation.ContinueInput{
		ChatID:   m.chat.chat.ID,
		Reply:    reply,
		ImageRef: image,
		Language: m.chat.language,
	})
}

func (m Model) submitRegenerate() (tea.Model, tea.Cmd) {
	if m.busy() {
		m.setStatus("Please wait for the current comment", components.LevelInfo)
		return m, nil
	}
	sel, ok := m.chat.selectedMessage()
	if !ok {
		m.setStatus("Select a comment to regenerate", components.LevelInfo)
		return m, nil
	}
	m.pending = true
	return m, m.regenerateCmd(conversation.RegenerateInput{
		ChatID:    m.chat.chat.ID,
		MessageID: sel.ID,
		Language:  m.chat.language,
	})
}

func (m Model) submitRetry() (tea.Model, tea.Cmd) {
	if m.busy() {
		m.setStatus("Please wait for the current comment", components.LevelInfo)
		return m, nil
	}
	if _, ok := m.svc.LastGeneration(); !ok {
		m.setStatus("Nothing to retry", components.LevelInfo)
		return m, nil
	}
	m.pending = true
	return m, m.retryCmd()
}

func (m Model) updateMood(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.chat
	switch {
	case key.Matches(msg, m.keys.Back):
		v.moodOpen = false
	case key.Matches(msg, m.keys.Submit):
		v.moodOpen = false
		return m, m.saveTonesCmd(v.mood.Selected())
	case key.Matches(msg, m.keys.Left):
		v.mood.Move(-1)
	case key.Matches(msg, m.keys.Right):
		v.mood.Move(1)
	case msg.String() == " ":
		v.mood.ToggleCursor()
	default:
		v.mood.HandleDigit(msg.String())
	}
	return m, nil
}

func (m Model) handleTonesSaved(msg tonesSavedMsg) (tea.Model, tea.Cmd) {
	m.chat.tones = msg.Tones
	if msg.Err != nil {
		m.setError("Could not save mood", msg.Err)
		return m, nil
	}
	m.setStatus("Mood: "+model.JoinToneDisplayNames(msg.Tones), components.LevelSuccess)
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewChat() string {
	t := m.theme
	v := m.chat

	star := ""
	if v.chat.IsFavorite {
		star = t.Favorite.Render("★ ")
	}
	toneNames := make([]string, 0, len(v.tones))
	for _, tone := range v.tones {
		toneNames = append(toneNames, t.ToneChip(tone, true))
	}
	info := star + t.Label.Render("Mood ") + strings.Join(toneNames, " ")

	if v.moodOpen {
		return info + "\n\n" + t.PanelHot.Render(
			t.Title.Render("Change mood")+"\n"+
				v.mood.View(t, true)+"\n"+
				t.Muted.Render("1-7 or space to toggle, Enter to save"))
	}

	var b strings.Builder
	b.WriteString(info + "\n")
	b.WriteString(v.viewport.View() + "\n")
	b.WriteString(v.reply.View() + "\n")
	b.WriteString(v.image.View())
	return b.String()
}
