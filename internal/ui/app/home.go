// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/config"
	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/components"
)

const (
	homeFieldPost = iota
	homeFieldImage
	homeFieldTones
	homeFieldLanguage
	homeFieldCount
)

type homeView struct {
	post  textinput.Model
	image textinput.Model
	tones components.TonePicker
	lang  int
	focus int
}

func newHomeView() homeView {
	post := textinput.New()
	post.Placeholder = "What does the post say?"
	post.CharLimit = 2000
	post.Prompt = ""

	image := textinput.New()
	image.Placeholder = "~/Pictures/screenshot.png (optional)"
	image.CharLimit = 1024
	image.Prompt = ""

	return homeView{
		post:  post,
		image: image,
		tones: components.NewTonePicker(nil),
	}
}

func (v homeView) language() model.Language {
	return model.AllLanguages[v.lang]
}

func (v *homeView) setLanguage(l model.Language) {
	v.lang = indexOf(model.AllLanguages, l)
}

// focusCurrent focuses the text input under focus, if any.
func (v *homeView) focusCurrent() tea.Cmd {
	v.post.Blur()
	v.image.Blur()
	switch v.focus {
	case homeFieldPost:
		return v.post.Focus()
	case homeFieldImage:
		return v.image.Focus()
	}
	return nil
}

func (v *homeView) setFocus(f int) tea.Cmd {
	v.focus = (f + homeFieldCount) % homeFieldCount
	return v.focusCurrent()
}

func (v *homeView) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case homeFieldPost:
		v.post, cmd = v.post.Update(msg)
	case homeFieldImage:
		v.image, cmd = v.image.Update(msg)
	}
	return cmd
}

// reset clears the form after a successful generate. Tones and language
// are kept.
func (v *homeView) reset() {
	v.post.Reset()
	v.image.Reset()
	v.focus = homeFieldPost
}

// =============================================================================
// UPDATE
// =============================================================================

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.home
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitGenerate()
	case key.Matches(msg, m.keys.NextField):
		cmd := v.setFocus(v.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := v.setFocus(v.focus - 1)
		return m, cmd
	}

	switch v.focus {
	case homeFieldTones:
		switch {
		case key.Matches(msg, m.keys.Left):
			v.tones.Move(-1)
		case key.Matches(msg, m.keys.Right):
			v.tones.Move(1)
		case msg.String() == " ":
			v.tones.ToggleCursor()
		default:
			v.tones.HandleDigit(msg.String())
		}
		return m, nil
	case homeFieldLanguage:
		switch {
		case key.Matches(msg, m.keys.Left):
			v.lang = cycle(v.lang, -1, len(model.AllLanguages))
		case key.Matches(msg, m.keys.Right):
			v.lang = cycle(v.lang, 1, len(model.AllLanguages))
		}
		return m, nil
	}
	cmd := v.updateInput(msg)
	return m, cmd
}

func (m Model) submitGenerate() (tea.Model, tea.Cmd) {
	if m.busy() {
		m.setStatus("Please wait for the current comment", components.LevelInfo)
		return m, nil
	}
	text := strings.TrimSpace(m.home.post.Value())
	image := strings.TrimSpace(m.home.image.Value())
	if text == "" && image == "" {
		m.setStatus("Add the post text or an image path first", components.LevelError)
		return m, nil
	}
	if image != "" {
		image = config.ExpandPath(image)
	}

	m.pending = true
	return m, m.generateCmd(conversation.GenerateInput{
		ImageRef: image,
		Text:     text,
		Tones:    m.home.tones.Selected(),
		Language: m.home.language(),
	})
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewHome() string {
	t := m.theme
	v := m.home

	label := func(i int, s string) string {
		if v.focus == i {
			return t.Selected.Render("> " + s)
		}
		return t.Label.Render("  " + s)
	}

	lang := v.language()
	langValue := t.Body.Render(lang.DisplayName())
	if v.focus == homeFieldLanguage {
		langValue = t.Accent.Render("< " + lang.DisplayName() + " >")
	}

	var b strings.Builder
	b.WriteString(label(homeFieldPost, "Post text") + "\n  " + v.post.View() + "\n\n")
	b.WriteString(label(homeFieldImage, "Screenshot") + "\n  " + v.image.View() + "\n\n")
	b.WriteString(label(homeFieldTones, "Tones") + "\n  " + v.tones.View(t, v.focus == homeFieldTones) + "\n\n")
	b.WriteString(label(homeFieldLanguage, "Language") + "  " + langValue + "  " + t.Muted.Render(lang.Example()))
	return b.String()
}
