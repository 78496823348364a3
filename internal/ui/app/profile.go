// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatguru/chatguru-tui/internal/ui/components"
	"github.com/chatguru/chatguru-tui/internal/model"
)

const (
	profileFieldGender = iota
	profileFieldAge
	profileFieldLanguage
	profileFieldCount
)

type profileView struct {
	gender       int
	age          textinput.Model
	language     int
	focus        int
	fromSettings bool
}

func newProfileView() profileView {
	age := textinput.New()
	age.Placeholder = strconv.Itoa(model.DefaultAge)
	age.CharLimit = 2
	age.Width = 4
	age.Prompt = ""
	return profileView{age: age}
}

// load fills the form from p.
func (v *profileView) load(p model.UserProfile) {
	v.gender = indexOf(model.AllGenders, p.Gender)
	v.language = indexOf(model.AllLanguages, p.PreferredLanguage)
	v.age.SetValue(strconv.Itoa(p.Age))
	v.focus = profileFieldGender
	v.age.Blur()
}

// build validates the form.
func (v profileView) build() (model.UserProfile, error) {
	age, err := strconv.Atoi(strings.TrimSpace(v.age.Value()))
	if err != nil || !model.ValidAge(age) {
		return model.UserProfile{}, fmt.Errorf("age must be between %d and %d", model.MinAge, model.MaxAge)
	}
	return model.UserProfile{
		Gender:            model.AllGenders[v.gender],
		Age:               age,
		PreferredLanguage: model.AllLanguages[v.language],
	}, nil
}

func (v *profileView) setFocus(f int) tea.Cmd {
	v.focus = (f + profileFieldCount) % profileFieldCount
	if v.focus == profileFieldAge {
		return v.age.Focus()
	}
	v.age.Blur()
	return nil
}

// =============================================================================
// UPDATE
// =============================================================================

func (m Model) openProfile(fromSettings bool) (tea.Model, tea.Cmd) {
	m.profile.load(m.prefs.Profile)
	m.profile.fromSettings = fromSettings
	m.screen = screenProfile
	return m, nil
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.profile
	switch {
	case key.Matches(msg, m.keys.Submit):
		p, err := v.build()
		if err != nil {
			m.setStatus(capitalize(err.Error()), components.LevelError)
			return m, nil
		}
		return m, m.saveProfileCmd(p)
	case key.Matches(msg, m.keys.Back) && v.fromSettings:
		m.screen = screenSettings
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		cmd := v.setFocus(v.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := v.setFocus(v.focus - 1)
		return m, cmd
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		delta := 1
		if key.Matches(msg, m.keys.Left) {
			delta = -1
		}
		switch v.focus {
		case profileFieldGender:
			v.gender = cycle(v.gender, delta, len(model.AllGenders))
			return m, nil
		case profileFieldLanguage:
			v.language = cycle(v.language, delta, len(model.AllLanguages))
			return m, nil
		}
	}

	if v.focus == profileFieldAge {
		if r := msg.Runes; msg.Type == tea.KeyRunes && (len(r) != 1 || r[0] < '0' || r[0] > '9') {
			return m, nil
		}
		var cmd tea.Cmd
		v.age, cmd = v.age.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not save profile", msg.Err)
		return m, nil
	}
	m.prefs.Profile = msg.Profile
	m.prefs.ProfileSetupCompleted = true
	m.home.setLanguage(msg.Profile.PreferredLanguage)
	m.setStatus("Profile saved", components.LevelSuccess)
	m.profile.age.Blur()

	if m.profile.fromSettings {
		m.screen = screenSettings
		return m, nil
	}
	return m.goHome()
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewProfile() string {
	t := m.theme
	v := m.profile

	field := func(i int, label, value string) string {
		marker := "  "
		if v.focus == i {
			marker = t.Selected.Render("> ")
		}
		return marker + t.Label.Width(10).Render(label) + value
	}
	choice := func(s string, focused bool) string {
		if focused {
			return t.Accent.Render("< " + s + " >")
		}
		return t.Body.Render(s)
	}

	lang := model.AllLanguages[v.language]
	var b strings.Builder
	if v.fromSettings {
		b.WriteString(t.Title.Render("Edit profile"))
	} else {
		b.WriteString(t.Title.Render("Tell us about you"))
		b.WriteString("\n" + t.Subtitle.Render("This helps tailor the comments. You can change it later."))
	}
	b.WriteString("\n\n")
	b.WriteString(field(profileFieldGender, "Gender", choice(model.AllGenders[v.gender].DisplayName(), v.focus == profileFieldGender)))
	b.WriteString("\n")
	b.WriteString(field(profileFieldAge, "Age", v.age.View()))
	b.WriteString("\n")
	b.WriteString(field(profileFieldLanguage, "Language", choice(lang.DisplayName(), v.focus == profileFieldLanguage)))
	b.WriteString("\n" + strings.Repeat(" ", 12) + t.Muted.Render(lang.Example()))
	return t.Panel.Width(maxWidth(m.width-4, 70)).Render(b.String())
}

// =============================================================================
// HELPERS
// =============================================================================

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
