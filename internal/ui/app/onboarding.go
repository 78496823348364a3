// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type onboardingPage struct {
	title string
	body  string
}

var onboardingPages = []onboardingPage{
	{
		title: "Smart AI Comments",
		body:  "Paste what a post says, point at a screenshot, or both.\nChatGuru writes a comment that fits it.",
	},
	{
		title: "Multiple Styles",
		body:  "Pick one tone or blend several: friendly, flirty, funny,\nthoughtful, poetic, complimentary or romantic.",
	},
	{
		title: "Multi-Language Support",
		body:  "Comments in English, Hinglish, Hindi or Bengali.\nChange the language any time from Settings.",
	},
}

type onboardingView struct {
	page int
}

func newOnboardingView() onboardingView {
	return onboardingView{}
}

func (v onboardingView) last() bool {
	return v.page == len(onboardingPages)-1
}

// =============================================================================
// UPDATE
// =============================================================================

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Submit):
		if m.onboarding.last() {
			return m, m.completeOnboardingCmd()
		}
		m.onboarding.page++
	case key.Matches(msg, m.keys.Left):
		if m.onboarding.page > 0 {
			m.onboarding.page--
		}
	case msg.String() == "s":
		return m, m.completeOnboardingCmd()
	}
	return m, nil
}

func (m Model) handleOnboardingDone(msg onboardingDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.setError("Could not save onboarding", msg.Err)
		return m, nil
	}
	m.prefs.OnboardingCompleted = true
	return m.route()
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewOnboarding() string {
	p := onboardingPages[m.onboarding.page]
	t := m.theme

	dots := make([]string, len(onboardingPages))
	for i := range onboardingPages {
		if i == m.onboarding.page {
			dots[i] = t.Selected.Render("●")
		} else {
			dots[i] = t.Muted.Render("○")
		}
	}

	next := "next"
	if m.onboarding.last() {
		next = "get started"
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(t.Body.Render(p.body))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(dots, " "))
	b.WriteString("\n\n")
	b.WriteString(t.KeyHint.Render("Enter") + t.KeyDesc.Render(" "+next+"   "))
	b.WriteString(t.KeyHint.Render("s") + t.KeyDesc.Render(" skip"))
	return t.Panel.Width(maxWidth(m.width-4, 70)).Render(b.String())
}

func maxWidth(avail, limit int) int {
	if avail > limit {
		return limit
	}
	if avail < 20 {
		return 20
	}
	return avail
}
