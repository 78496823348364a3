// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/chatguru/chatguru-tui/internal/ui/styles"
	"github.com/chatguru/chatguru-tui/internal/util"
)

// =============================================================================
// STATUS LEVEL
// =============================================================================

// Level colours the status message.
type Level int

const (
	LevelNone Level = iota
	LevelInfo
	LevelSuccess
	LevelError
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar shows the current status message on the left and key hints
// on the right. Hints that don't fit are dropped from the end.
type StatusBar struct {
	Message string
	Level   Level
	Hints   []key.Binding
	Width   int
}

// View renders the bar to Width columns.
func (s StatusBar) View(theme *styles.Theme) string {
	var hints []string
	for _, b := range s.Hints {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, theme.KeyHint.Render(h.Key)+" "+theme.KeyDesc.Render(h.Desc))
	}

	msg := s.renderMessage(theme)
	budget := s.Width - 2 - lipgloss.Width(msg) - 2
	right := ""
	for _, h := range hints {
		next := right
		if next != "" {
			next += theme.KeyDesc.Render(" | ")
		}
		next += h
		if lipgloss.Width(next) > budget {
			break
		}
		right = next
	}

	gap := s.Width - 2 - lipgloss.Width(msg) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.StatusBar.Width(maxInt(s.Width, 1)).Render(msg + strings.Repeat(" ", gap) + right)
}

func (s StatusBar) renderMessage(theme *styles.Theme) string {
	if s.Message == "" {
		return ""
	}
	text := util.TruncateWidth(util.SingleLine(s.Message), maxInt(s.Width/2, 10))
	switch s.Level {
	case LevelError:
		return theme.ErrorText.Render(text)
	case LevelSuccess:
		return theme.OKText.Render(text)
	case LevelInfo:
		return theme.Accent.Render(text)
	default:
		return theme.Muted.Render(text)
	}
}
