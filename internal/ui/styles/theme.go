// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/chatguru/chatguru-tui/internal/model"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App       lipgloss.Style
	Header    lipgloss.Style
	Brand     lipgloss.Style
	Subtitle  lipgloss.Style
	Panel     lipgloss.Style
	PanelHot  lipgloss.Style
	StatusBar lipgloss.Style

	// ==========================================================================
	// TEXT
	// ==========================================================================

	Title     lipgloss.Style
	Label     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Selected  lipgloss.Style
	Favorite  lipgloss.Style
	KeyHint   lipgloss.Style
	KeyDesc   lipgloss.Style
	ErrorText lipgloss.Style
	OKText    lipgloss.Style
	WarnText  lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble     lipgloss.Style
	AIBubble       lipgloss.Style
	AIBubbleActive lipgloss.Style
	Speaker        lipgloss.Style
	Timestamp      lipgloss.Style
}

// NewTheme creates a theme for mode "dark", "light" or "auto".
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "light":
		isDark = false
	case "dark":
		isDark = true
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(NeonPurple).
		MarginBottom(1)

	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(NeonPink)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.PanelHot = t.Panel.Copy().
		BorderForeground(NeonPink)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Surface).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(NeonPurple)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Accent = lipgloss.NewStyle().
		Foreground(NeonBlue).
		Bold(true)

	t.Selected = lipgloss.NewStyle().
		Foreground(NeonPink).
		Bold(true)

	t.Favorite = lipgloss.NewStyle().
		Foreground(Gold)

	t.KeyHint = lipgloss.NewStyle().
		Foreground(NeonCyan).
		Bold(true)

	t.KeyDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	t.OKText = lipgloss.NewStyle().
		Foreground(Success)

	t.WarnText = lipgloss.NewStyle().
		Foreground(Warning)

	t.UserBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(NeonBlue).
		Foreground(TextPrimary).
		Padding(0, 1).
		MarginLeft(6)

	t.AIBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(NeonPurple).
		Foreground(TextPrimary).
		Padding(0, 1).
		MarginRight(6)

	t.AIBubbleActive = t.AIBubble.Copy().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(NeonPink)

	t.Speaker = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// ToneChip renders a tone name in its accent; selected chips are bold and
// bracketed.
func (t *Theme) ToneChip(tone model.Tone, selected bool) string {
	style := lipgloss.NewStyle().Foreground(ToneColor(tone))
	if selected {
		return style.Bold(true).Render("[" + tone.DisplayName() + "]")
	}
	return lipgloss.NewStyle().Foreground(TextDisabled).Render(" " + tone.DisplayName() + " ")
}
