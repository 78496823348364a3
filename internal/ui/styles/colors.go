// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chatguru/chatguru-tui/internal/model"
)

// =============================================================================
// NEON ACCENTS
// =============================================================================

var NeonPink = lipgloss.AdaptiveColor{Light: "#C2008F", Dark: "#FF00D5"}
var NeonPurple = lipgloss.AdaptiveColor{Light: "#7B2CBF", Dark: "#9D4EDD"}
var NeonBlue = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#3A86FF"}
var NeonCyan = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#06FFA5"}
var NeonOrange = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FFB627"}
var NeonRed = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#FF4D6D"}
var Magenta = lipgloss.AdaptiveColor{Light: "#BE0057", Dark: "#FF006E"}
var Violet = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#8B5CF6"}
var Gold = lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FBBF24"}
var InfoBlue = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#4CC9F0"}

// =============================================================================
// SURFACES AND TEXT
// =============================================================================

var Background = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0A0A0F"}
var Surface = lipgloss.AdaptiveColor{Light: "#F5F5F7", Dark: "#14141F"}
var Card = lipgloss.AdaptiveColor{Light: "#EDEDF2", Dark: "#1C1C2B"}
var Border = lipgloss.AdaptiveColor{Light: "#D4D4DC", Dark: "#33334A"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#111118", Dark: "#FFFFFF"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#4A4A5A", Dark: "#B8B8C7"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#8A8A99", Dark: "#6E6E80"}
var TextDisabled = lipgloss.AdaptiveColor{Light: "#B0B0BC", Dark: "#4A4A5A"}

// =============================================================================
// SEMANTIC
// =============================================================================

var Success = NeonCyan
var Error = NeonRed
var Warning = NeonOrange
var Info = InfoBlue

// =============================================================================
// TONE ACCENTS
// =============================================================================

var toneColors = map[model.Tone]lipgloss.AdaptiveColor{
	model.ToneFriend:      NeonCyan,
	model.ToneFlirty:      NeonPink,
	model.ToneFunny:       NeonOrange,
	model.ToneIntelligent: NeonPurple,
	model.TonePoetic:      Violet,
	model.ToneCompliment:  Gold,
	model.ToneRomantic:    Magenta,
}

// ToneColor returns the accent for a tone; unknown tones get TextSecondary.
func ToneColor(t model.Tone) lipgloss.AdaptiveColor {
	if c, ok := toneColors[t]; ok {
		return c
	}
	return TextSecondary
}
