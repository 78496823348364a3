// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chatguru/chatguru-tui/internal/ui/styles"
	"github.com/chatguru/chatguru-tui/internal/util"
)

// Brand is the name shown at the top left of every screen.
const Brand = "ChatGuru"

// Header is the one-line title bar: brand, screen title and a right-aligned
// badge such as the active language.
type Header struct {
	Title string
	Badge string
	Width int
}

// View renders the header to Width columns. Long titles are truncated.
func (h Header) View(theme *styles.Theme) string {
	left := theme.Brand.Render(Brand)
	right := ""
	if h.Badge != "" {
		right = theme.Accent.Render(h.Badge)
	}

	avail := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	title := ""
	if h.Title != "" && avail > 3 {
		title = theme.Subtitle.Render(util.TruncateWidth(util.SingleLine(h.Title), avail))
	}

	line := left
	if title != "" {
		line += "  " + title
	}
	gap := h.Width - lipgloss.Width(line) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line += strings.Repeat(" ", gap) + right

	return theme.Header.Width(maxInt(h.Width, 1)).Render(line)
}
