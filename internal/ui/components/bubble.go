// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// Bubble renders one conversation message. User messages sit on the right
// and AI comments on the left; the selected AI comment gets a heavy border.
type Bubble struct {
	Message  model.Message
	Selected bool
	Width    int
	Markdown *Markdown
}

// View renders the bubble.
func (b Bubble) View(theme *styles.Theme) string {
	width := maxInt(b.Width*3/4, 20)
	inner := width - 4

	text := b.Message.Text
	if text == "" && b.Message.ImageURI != "" {
		text = model.ImagePlaceholder
	}
	if !b.Message.IsUser {
		text = b.Markdown.Render(text, inner)
	} else if b.Message.ImageURI != "" && b.Message.Text != "" && !b.Message.IsImageOnly() {
		text += "\n" + theme.Muted.Render("+ "+model.ImagePlaceholder)
	}

	stamp := time.UnixMilli(b.Message.Timestamp).Format("15:04")
	head := theme.Speaker.Render(b.Message.Speaker()) + " " + theme.Timestamp.Render(stamp)

	style := theme.AIBubble
	switch {
	case b.Message.IsUser:
		style = theme.UserBubble
	case b.Selected:
		style = theme.AIBubbleActive
	}
	body := style.Width(width).Render(head + "\n" + text)

	if b.Message.IsUser {
		return lipgloss.PlaceHorizontal(maxInt(b.Width, lipgloss.Width(body)), lipgloss.Right, body)
	}
	return body
}
