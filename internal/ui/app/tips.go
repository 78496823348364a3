// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "strings"

var tips = []string{
	"Select several tones at once to blend their styles.",
	"Sharp, well-lit screenshots give the best comments.",
	"Keep replying in a chat: earlier turns are sent as context.",
	"Hinglish mixes Hindi and English the way people actually text.",
	"Comments can include emojis and hashtags; keep or trim them.",
	"Star a chat to find it quickly under Favorites.",
	"Tweak a comment in your own words before you post it.",
	"Chats are stored only on this machine.",
}

func (m Model) viewTips() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("Tips") + "\n\n")
	for _, tip := range tips {
		b.WriteString(t.Accent.Render("* ") + t.Body.Render(tip) + "\n")
	}
	b.WriteString("\n" + t.Title.Render("Keys") + "\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n" + t.Muted.Render("Press any key to close"))
	return b.String()
}
