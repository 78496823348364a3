// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/chatguru/chatguru-tui/internal/util"
)

// TitleMaxRunes is the length at which chat titles are cut.
const TitleMaxRunes = 40

// DeriveTitle picks a title for a new chat: the post text if present,
// otherwise the AI comment, otherwise a label based on whether an image
// was attached.
func DeriveTitle(postText, aiComment string, hasImage bool) string {
	if t := strings.TrimSpace(postText); t != "" {
		return clipTitle(t)
	}
	if t := strings.TrimSpace(aiComment); t != "" {
		return clipTitle(t)
	}
	if hasImage {
		return "Image Chat"
	}
	return "New Chat"
}

func clipTitle(s string) string {
	s = norm.NFC.String(s)
	if util.RuneLen(s) <= TitleMaxRunes {
		return s
	}
	return strings.TrimSpace(util.CutRunes(s, TitleMaxRunes)) + "..."
}
