// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders generated comments with glamour. Renderers are cached
// per wrap width. A disabled or failing renderer returns the input.
type Markdown struct {
	style     string
	enabled   bool
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown returns a renderer for the given glamour standard style
// ("dark", "light", "notty"); an empty style means auto-detect.
func NewMarkdown(style string, enabled bool) *Markdown {
	return &Markdown{
		style:     style,
		enabled:   enabled,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render formats text for a column of the given width.
func (m *Markdown) Render(text string, width int) string {
	if m == nil || !m.enabled || strings.TrimSpace(text) == "" {
		return text
	}
	if width < 20 {
		width = 20
	}

	r, ok := m.renderers[width]
	if !ok {
		opt := glamour.WithAutoStyle()
		if m.style != "" {
			opt = glamour.WithStandardStyle(m.style)
		}
		var err error
		r, err = glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
		if err != nil {
			log.Printf("[ui] markdown renderer unavailable: %v", err)
			m.enabled = false
			return text
		}
		m.renderers[width] = r
	}

	out, err := r.Render(text)
	if err != nil {
		log.Printf("[ui] markdown render failed: %v", err)
		return text
	}
	return strings.Trim(out, "\n")
}
