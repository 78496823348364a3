// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/ui/styles"
)

// =============================================================================
// TONE PICKER
// =============================================================================

// TonePicker is a multi-select over model.AllTones. At least one tone is
// always selected.
type TonePicker struct {
	cursor   int
	selected map[model.Tone]bool
}

// NewTonePicker starts with the given tones selected, or the default.
func NewTonePicker(initial []model.Tone) TonePicker {
	p := TonePicker{}
	p.Set(initial)
	return p
}

// Set replaces the selection.
func (p *TonePicker) Set(tones []model.Tone) {
	p.selected = make(map[model.Tone]bool)
	for _, t := range tones {
		if t.Valid() {
			p.selected[t] = true
		}
	}
	if len(p.selected) == 0 {
		for _, t := range model.DefaultTones {
			p.selected[t] = true
		}
	}
}

// Selected returns the chosen tones in display order.
func (p TonePicker) Selected() []model.Tone {
	var out []model.Tone
	for _, t := range model.AllTones {
		if p.selected[t] {
			out = append(out, t)
		}
	}
	return out
}

// Toggle flips tone i (0-based). The last selected tone cannot be cleared.
func (p *TonePicker) Toggle(i int) {
	if i < 0 || i >= len(model.AllTones) {
		return
	}
	t := model.AllTones[i]
	if p.selected[t] && len(p.selected) == 1 {
		return
	}
	if p.selected[t] {
		delete(p.selected, t)
	} else {
		p.selected[t] = true
	}
}

// ToggleCursor flips the tone under the cursor.
func (p *TonePicker) ToggleCursor() { p.Toggle(p.cursor) }

// Move shifts the cursor by delta, wrapping around.
func (p *TonePicker) Move(delta int) {
	n := len(model.AllTones)
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Cursor returns the highlighted index.
func (p TonePicker) Cursor() int { return p.cursor }

// HandleDigit toggles tone "1".."7"; it reports whether s was a tone key.
func (p *TonePicker) HandleDigit(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(model.AllTones) {
		return false
	}
	p.cursor = n - 1
	p.Toggle(n - 1)
	return true
}

// View renders the chips on one line; focused shows the cursor.
func (p TonePicker) View(theme *styles.Theme, focused bool) string {
	parts := make([]string, 0, len(model.AllTones))
	for i, t := range model.AllTones {
		chip := theme.Muted.Render(strconv.Itoa(i+1)) + theme.ToneChip(t, p.selected[t])
		if focused && i == p.cursor {
			chip = theme.Selected.Render(">") + chip
		} else {
			chip = " " + chip
		}
		parts = append(parts, chip)
	}
	return strings.Join(parts, " ")
}
