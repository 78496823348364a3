// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
)

// Decoded is the result of decoding a stored value. Decoding never fails:
// when the input is unreadable Value holds the documented default and
// Fallback is true.
type Decoded[T any] struct {
	Value    T
	Fallback bool
}

// ParseLanguage decodes a stored language name, falling back to English.
func ParseLanguage(s string) Decoded[Language] {
	l := Language(strings.TrimSpace(s))
	if l.Valid() {
		return Decoded[Language]{Value: l}
	}
	return Decoded[Language]{Value: DefaultLanguage, Fallback: true}
}

// ParseGender decodes a stored gender name, falling back to
// "prefer not to say".
func ParseGender(s string) Decoded[Gender] {
	g := Gender(strings.TrimSpace(s))
	if g.Valid() {
		return Decoded[Gender]{Value: g}
	}
	return Decoded[Gender]{Value: DefaultGender, Fallback: true}
}

// ParseTones decodes a comma-joined list of tone names. Unknown names are
// dropped; if nothing valid remains the result is [FRIEND] with Fallback
// set. Duplicates are removed, keeping the first occurrence.
func ParseTones(s string) Decoded[[]Tone] {
	seen := make(map[Tone]bool)
	var tones []Tone
	dropped := false
	for _, part := range strings.Split(s, ",") {
		t := Tone(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if !t.Valid() {
			dropped = true
			continue
		}
		if !seen[t] {
			seen[t] = true
			tones = append(tones, t)
		}
	}
	if len(tones) == 0 {
		return Decoded[[]Tone]{Value: append([]Tone(nil), DefaultTones...), Fallback: true}
	}
	return Decoded[[]Tone]{Value: tones, Fallback: dropped}
}

// ParseAge decodes a stored age. Values that are not integers or fall
// outside [MinAge, MaxAge] decode to DefaultAge.
func ParseAge(s string) Decoded[int] {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !ValidAge(age) {
		return Decoded[int]{Value: DefaultAge, Fallback: true}
	}
	return Decoded[int]{Value: age}
}
