// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// TONE
// =============================================================================

// Tone steers the style of a generated comment. Several tones can be
// combined in one request.
type Tone string

const (
	ToneFriend      Tone = "FRIEND"
	ToneFlirty      Tone = "FLIRTY"
	ToneFunny       Tone = "FUNNY"
	ToneIntelligent Tone = "INTELLIGENT"
	TonePoetic      Tone = "POETIC"
	ToneCompliment  Tone = "COMPLIMENT"
	ToneRomantic    Tone = "ROMANTIC"
)

// AllTones lists every tone in display order.
var AllTones = []Tone{
	ToneFriend,
	ToneFlirty,
	ToneFunny,
	ToneIntelligent,
	TonePoetic,
	ToneCompliment,
	ToneRomantic,
}

// DefaultTones is used when nothing valid is stored for a chat.
var DefaultTones = []Tone{ToneFriend}

var toneDisplayNames = map[Tone]string{
	ToneFriend:      "Friend",
	ToneFlirty:      "Flirty",
	ToneFunny:       "Funny",
	ToneIntelligent: "Intelligent",
	TonePoetic:      "Poetic",
	ToneCompliment:  "Compliment",
	ToneRomantic:    "Romantic",
}

// String returns the internal name used for storage.
func (t Tone) String() string {
	return string(t)
}

// DisplayName returns the human-readable name the backend matches on.
func (t Tone) DisplayName() string {
	if name, ok := toneDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	_, ok := toneDisplayNames[t]
	return ok
}

// JoinToneNames joins internal names with "," for storage on a Chat row.
func JoinToneNames(tones []Tone) string {
	names := make([]string, 0, len(tones))
	for _, t := range tones {
		names = append(names, t.String())
	}
	return strings.Join(names, ",")
}

// JoinToneDisplayNames joins display names with ", " for the wire.
func JoinToneDisplayNames(tones []Tone) string {
	names := make([]string, 0, len(tones))
	for _, t := range tones {
		names = append(names, t.DisplayName())
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// LANGUAGE
// =============================================================================

// Language is the language the comment is written in.
type Language string

const (
	LanguageEnglish  Language = "ENGLISH"
	LanguageHinglish Language = "HINGLISH"
	LanguageHindi    Language = "HINDI"
	LanguageBengali  Language = "BENGALI"
)

// DefaultLanguage is used for new profiles and unreadable stored values.
const DefaultLanguage = LanguageEnglish

// AllLanguages lists every language in display order.
var AllLanguages = []Language{
	LanguageEnglish,
	LanguageHinglish,
	LanguageHindi,
	LanguageBengali,
}

type languageInfo struct {
	display string
	code    string
	example string
}

var languages = map[Language]languageInfo{
	LanguageEnglish:  {"English", "en", "Hey! Looking great!"},
	LanguageHinglish: {"Hinglish", "hi-en", "Yaar, tu toh bahut cool lag raha hai!"},
	LanguageHindi:    {"Hindi", "hi", "अरे वाह! बहुत बढ़िया लग रहे हो!"},
	LanguageBengali:  {"Bengali", "bn", "ওয়াও! তোমাকে খুব সুন্দর দেখাচ্ছে!"},
}

// String returns the internal name used for storage.
func (l Language) String() string {
	return string(l)
}

// DisplayName returns the name sent to the backend.
func (l Language) DisplayName() string {
	if info, ok := languages[l]; ok {
		return info.display
	}
	return string(l)
}

// Code returns the short language code, e.g. "hi-en".
func (l Language) Code() string {
	return languages[l].code
}

// Example returns a sample comment shown next to the language picker.
func (l Language) Example() string {
	return languages[l].example
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	_, ok := languages[l]
	return ok
}

// =============================================================================
// GENDER
// =============================================================================

// Gender is part of the user profile and is forwarded to the backend.
type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

// DefaultGender is used for new profiles and unreadable stored values.
const DefaultGender = GenderPreferNotToSay

// AllGenders lists every gender option in display order.
var AllGenders = []Gender{
	GenderMale,
	GenderFemale,
	GenderOther,
	GenderPreferNotToSay,
}

var genderDisplayNames = map[Gender]string{
	GenderMale:           "Male",
	GenderFemale:         "Female",
	GenderOther:          "Other",
	GenderPreferNotToSay: "Prefer not to say",
}

// String returns the internal name used for storage.
func (g Gender) String() string {
	return string(g)
}

// DisplayName returns the name sent to the backend.
func (g Gender) DisplayName() string {
	if name, ok := genderDisplayNames[g]; ok {
		return name
	}
	return string(g)
}

// Valid reports whether g is a known gender option.
func (g Gender) Valid() bool {
	_, ok := genderDisplayNames[g]
	return ok
}
