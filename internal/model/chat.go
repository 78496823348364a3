// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// ImagePlaceholder is stored as the text of a user message that only
// carries an image.
const ImagePlaceholder = "[Image]"

// Chat is a persisted conversation thread. LastMessage and Timestamp are
// a denormalised cache of the newest message.
type Chat struct {
	ID               string
	Title            string
	ScreenshotURI    string
	PostText         string
	LastMessage      string
	Timestamp        int64 // epoch millis
	IsFavorite       bool
	InitialImageURI  string
	SelectedLanguage string // Language name
	SelectedTones    string // comma-joined Tone names
}

// UpdatedAt returns Timestamp as a time.Time.
func (c Chat) UpdatedAt() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Message is a single turn in a chat. Messages are never mutated.
type Message struct {
	ID        string
	ChatID    string
	Text      string
	IsUser    bool
	Timestamp int64 // epoch millis
	ImageURI  string
}

// Speaker returns the prefix used when the message is replayed as history.
func (m Message) Speaker() string {
	if m.IsUser {
		return "User"
	}
	return "AI"
}

// HistoryLine renders the message as "User: <text>" or "AI: <text>".
func (m Message) HistoryLine() string {
	return m.Speaker() + ": " + m.Text
}

// IsImageOnly reports whether a user message carries only an image.
func (m Message) IsImageOnly() bool {
	return m.IsUser && m.Text == ImagePlaceholder
}

// =============================================================================
// USER PROFILE
// =============================================================================

const (
	MinAge     = 12
	MaxAge     = 99
	DefaultAge = 25
)

// UserProfile describes the user; gender and age are forwarded to the
// backend with every generate request.
type UserProfile struct {
	Gender            Gender
	Age               int
	PreferredLanguage Language
}

// DefaultProfile returns the profile used before setup is completed.
func DefaultProfile() UserProfile {
	return UserProfile{
		Gender:            DefaultGender,
		Age:               DefaultAge,
		PreferredLanguage: DefaultLanguage,
	}
}

// ValidAge reports whether age is within the accepted range.
func ValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}
