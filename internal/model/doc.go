// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types for chats, messages and the
// user profile.
//
// # Key Types
//
//   - Chat: a persisted conversation thread with cached summary fields
//   - Message: a single user or AI turn inside a Chat
//   - UserProfile: gender, age and preferred language of the user
//   - Tone, Language, Gender: enumerations with stable internal names
//     (used for storage) and display names (sent to the backend)
//   - Decoded: result of a decode that never fails but may fall back
//
// # Usage
//
// Decode stored values without ever failing:
//
//	lang := model.ParseLanguage(chat.SelectedLanguage)
//	if lang.Fallback {
//	    log.Printf("chat %s: unknown language %q, using %s", chat.ID, chat.SelectedLanguage, lang.Value)
//	}
//
// Derive a chat title:
//
//	title := model.DeriveTitle(postText, comment, imageRef != "")
package model
