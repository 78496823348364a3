// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chats and their messages in SQLite.
//
// The database lives at ~/.chatguru/chatguru.db by default and uses the
// pure-Go modernc.org/sqlite driver, so no cgo is required.
//
// # Tables
//
//   - chats: one row per conversation, with a cached LastMessage/Timestamp
//   - messages: one row per turn, ordered by timestamp then insertion order
//
// chat_id is deliberately not a foreign key; DeleteChat and DeleteAllChats
// remove messages explicitly inside the same transaction.
//
// # Usage
//
//	store, err := storage.Open(ctx, path)
//	if err != nil { ... }
//	defer store.Close()
//
//	chats, err := store.ListChats(ctx)
package storage
