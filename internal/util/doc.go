// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across chatguru.
//
// # Key Functions
//
// Text:
//   - CutRunes: rune-safe prefix without ellipsis
//   - TruncateWidth: display-width truncation for list rows
//   - SingleLine: collapse newlines for previews
//
// Files:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	row := util.TruncateWidth(util.SingleLine(chat.LastMessage), 48)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
