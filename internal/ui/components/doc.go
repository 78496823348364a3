// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable view pieces of the chatguru TUI:
// header, status bar, spinner, tone chips, message bubbles and the
// markdown renderer used for generated comments.
//
// Components are plain structs with a View method. Those that animate
// (Spinner) also follow the Bubble Tea Update convention.
package components
