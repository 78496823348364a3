// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the chatguru terminal UI: a single Bubble Tea model that
// routes between the onboarding, profile, home, conversation, history and
// settings screens.
//
// The model talks to the conversation layer only through Service. Every
// call that can block runs inside a tea.Cmd and comes back as one of the
// *Msg types in messages.go. Orchestrator state arrives on a subscription
// channel that is re-armed after each delivery, and flow triggers are
// ignored while that state is busy.
package app
