// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation sequences comment generation for the UI.
//
// The Orchestrator owns the in-memory session (current chat, language,
// tones, last generation parameters) and runs the four flows:
//
//   - Generate: first comment for a post, creating a chat
//   - Continue: user reply in an existing chat
//   - Regenerate: new answer for an earlier AI message
//   - RetryLastGeneration: replay the last Generate into the active chat
//
// Each flow blocks until done and publishes its progress as a State.
// The UI runs flows on their own goroutine and watches Subscribe.
//
// Network calls go through the shared throttle.Throttler. Persistence is
// optimistic in Continue (the user's message is written before the call)
// and deferred everywhere else (rows are written only after success).
package conversation
