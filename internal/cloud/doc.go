// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud is the HTTP client for the comment-generation backend.
//
// The backend exposes two JSON endpoints:
//
//   - POST {base}/generate-comment: first comment for an image and/or post text
//   - POST {base}/continue-conversation: follow-up reply with prior history
//
// Both return the same envelope. A well-formed envelope with success=false
// becomes an *APIError; anything else that goes wrong between the request
// leaving and a valid envelope arriving becomes a *NetworkError.
//
// The client does not throttle or retry. Callers wrap it with the
// process-wide throttler.
package cloud
