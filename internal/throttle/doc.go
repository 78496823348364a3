// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package throttle spaces and serialises outbound AI requests.
//
// A single Throttler is shared by the whole process. Every request passes
// through it, so at most one request is in flight and consecutive
// requests start at least MinInterval apart, whichever chat or flow
// issued them.
//
// # Usage
//
//	t := throttle.New(6 * time.Second)
//	resp, err := throttle.Do(ctx, t, func(ctx context.Context) (*cloud.CommentResponse, error) {
//	    return client.GenerateComment(ctx, req)
//	})
//
// Tests inject a fake Clock with WithClock so no real time passes.
package throttle
