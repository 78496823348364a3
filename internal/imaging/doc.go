// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imaging turns a user-supplied image reference into the base64
// JPEG payload the backend expects.
package imaging
