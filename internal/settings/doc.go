// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings stores onboarding flags and the user profile in a
// small bbolt key-value file.
//
// Every key is decoded independently. A missing or unreadable value falls
// back to its default and is logged, so a corrupt entry never blocks
// startup.
package settings
