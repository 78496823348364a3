// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatguru.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - BackendConfig: comment backend URL, credential and timeouts
//   - ThrottleConfig: minimum spacing between backend requests
//   - StorageConfig: chat database and settings file locations
//   - UIConfig: terminal UI preferences
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATGURU_*)
//   - ~/.chatguru/config.toml
//   - ~/.chatguru/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := cloud.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIKey)
package config
