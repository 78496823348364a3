// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns ValidateErrors listing
// every problem found, or nil. A missing API key is not an error here; the
// backend client reports it on first use.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Backend
	if u, err := url.Parse(c.Backend.BaseURL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "backend.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[/path]", c.Backend.BaseURL),
		})
	}

	timeouts := []struct {
		field string
		secs  int
	}{
		{"backend.connect_timeout_secs", c.Backend.ConnectTimeoutSecs},
		{"backend.read_timeout_secs", c.Backend.ReadTimeoutSecs},
		{"backend.write_timeout_secs", c.Backend.WriteTimeoutSecs},
	}
	for _, tt := range timeouts {
		if tt.secs < 1 || tt.secs > maxTimeoutSecs {
			errs = append(errs, ValidationError{
				Field:   tt.field,
				Message: fmt.Sprintf("must be between 1 and %d seconds, got %d", maxTimeoutSecs, tt.secs),
			})
		}
	}

	// Throttle
	if c.Throttle.MinIntervalMs < 0 || c.Throttle.MinIntervalMs > maxMinIntervalMs {
		errs = append(errs, ValidationError{
			Field:   "throttle.min_interval_ms",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", maxMinIntervalMs, c.Throttle.MinIntervalMs),
		})
	}

	// Storage
	if strings.TrimSpace(c.Storage.DatabasePath) == "" {
		errs = append(errs, ValidationError{Field: "storage.database_path", Message: "cannot be empty"})
	}
	if strings.TrimSpace(c.Storage.SettingsPath) == "" {
		errs = append(errs, ValidationError{Field: "storage.settings_path", Message: "cannot be empty"})
	}
	if c.Storage.DatabasePath != "" && c.Storage.DatabasePath == c.Storage.SettingsPath {
		errs = append(errs, ValidationError{
			Field:   "storage.settings_path",
			Message: "must differ from storage.database_path",
		})
	}

	// UI
	if !slices.Contains(ValidThemes, strings.ToLower(c.UI.Theme)) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: %s", c.UI.Theme, strings.Join(ValidThemes, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
