// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"errors"
	"fmt"
)

// Default messages when the backend reports failure without a reason.
const (
	DefaultGenerateError = "Failed to generate comment"
	DefaultContinueError = "Failed to continue conversation"
)

// ErrNotConfigured is returned before any request when no API key is set.
var ErrNotConfigured = errors.New("backend API key not configured")

// APIError is a well-formed envelope with success=false.
type APIError struct {
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// NetworkError covers transport failures, timeouts, non-2xx statuses and
// bodies that are not a valid envelope.
type NetworkError struct {
	Op     string // "generate-comment" or "continue-conversation"
	Status int    // HTTP status, 0 when no response arrived
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "Network error"
	}
	return "Network error: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// statusError is the cause of a NetworkError for non-2xx responses.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	if e.message == "" {
		return fmt.Sprintf("HTTP %d", e.status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.status, e.message)
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is or wraps an *APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
