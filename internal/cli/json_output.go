// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for --json.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONResponse is the response envelope for every command in --json mode.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the indented response to w.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// StatusData represents the data returned by the status command.
type StatusData struct {
	ConfigPath string            `json:"config_path"`
	Backend    StatusBackendInfo `json:"backend"`
	Storage    StatusStorageInfo `json:"storage"`
	Profile    StatusProfileInfo `json:"profile"`
	Recent     []StatusChatInfo  `json:"recent_chats"`
}

// StatusBackendInfo describes the configured comment backend.
type StatusBackendInfo struct {
	BaseURL        string `json:"base_url"`
	APIKeySet      bool   `json:"api_key_configured"`
	MinIntervalMs  int    `json:"min_interval_ms"`
	ReadTimeoutSec int    `json:"read_timeout_secs"`
	LogBodies      bool   `json:"log_bodies"`
}

// StatusStorageInfo describes local storage.
type StatusStorageInfo struct {
	DatabasePath  string `json:"database_path"`
	DatabaseBytes int64  `json:"database_bytes"`
	SettingsPath  string `json:"settings_path"`
	Chats         int    `json:"chats"`
	Favorites     int    `json:"favorites"`
	Error         string `json:"error,omitempty"`
}

// StatusProfileInfo describes the saved user profile.
type StatusProfileInfo struct {
	OnboardingCompleted   bool   `json:"onboarding_completed"`
	ProfileSetupCompleted bool   `json:"profile_setup_completed"`
	Gender                string `json:"gender"`
	Age                   int    `json:"age"`
	Language              string `json:"language"`
	Error                 string `json:"error,omitempty"`
}

// StatusChatInfo is one row of the recent chats list.
type StatusChatInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Favorite  bool   `json:"favorite"`
	UpdatedAt string `json:"updated_at"`
}

// DoctorData represents the data returned by the doctor command.
type DoctorData struct {
	Checks  []DoctorCheck `json:"checks"`
	Summary DoctorSummary `json:"summary"`
}

// DoctorCheck represents a single health check result.
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "warn", "fail"
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// DoctorSummary contains the summary of health checks.
type DoctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

// ConfigValueData is returned by config get.
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// ResetData is returned by the reset command.
type ResetData struct {
	ChatsDeleted   int  `json:"chats_deleted"`
	ProfileCleared bool `json:"profile_cleared"`
}
