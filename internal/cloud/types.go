// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GenerateCommentRequest is the body of POST /generate-comment.
// Tone, Language and Gender carry display names, not enum names.
type GenerateCommentRequest struct {
	Text        *string `json:"text,omitempty"`
	Tone        string  `json:"tone"`
	Language    string  `json:"language"`
	Gender      string  `json:"gender"`
	Age         int     `json:"age"`
	ImageBase64 string  `json:"imageBase64,omitempty"`
}

// ContinueConversationRequest is the body of POST /continue-conversation.
// History is a JSON-encoded array of "User: ..." / "AI: ..." strings.
type ContinueConversationRequest struct {
	ChatID    string `json:"chatId,omitempty"`
	UserReply string `json:"userReply"`
	History   string `json:"history"`
	Language  string `json:"language"`
}

// CommentResponse is the envelope returned by both endpoints.
type CommentResponse struct {
	Success bool   `json:"success"`
	Comment string `json:"comment"`
	ChatID  string `json:"chatId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OptionalText returns nil for blank text so the field is omitted.
func OptionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// EncodeHistory renders history lines as the JSON array string carried
// in ContinueConversationRequest.History.
func EncodeHistory(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(b), nil
}

// redacted returns a copy safe for the diagnostic log.
func (r GenerateCommentRequest) redacted() GenerateCommentRequest {
	if r.ImageBase64 != "" {
		r.ImageBase64 = fmt.Sprintf("<%d bytes elided>", len(r.ImageBase64))
	}
	return r
}
