// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-anon-key"

// captured records what the fake backend received.
type captured struct {
	path    string
	headers http.Header
	body    map[string]any
}

func newBackend(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.headers = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, got
}

func TestGenerateComment_Success(t *testing.T) {
	server, got := newBackend(t, http.StatusOK, `{"success":true,"comment":"Looks great!","chatId":"srv-1"}`)
	client := NewClient(server.URL+"/", testKey)

	resp, err := client.GenerateComment(context.Background(), GenerateCommentRequest{
		Text:     OptionalText("Nice sunset"),
		Tone:     "Funny, Flirty",
		Language: "English",
		Gender:   "Prefer not to say",
		Age:      25,
	})

	require.NoError(t, err)
	assert.Equal(t, "Looks great!", resp.Comment)
	assert.Equal(t, "srv-1", resp.ChatID)

	assert.Equal(t, "/generate-comment", got.path)
	assert.Equal(t, testKey, got.headers.Get("apikey"))
	assert.Equal(t, "Bearer "+testKey, got.headers.Get("Authorization"))
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))

	assert.Equal(t, "Nice sunset", got.body["text"])
	assert.Equal(t, "Funny, Flirty", got.body["tone"])
	assert.Equal(t, "English", got.body["language"])
	assert.Equal(t, "Prefer not to say", got.body["gender"])
	assert.EqualValues(t, 25, got.body["age"])
	_, hasImage := got.body["imageBase64"]
	assert.False(t, hasImage)
}

func TestGenerateComment_OmitsBlankText(t *testing.T) {
	server, got := newBackend(t, http.StatusOK, `{"success":true,"comment":"ok"}`)
	client := NewClient(server.URL, testKey)

	_, err := client.GenerateComment(context.Background(), GenerateCommentRequest{
		Text:        OptionalText("   "),
		Tone:        "Friend",
		Language:    "Hindi",
		Gender:      "Female",
		Age:         30,
		ImageBase64: "aGVsbG8=",
	})

	require.NoError(t, err)
	_, hasText := got.body["text"]
	assert.False(t, hasText)
	assert.Equal(t, "aGVsbG8=", got.body["imageBase64"])
}

func TestContinueConversation_Success(t *testing.T) {
	server, got := newBackend(t, http.StatusOK, `{"success":true,"comment":"sure"}`)
	client := NewClient(server.URL, testKey)

	history, err := EncodeHistory([]string{"User: hi", "AI: hello"})
	require.NoError(t, err)

	resp, err := client.ContinueConversation(context.Background(), ContinueConversationRequest{
		ChatID:    "chat-1",
		UserReply: "more please",
		History:   history,
		Language:  "Bengali",
	})

	require.NoError(t, err)
	assert.Equal(t, "sure", resp.Comment)
	assert.Equal(t, "/continue-conversation", got.path)
	assert.Equal(t, "chat-1", got.body["chatId"])
	assert.Equal(t, "more please", got.body["userReply"])
	assert.Equal(t, `["User: hi","AI: hello"]`, got.body["history"])
	assert.Equal(t, "Bengali", got.body["language"])
}

func TestEnvelopeFailure_IsAPIError(t *testing.T) {
	tests := []struct {
		name     string
		response string
		call     func(*Client) error
		want     string
	}{
		{
			name:     "generate with reason",
			response: `{"success":false,"comment":"","error":"quota exceeded"}`,
			call: func(c *Client) error {
				_, err := c.GenerateComment(context.Background(), GenerateCommentRequest{Tone: "Friend"})
				return err
			},
			want: "quota exceeded",
		},
		{
			name:     "generate without reason",
			response: `{"success":false,"comment":""}`,
			call: func(c *Client) error {
				_, err := c.GenerateComment(context.Background(), GenerateCommentRequest{Tone: "Friend"})
				return err
			},
			want: DefaultGenerateError,
		},
		{
			name:     "continue without reason",
			response: `{"success":false}`,
			call: func(c *Client) error {
				_, err := c.ContinueConversation(context.Background(), ContinueConversationRequest{History: "[]"})
				return err
			},
			want: DefaultContinueError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, _ := newBackend(t, http.StatusOK, tc.response)
			err := tc.call(NewClient(server.URL, testKey))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.want, apiErr.Message)
			assert.False(t, IsNetworkError(err))
		})
	}
}

func TestNon2xx_IsNetworkError(t *testing.T) {
	server, _ := newBackend(t, http.StatusInternalServerError, `{"success":false,"error":"boom"}`)
	client := NewClient(server.URL, testKey)

	_, err := client.GenerateComment(context.Background(), GenerateCommentRequest{Tone: "Friend"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.Status)
	assert.Equal(t, opGenerate, netErr.Op)
	assert.True(t, strings.HasPrefix(err.Error(), "Network error: "))
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, IsAPIError(err))
}

func TestNon2xx_PlainBody(t *testing.T) {
	server, _ := newBackend(t, http.StatusUnauthorized, `Invalid JWT`)
	client := NewClient(server.URL, testKey)

	_, err := client.ContinueConversation(context.Background(), ContinueConversationRequest{History: "[]"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusUnauthorized, netErr.Status)
	assert.Contains(t, err.Error(), "Invalid JWT")
}

func TestMalformedBody_IsNetworkError(t *testing.T) {
	server, _ := newBackend(t, http.StatusOK, `<html>not json</html>`)
	client := NewClient(server.URL, testKey)

	_, err := client.GenerateComment(context.Background(), GenerateCommentRequest{Tone: "Friend"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestUnreachable_IsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, testKey).GenerateComment(context.Background(), GenerateCommentRequest{Tone: "Friend"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.Status)
}

func TestTimeout_IsNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, testKey).WithTimeouts(Timeouts{
		Connect: time.Second,
		Read:    50 * time.Millisecond,
		Write:   time.Second,
	})

	_, err := client.GenerateComment(context.Background(), GenerateCommentRequest{Tone: "Friend"})

	assert.True(t, IsNetworkError(err))
}

func TestContextCancel_IsNetworkError(t *testing.T) {
	server, _ := newBackend(t, http.StatusOK, `{"success":true,"comment":"x"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, testKey).GenerateComment(ctx, GenerateCommentRequest{Tone: "Friend"})

	require.True(t, IsNetworkError(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "  ")
	assert.False(t, client.IsConfigured())

	_, err := client.GenerateComment(context.Background(), GenerateCommentRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestEncodeHistory(t *testing.T) {
	got, err := EncodeHistory(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	got, err = EncodeHistory([]string{`User: say "hi"`, "AI: नमस्ते"})
	require.NoError(t, err)

	var back []string
	require.NoError(t, json.Unmarshal([]byte(got), &back))
	assert.Equal(t, []string{`User: say "hi"`, "AI: नमस्ते"}, back)
}

func TestRedactedElidesImage(t *testing.T) {
	req := GenerateCommentRequest{ImageBase64: strings.Repeat("A", 1000)}
	red := req.redacted()

	assert.Equal(t, "<1000 bytes elided>", red.ImageBase64)
	assert.Len(t, req.ImageBase64, 1000)
}

func TestTimeoutsTotal(t *testing.T) {
	assert.Equal(t, 360*time.Second, DefaultTimeouts().Total())
}
