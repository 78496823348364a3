// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chatguru/chatguru-tui/internal/cloud"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
	"github.com/chatguru/chatguru-tui/internal/throttle"
)

// mockAPI is a testify mock of the backend.
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GenerateComment(ctx context.Context, req cloud.GenerateCommentRequest) (*cloud.CommentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cloud.CommentResponse)
	return resp, args.Error(1)
}

func (m *mockAPI) ContinueConversation(ctx context.Context, req cloud.ContinueConversationRequest) (*cloud.CommentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cloud.CommentResponse)
	return resp, args.Error(1)
}

func ok(comment string) *cloud.CommentResponse {
	return &cloud.CommentResponse{Success: true, Comment: comment}
}

// fakeImages encodes a ref as "b64(<ref>)".
type fakeImages struct {
	err error
}

func (f *fakeImages) EncodeBase64(_ context.Context, ref string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "b64(" + ref + ")", nil
}

// harness wires an Orchestrator to real stores in a temp dir.
type harness struct {
	o        *Orchestrator
	api      *mockAPI
	images   *fakeImages
	store    *storage.Store
	settings *settings.Store

	mu    sync.Mutex
	clock time.Time
	ids   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.Open(context.Background(), filepath.Join(dir, "chats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	prefs, err := settings.Open(filepath.Join(dir, "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { prefs.Close() })

	h := &harness{
		api:      &mockAPI{},
		images:   &fakeImages{},
		store:    store,
		settings: prefs,
		clock:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	h.o, err = New(Deps{
		Chats:     store,
		Messages:  store,
		Profile:   prefs,
		API:       h.api,
		Images:    h.images,
		Throttler: throttle.New(0),
		Now:       h.now,
		NewID:     h.newID,
	})
	require.NoError(t, err)
	return h
}

// now advances one millisecond per call so timestamps are distinct.
func (h *harness) now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clock = h.clock.Add(time.Millisecond)
	return h.clock
}

func (h *harness) newID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids++
	return fmt.Sprintf("id-%d", h.ids)
}

// seedChat stores a chat with alternating user/AI messages m0..m(n-1).
func (h *harness) seedChat(t *testing.T, chatID string, texts ...string) []model.Message {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.store.SaveChat(ctx, model.Chat{
		ID:               chatID,
		Title:            "seeded",
		LastMessage:      texts[len(texts)-1],
		Timestamp:        h.now().UnixMilli(),
		SelectedLanguage: model.LanguageEnglish.String(),
		SelectedTones:    model.ToneFriend.String(),
	}))
	var msgs []model.Message
	for i, text := range texts {
		m := model.Message{
			ID:        fmt.Sprintf("%s-m%d", chatID, i),
			ChatID:    chatID,
			Text:      text,
			IsUser:    i%2 == 0,
			Timestamp: h.now().UnixMilli(),
		}
		require.NoError(t, h.store.SaveMessage(ctx, m))
		msgs = append(msgs, m)
	}
	return msgs
}

func (h *harness) messages(t *testing.T, chatID string) []model.Message {
	t.Helper()
	msgs, err := h.store.MessagesByChat(context.Background(), chatID)
	require.NoError(t, err)
	return msgs
}

func texts(msgs []model.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func decodeHistory(t *testing.T, raw string) []string {
	t.Helper()
	var lines []string
	require.NoError(t, json.Unmarshal([]byte(raw), &lines))
	return lines
}
