// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/chatguru/chatguru-tui/internal/conversation"
	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
)

// fakeService is an in-memory Service that records flow inputs.
type fakeService struct {
	mu sync.Mutex

	prefs    settings.Preferences
	chats    map[string]model.Chat
	order    []string // newest first
	messages map[string][]model.Message
	current  string
	tones    []model.Tone
	lang     model.Language
	last     *conversation.GenerationParams

	generated   []conversation.GenerateInput
	continued   []conversation.ContinueInput
	regenerated []conversation.RegenerateInput
	retries     int
	resets      int
	genErr      error
	ids         int
	clock       int64

	states       chan conversation.State
	unsubscribed bool
}

func newFakeService() *fakeService {
	return &fakeService{
		prefs:    settings.Preferences{Profile: model.DefaultProfile()},
		chats:    make(map[string]model.Chat),
		messages: make(map[string][]model.Message),
		tones:    append([]model.Tone(nil), model.DefaultTones...),
		lang:     model.DefaultLanguage,
		clock:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC).UnixMilli(),
	}
}

// onboarded marks onboarding and profile setup as done.
func (f *fakeService) onboarded() *fakeService {
	f.prefs.OnboardingCompleted = true
	f.prefs.ProfileSetupCompleted = true
	return f
}

func (f *fakeService) id(prefix string) string {
	f.ids++
	return fmt.Sprintf("%s-%d", prefix, f.ids)
}

func (f *fakeService) tick() int64 {
	f.clock += 1000
	return f.clock
}

// seed stores a chat with a user message and an AI reply.
func (f *fakeService) seed(title, comment string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id("chat")
	f.chats[id] = model.Chat{ID: id, Title: title, LastMessage: comment, Timestamp: f.tick(),
		SelectedLanguage: model.LanguageEnglish.String(), SelectedTones: "FRIEND"}
	f.order = append([]string{id}, f.order...)
	f.messages[id] = []model.Message{
		{ID: f.id("m"), ChatID: id, Text: title, IsUser: true, Timestamp: f.tick()},
		{ID: f.id("m"), ChatID: id, Text: comment, Timestamp: f.tick()},
	}
	return id
}

func (f *fakeService) appendAI(chatID, text string) {
	f.messages[chatID] = append(f.messages[chatID], model.Message{ID: f.id("m"), ChatID: chatID, Text: text, Timestamp: f.tick()})
}

func (f *fakeService) State() conversation.State { return conversation.IdleState() }

func (f *fakeService) Subscribe() (<-chan conversation.State, func()) {
	f.states = make(chan conversation.State, 1)
	f.states <- conversation.IdleState()
	return f.states, func() { f.unsubscribed = true }
}

func (f *fakeService) ResetUIState() {}

func (f *fakeService) CurrentChatID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeService) CurrentLanguage() model.Language {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lang
}

func (f *fakeService) CurrentTones() []model.Tone {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Tone(nil), f.tones...)
}

func (f *fakeService) LastGeneration() (conversation.GenerationParams, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return conversation.GenerationParams{}, false
	}
	return *f.last, true
}

func (f *fakeService) SetCurrentChat(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = id
	if c, ok := f.chats[id]; ok {
		f.tones = model.ParseTones(c.SelectedTones).Value
		f.lang = model.ParseLanguage(c.SelectedLanguage).Value
	}
	return nil
}

func (f *fakeService) UpdateTones(_ context.Context, tones []model.Tone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tones = tones
	if c, ok := f.chats[f.current]; ok {
		c.SelectedTones = model.JoinToneNames(tones)
		f.chats[f.current] = c
	}
	return nil
}

func (f *fakeService) list(favOnly bool) []model.Chat {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Chat
	for _, id := range f.order {
		if c := f.chats[id]; !favOnly || c.IsFavorite {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeService) Chats(context.Context) ([]model.Chat, error) { return f.list(false), nil }

func (f *fakeService) FavoriteChats(context.Context) ([]model.Chat, error) { return f.list(true), nil }

func (f *fakeService) Chat(_ context.Context, id string) (model.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[id]
	if !ok {
		return model.Chat{}, storage.ErrChatNotFound
	}
	return c, nil
}

func (f *fakeService) Messages(_ context.Context, chatID string) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Message(nil), f.messages[chatID]...), nil
}

func (f *fakeService) ToggleFavorite(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[id]
	if !ok {
		return false, storage.ErrChatNotFound
	}
	c.IsFavorite = !c.IsFavorite
	f.chats[id] = c
	return c.IsFavorite, nil
}

func (f *fakeService) DeleteChat(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.chats, id)
	delete(f.messages, id)
	for i, x := range f.order {
		if x == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if f.current == id {
		f.current = ""
	}
	return nil
}

func (f *fakeService) DeleteAllChats(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = make(map[string]model.Chat)
	f.messages = make(map[string][]model.Message)
	f.order = nil
	f.current = ""
	return nil
}

func (f *fakeService) Preferences() (settings.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs, nil
}

func (f *fakeService) Profile() model.UserProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs.Profile
}

func (f *fakeService) CompleteOnboarding() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs.OnboardingCompleted = true
	return nil
}

func (f *fakeService) SaveProfile(p model.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !model.ValidAge(p.Age) {
		return settings.ErrInvalidAge
	}
	f.prefs.Profile = p
	f.prefs.ProfileSetupCompleted = true
	return nil
}

func (f *fakeService) UpdateLanguage(lang model.Language) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs.Profile.PreferredLanguage = lang
	return nil
}

func (f *fakeService) ResetApp(ctx context.Context) error {
	f.mu.Lock()
	f.prefs.OnboardingCompleted = false
	f.prefs.ProfileSetupCompleted = false
	f.resets++
	f.mu.Unlock()
	return f.DeleteAllChats(ctx)
}

func (f *fakeService) Generate(_ context.Context, in conversation.GenerateInput) (conversation.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, in)
	f.last = &conversation.GenerationParams{ImageRef: in.ImageRef, Text: in.Text, Tones: in.Tones}
	if f.genErr != nil {
		return conversation.Reply{}, f.genErr
	}
	id := f.id("chat")
	f.chats[id] = model.Chat{ID: id, Title: in.Text, LastMessage: "Nice shot!", Timestamp: f.tick(),
		SelectedLanguage: in.Language.String(), SelectedTones: model.JoinToneNames(in.Tones)}
	f.order = append([]string{id}, f.order...)
	f.messages[id] = []model.Message{
		{ID: f.id("m"), ChatID: id, Text: in.Text, IsUser: true, Timestamp: f.tick(), ImageURI: in.ImageRef},
		{ID: f.id("m"), ChatID: id, Text: "Nice shot!", Timestamp: f.tick()},
	}
	f.current = id
	return conversation.Reply{ChatID: id, Comment: "Nice shot!"}, nil
}

func (f *fakeService) Continue(_ context.Context, in conversation.ContinueInput) (conversation.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.continued = append(f.continued, in)
	f.messages[in.ChatID] = append(f.messages[in.ChatID], model.Message{ID: f.id("m"), ChatID: in.ChatID, Text: in.Reply, IsUser: true, Timestamp: f.tick()})
	f.appendAI(in.ChatID, "Thanks!")
	return conversation.Reply{ChatID: in.ChatID, Comment: "Thanks!"}, nil
}

func (f *fakeService) Regenerate(_ context.Context, in conversation.RegenerateInput) (conversation.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regenerated = append(f.regenerated, in)
	f.appendAI(in.ChatID, "Another take")
	return conversation.Reply{ChatID: in.ChatID, Comment: "Another take"}, nil
}

func (f *fakeService) RetryLastGeneration(context.Context) (conversation.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil || f.current == "" {
		return conversation.Reply{}, nil
	}
	f.retries++
	f.appendAI(f.current, "Retry take")
	return conversation.Reply{ChatID: f.current, Comment: "Retry take"}, nil
}

var errBackend = errors.New("network error: connection refused")

// =============================================================================
// DRIVER
// =============================================================================

// cmdWait bounds how long a command may block before it is dropped. Ticks
// and the idle state subscription never return within it.
const cmdWait = 50 * time.Millisecond

func call(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdWait):
		return nil, false
	}
}

// run executes cmd and feeds every resulting message back into m.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := call(c)
		if !ok || msg == nil {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg:
			continue
		}
		next, c2 := m.Update(msg)
		m = next.(Model)
		queue = append(queue, c2)
	}
	return m
}

// send delivers msg and runs whatever it triggers.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return run(t, next.(Model), cmd)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, k)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

// start builds a model over svc and runs its Init.
func start(t *testing.T, svc *fakeService) (Model, *[]string) {
	t.Helper()
	var copied []string
	m := New(context.Background(), svc, Options{
		Theme:          "dark",
		RenderMarkdown: false,
		Copy: func(s string) error {
			copied = append(copied, s)
			return nil
		},
		Now: func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = run(t, m, m.Init())
	return m, &copied
}
