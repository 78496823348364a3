// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chatguru/chatguru-tui/internal/model"
	"github.com/chatguru/chatguru-tui/internal/settings"
	"github.com/chatguru/chatguru-tui/internal/storage"
	"github.com/chatguru/chatguru-tui/internal/throttle"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMessageNotFound is returned by Regenerate when the target
	// message is not in the chat.
	ErrMessageNotFound = errors.New("message not found")

	// ErrMissingDependency is returned by New.
	ErrMissingDependency = errors.New("missing dependency")
)

// =============================================================================
// SESSION
// =============================================================================

// GenerationParams are the inputs of the last Generate, kept for retry.
type GenerationParams struct {
	ImageRef string
	Text     string
	Tones    []model.Tone
}

type session struct {
	chatID       string
	language     model.Language
	tones        []model.Tone
	last         *GenerationParams
	retryAttempt int
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator runs the comment flows and owns the session. All methods
// are safe for concurrent use.
type Orchestrator struct {
	chats     ChatStore
	messages  MessageStore
	profile   ProfileStore
	api       CommentAPI
	images    ImageEncoder
	throttler *throttle.Throttler
	now       func() time.Time
	newID     func() string

	state *hub

	mu      sync.Mutex
	session session
}

// New validates deps and returns an idle Orchestrator.
func New(deps Deps) (*Orchestrator, error) {
	switch {
	case deps.Chats == nil:
		return nil, fmt.Errorf("%w: chat store", ErrMissingDependency)
	case deps.Messages == nil:
		return nil, fmt.Errorf("%w: message store", ErrMissingDependency)
	case deps.Profile == nil:
		return nil, fmt.Errorf("%w: profile store", ErrMissingDependency)
	case deps.API == nil:
		return nil, fmt.Errorf("%w: comment api", ErrMissingDependency)
	case deps.Images == nil:
		return nil, fmt.Errorf("%w: image encoder", ErrMissingDependency)
	}

	o := &Orchestrator{
		chats:     deps.Chats,
		messages:  deps.Messages,
		profile:   deps.Profile,
		api:       deps.API,
		images:    deps.Images,
		throttler: deps.Throttler,
		now:       deps.Now,
		newID:     deps.NewID,
		state:     newHub(),
		session: session{
			language: model.DefaultLanguage,
			tones:    append([]model.Tone(nil), model.DefaultTones...),
		},
	}
	if o.throttler == nil {
		o.throttler = throttle.New(throttle.DefaultMinInterval)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	return o, nil
}

// =============================================================================
// OBSERVATION
// =============================================================================

// State returns the latest published state.
func (o *Orchestrator) State() State {
	return o.state.get()
}

// Subscribe returns a channel that immediately holds the current state
// and then every later one, dropping states the reader has not consumed
// in time. Call the returned func to stop; it closes the channel.
func (o *Orchestrator) Subscribe() (<-chan State, func()) {
	return o.state.subscribe()
}

// ResetUIState returns to Idle.
func (o *Orchestrator) ResetUIState() {
	o.publish(IdleState())
}

func (o *Orchestrator) publish(s State) {
	log.Printf("[conversation] state -> %s", s)
	o.state.publish(s)
}

// fail publishes err as an Error state and returns it.
func (o *Orchestrator) fail(op string, err error) error {
	msg := err.Error()
	if msg == "" {
		msg = "Unknown error"
	}
	log.Printf("[conversation] %s failed: %v", op, err)
	o.publish(ErrorState(msg))
	return err
}

// =============================================================================
// SESSION ACCESS
// =============================================================================

// CurrentChatID returns the active chat, or "".
func (o *Orchestrator) CurrentChatID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.chatID
}

// CurrentLanguage returns the session language.
func (o *Orchestrator) CurrentLanguage() model.Language {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.language
}

// CurrentTones returns a copy of the session tones.
func (o *Orchestrator) CurrentTones() []model.Tone {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]model.Tone(nil), o.session.tones...)
}

// LastGeneration returns the parameters a retry would replay, if any.
func (o *Orchestrator) LastGeneration() (GenerationParams, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session.last == nil {
		return GenerationParams{}, false
	}
	p := *o.session.last
	p.Tones = append([]model.Tone(nil), p.Tones...)
	return p, true
}

// SetCurrentChat makes id the active chat and loads its language and
// tones. Unreadable stored values fall back to the defaults. Calling it
// again without changes yields the same session.
func (o *Orchestrator) SetCurrentChat(ctx context.Context, id string) error {
	o.mu.Lock()
	o.session.chatID = id
	o.mu.Unlock()

	chat, err := o.chats.GetChat(ctx, id)
	if errors.Is(err, storage.ErrChatNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load chat %s: %w", id, err)
	}

	lang := model.ParseLanguage(chat.SelectedLanguage)
	if lang.Fallback {
		log.Printf("[conversation] chat %s: unknown language %q, using %s", id, chat.SelectedLanguage, lang.Value)
	}
	tones := model.ParseTones(chat.SelectedTones)
	if tones.Fallback {
		log.Printf("[conversation] chat %s: unreadable tones %q, using %v", id, chat.SelectedTones, tones.Value)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session.chatID == id {
		o.session.language = lang.Value
		o.session.tones = tones.Value
	}
	return nil
}

// UpdateTones sets the session tones and stores them on the active chat.
func (o *Orchestrator) UpdateTones(ctx context.Context, tones []model.Tone) error {
	tones = normalizeTones(tones)

	o.mu.Lock()
	o.session.tones = tones
	chatID := o.session.chatID
	o.mu.Unlock()

	if chatID == "" {
		return nil
	}
	chat, err := o.chats.GetChat(ctx, chatID)
	if errors.Is(err, storage.ErrChatNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load chat %s: %w", chatID, err)
	}
	chat.SelectedTones = model.JoinToneNames(tones)
	return o.chats.UpdateChat(ctx, chat)
}

// =============================================================================
// CHATS
// =============================================================================

// Chats returns all chats, newest first.
func (o *Orchestrator) Chats(ctx context.Context) ([]model.Chat, error) {
	return o.chats.ListChats(ctx)
}

// FavoriteChats returns favourite chats, newest first.
func (o *Orchestrator) FavoriteChats(ctx context.Context) ([]model.Chat, error) {
	return o.chats.ListFavoriteChats(ctx)
}

// Chat returns one chat.
func (o *Orchestrator) Chat(ctx context.Context, id string) (model.Chat, error) {
	return o.chats.GetChat(ctx, id)
}

// Messages returns a chat's messages, oldest first.
func (o *Orchestrator) Messages(ctx context.Context, chatID string) ([]model.Message, error) {
	return o.messages.MessagesByChat(ctx, chatID)
}

// ToggleFavorite flips the favourite flag and returns the new value.
func (o *Orchestrator) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	chat, err := o.chats.GetChat(ctx, id)
	if err != nil {
		return false, err
	}
	chat.IsFavorite = !chat.IsFavorite
	if err := o.chats.UpdateChat(ctx, chat); err != nil {
		return false, err
	}
	return chat.IsFavorite, nil
}

// DeleteChat removes a chat and its messages. If it was the active chat
// the session no longer points at it.
func (o *Orchestrator) DeleteChat(ctx context.Context, id string) error {
	if err := o.chats.DeleteChat(ctx, id); err != nil {
		return err
	}
	o.mu.Lock()
	if o.session.chatID == id {
		o.session.chatID = ""
	}
	o.mu.Unlock()
	return nil
}

// DeleteAllChats removes every chat and message.
func (o *Orchestrator) DeleteAllChats(ctx context.Context) error {
	if err := o.chats.DeleteAllChats(ctx); err != nil {
		return err
	}
	o.mu.Lock()
	o.session.chatID = ""
	o.mu.Unlock()
	return nil
}

// =============================================================================
// PROFILE & ONBOARDING
// =============================================================================

// Preferences returns the onboarding flags and profile.
func (o *Orchestrator) Preferences() (settings.Preferences, error) {
	return o.profile.Snapshot()
}

// Profile returns the stored profile, or the default when unreadable.
func (o *Orchestrator) Profile() model.UserProfile {
	p, err := o.profile.Profile()
	if err != nil {
		log.Printf("[conversation] profile unavailable, using defaults: %v", err)
		return model.DefaultProfile()
	}
	return p
}

// CompleteOnboarding marks the intro screens as seen.
func (o *Orchestrator) CompleteOnboarding() error {
	return o.profile.SetOnboardingCompleted()
}

// SaveProfile stores the profile; ages outside 12-99 are rejected.
func (o *Orchestrator) SaveProfile(p model.UserProfile) error {
	return o.profile.SaveProfile(p)
}

// UpdateLanguage changes the profile's preferred language.
func (o *Orchestrator) UpdateLanguage(lang model.Language) error {
	return o.profile.UpdateLanguage(lang)
}

// ResetApp clears the onboarding flags and deletes every chat.
func (o *Orchestrator) ResetApp(ctx context.Context) error {
	if err := o.profile.ResetOnboarding(); err != nil {
		return err
	}
	return o.DeleteAllChats(ctx)
}

// =============================================================================
// HELPERS
// =============================================================================

func (o *Orchestrator) millis() int64 {
	return o.now().UnixMilli()
}

// normalizeTones drops invalid and duplicate tones, defaulting to FRIEND.
func normalizeTones(tones []model.Tone) []model.Tone {
	return model.ParseTones(model.JoinToneNames(tones)).Value
}

func normalizeLanguage(lang model.Language) model.Language {
	if lang.Valid() {
		return lang
	}
	return model.DefaultLanguage
}
