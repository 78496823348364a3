// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"fmt"
	"sync"
)

// Kind is the phase of the most recent flow.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindRetrying
	KindSuccess
	KindError
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindRetrying:
		return "retrying"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is what the UI renders. Message is the comment on success and
// the reason on error; ChatID is set on success; Attempt on retrying.
type State struct {
	Kind    Kind
	Message string
	ChatID  string
	Attempt int
}

// IdleState is the initial state.
func IdleState() State { return State{Kind: KindIdle} }

// LoadingState is published when a flow starts.
func LoadingState() State { return State{Kind: KindLoading} }

// RetryingState is published when a retry starts.
func RetryingState(attempt int) State { return State{Kind: KindRetrying, Attempt: attempt} }

// SuccessState carries the generated comment and its chat.
func SuccessState(comment, chatID string) State {
	return State{Kind: KindSuccess, Message: comment, ChatID: chatID}
}

// ErrorState carries a human-readable reason.
func ErrorState(message string) State { return State{Kind: KindError, Message: message} }

// Busy reports whether a flow is in progress.
func (s State) Busy() bool {
	return s.Kind == KindLoading || s.Kind == KindRetrying
}

// String is used in logs.
func (s State) String() string {
	switch s.Kind {
	case KindRetrying:
		return fmt.Sprintf("retrying(%d)", s.Attempt)
	case KindSuccess:
		return fmt.Sprintf("success(chat=%s)", s.ChatID)
	case KindError:
		return fmt.Sprintf("error(%s)", s.Message)
	default:
		return s.Kind.String()
	}
}

// =============================================================================
// STATE HUB
// =============================================================================

// hub holds the latest State and fans it out. Each subscriber has a
// one-slot channel; a newer state replaces an unread older one.
type hub struct {
	mu      sync.Mutex
	current State
	subs    map[int]chan State
	nextID  int
}

func newHub() *hub {
	return &hub{current: IdleState(), subs: make(map[int]chan State)}
}

func (h *hub) get() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *hub) publish(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = s
	for _, ch := range h.subs {
		// Only publish sends, under mu, so after the drain the slot is free.
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (h *hub) subscribe() (<-chan State, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan State, 1)
	ch <- h.current
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}
