// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package throttle

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval keeps the client at or below 10 requests per minute.
const DefaultMinInterval = 6 * time.Second

// Throttler is a mutual-exclusion gate with a minimum interval between
// the starts of consecutive operations. Spacing comes from a one-token
// rate.Limiter that is charged only at dispatch time. The wrapped
// operation runs while the gate is held, so it also bounds concurrency
// to one.
type Throttler struct {
	// sem is a one-slot semaphore so waiting callers can honour ctx.
	sem chan struct{}

	limiter  *rate.Limiter
	interval time.Duration
	clock    Clock

	mu           sync.Mutex
	lastDispatch time.Time
}

// Option configures a Throttler.
type Option func(*Throttler)

// WithClock replaces the wall clock, typically with a fake in tests.
func WithClock(c Clock) Option {
	return func(t *Throttler) {
		if c != nil {
			t.clock = c
		}
	}
}

// New creates a Throttler. A non-positive interval disables spacing but
// keeps serialisation.
func New(minInterval time.Duration, opts ...Option) *Throttler {
	if minInterval < 0 {
		minInterval = 0
	}
	t := &Throttler{
		sem:      make(chan struct{}, 1),
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		interval: minInterval,
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MinInterval returns the configured spacing.
func (t *Throttler) MinInterval() time.Duration {
	return t.interval
}

// LastDispatch returns when the most recent operation was released, or
// the zero time if none has run yet.
func (t *Throttler) LastDispatch() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastDispatch
}

// Run executes op once the gate is free and the limiter has a token.
// op's error is returned unchanged. The token is taken at the dispatch
// instant, before op runs, so a failing op still counts against the
// rate.
//
// If ctx ends while waiting, op is not run, no token is taken and
// ctx.Err() is returned.
func (t *Throttler) Run(ctx context.Context, op func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case t.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-t.sem }()

	for logged := false; ; logged = true {
		now := t.clock.Now()
		if t.limiter.AllowN(now, 1) {
			t.mu.Lock()
			t.lastDispatch = now
			t.mu.Unlock()
			break
		}
		wait := t.delayFrom(now)
		if !logged {
			log.Printf("[throttle] %v since last request, delaying %v",
				now.Sub(t.LastDispatch()).Round(time.Millisecond), wait.Round(time.Millisecond))
		}
		if err := t.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}

	return op(ctx)
}

// delayFrom is how long until the limiter holds a full token. The
// limiter truncates durations to whole nanoseconds; rounding up here
// keeps the sleep from ending just short of the token.
func (t *Throttler) delayFrom(now time.Time) time.Duration {
	missing := 1 - t.limiter.TokensAt(now)
	if missing <= 0 {
		return time.Nanosecond
	}
	d := time.Duration(math.Ceil(missing / float64(t.limiter.Limit()) * float64(time.Second)))
	if d <= 0 {
		d = time.Nanosecond
	}
	return d
}

// Do is Run for operations that produce a value.
func Do[T any](ctx context.Context, t *Throttler, op func(context.Context) (T, error)) (T, error) {
	var out T
	err := t.Run(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		out = v
		return err
	})
	return out, err
}
