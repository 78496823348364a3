// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package throttle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  []time.Duration
	onSleep func(ctx context.Context) error
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if c.onSleep != nil {
		if err := c.onSleep(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

func TestRun_FirstCallIsImmediate(t *testing.T) {
	clock := newFakeClock()
	th := New(6*time.Second, WithClock(clock))

	ran := false
	err := th.Run(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Empty(t, clock.Sleeps())
	assert.Equal(t, clock.Now(), th.LastDispatch())
}

func TestRun_SpacesConsecutiveStarts(t *testing.T) {
	clock := newFakeClock()
	interval := 6 * time.Second
	th := New(interval, WithClock(clock))

	var starts []time.Time
	for i := 0; i < 5; i++ {
		err := th.Run(context.Background(), func(context.Context) error {
			starts = append(starts, clock.Now())
			return nil
		})
		require.NoError(t, err)
	}

	require.Len(t, starts, 5)
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), interval, "gap %d", i)
	}
}

func TestRun_WaitsOnlyForRemainder(t *testing.T) {
	clock := newFakeClock()
	th := New(6*time.Second, WithClock(clock))

	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))
	first := th.LastDispatch()

	clock.Advance(4 * time.Second)
	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))

	sleeps := clock.Sleeps()
	require.Len(t, sleeps, 1)
	assert.InDelta(t, float64(2*time.Second), float64(sleeps[0]), float64(time.Millisecond))
	assert.GreaterOrEqual(t, th.LastDispatch().Sub(first), 6*time.Second)
}

func TestRun_NoWaitAfterIntervalElapsed(t *testing.T) {
	clock := newFakeClock()
	th := New(6*time.Second, WithClock(clock))

	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))
	clock.Advance(10 * time.Second)
	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))

	assert.Empty(t, clock.Sleeps())
}

func TestRun_FailedOpStillCounts(t *testing.T) {
	clock := newFakeClock()
	th := New(6*time.Second, WithClock(clock))
	boom := errors.New("boom")

	err := th.Run(context.Background(), func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	failedAt := th.LastDispatch()
	require.False(t, failedAt.IsZero())

	var startedAt time.Time
	require.NoError(t, th.Run(context.Background(), func(context.Context) error {
		startedAt = clock.Now()
		return nil
	}))
	assert.GreaterOrEqual(t, startedAt.Sub(failedAt), 6*time.Second)
}

func TestRun_GapsMatchIntervalAcrossFailures(t *testing.T) {
	clock := newFakeClock()
	interval := 6 * time.Second
	th := New(interval, WithClock(clock))
	boom := errors.New("boom")

	var starts []time.Time
	for i := 0; i < 4; i++ {
		err := th.Run(context.Background(), func(context.Context) error {
			starts = append(starts, clock.Now())
			if i == 1 {
				return boom
			}
			return nil
		})
		if i == 1 {
			require.ErrorIs(t, err, boom)
		} else {
			require.NoError(t, err)
		}
	}

	require.Len(t, starts, 4)
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		assert.GreaterOrEqual(t, gap, interval, "gap %d", i)
		assert.Less(t, gap, interval+time.Millisecond, "gap %d", i)
	}
}

func TestRun_SpacingFollowsLimiter(t *testing.T) {
	clock := newFakeClock()
	th := New(6*time.Second, WithClock(clock))
	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))
	first := th.LastDispatch()

	th.limiter.SetLimitAt(clock.Now(), rate.Every(2*time.Second))
	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))

	gap := th.LastDispatch().Sub(first)
	assert.GreaterOrEqual(t, gap, 2*time.Second)
	assert.Less(t, gap, 3*time.Second)
}

func TestDo_ReturnsValue(t *testing.T) {
	th := New(0)

	got, err := Do(context.Background(), th, func(context.Context) (string, error) {
		return "hello", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestDo_PropagatesError(t *testing.T) {
	th := New(0)
	boom := errors.New("boom")

	_, err := Do(context.Background(), th, func(context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	th := New(6 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := th.Run(ctx, func(context.Context) error {
		ran = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
	assert.True(t, th.LastDispatch().IsZero())
}

func TestRun_CancelledWhileWaitingDoesNotConsumeSlot(t *testing.T) {
	clock := newFakeClock()
	th := New(6*time.Second, WithClock(clock))
	require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))
	first := th.LastDispatch()

	ctx, cancel := context.WithCancel(context.Background())
	clock.onSleep = func(context.Context) error {
		cancel()
		return context.Canceled
	}
	ran := false
	err := th.Run(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
	assert.Equal(t, first, th.LastDispatch())

	clock.onSleep = nil
	var startedAt time.Time
	require.NoError(t, th.Run(context.Background(), func(context.Context) error {
		startedAt = clock.Now()
		return nil
	}))
	assert.GreaterOrEqual(t, startedAt.Sub(first), 6*time.Second)
	assert.Less(t, startedAt.Sub(first), 7*time.Second)
}

func TestRun_SerialisesConcurrentCallers(t *testing.T) {
	th := New(0)

	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
		wg       sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = th.Run(context.Background(), func(context.Context) error {
				mu.Lock()
				inFlight++
				if inFlight > maxSeen {
					maxSeen = inFlight
				}
				mu.Unlock()
				time.Sleep(2 * time.Millisecond)
				mu.Lock()
				inFlight--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestRun_RealClockSpacing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing test in short mode")
	}
	interval := 30 * time.Millisecond
	th := New(interval)

	var (
		mu     sync.Mutex
		starts []time.Time
		wg     sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = th.Run(context.Background(), func(context.Context) error {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	require.Len(t, starts, 4)
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), interval)
	}
}

func TestNew_NegativeIntervalDisablesSpacing(t *testing.T) {
	clock := newFakeClock()
	th := New(-time.Second, WithClock(clock))

	for i := 0; i < 3; i++ {
		require.NoError(t, th.Run(context.Background(), func(context.Context) error { return nil }))
	}
	assert.Empty(t, clock.Sleeps())
	assert.Equal(t, time.Duration(0), th.MinInterval())
}
