package ratelimiting

import (
	"context"
	"slices"
	"sync"
	"time"
)

// windowLimitRequestLimiter paces operations so that at most limit of them
// complete within any window. The window is measured from the completion of
// earlier operations, not from their start.
type windowLimitRequestLimiter struct {
	window time.Duration

	slots chan struct{}

	mutex sync.Mutex
	// Completion times of recent operations, oldest first
	history []time.Time
}

func NewWindowLimitRequestLimiter(limit int, window time.Duration) *windowLimitRequestLimiter {
	slots := make(chan struct{}, limit)
	history := make([]time.Time, limit)

	// Seed the history one window in the past so the first limit operations
	// don't have to wait
	seed := time.Now().Add(-window)
	for i := range limit {
		slots <- struct{}{}
		history[i] = seed
	}

	return &windowLimitRequestLimiter{
		window:  window,
		slots:   slots,
		history: history,
	}
}

// Limit runs operation once the window allows it, and reports whether it ran.
// It returns early when the context ends while waiting, or right away when
// the context deadline can't fit the wait plus maxOperationTime.
func (l *windowLimitRequestLimiter) Limit(ctx context.Context, maxOperationTime time.Duration, operation func()) bool {
	select {
	case <-l.slots:
		defer func() {
			l.slots <- struct{}{}
		}()
	case <-ctx.Done():
		return false
	}

	oldest, ok := l.claimOldest(ctx, maxOperationTime)
	if !ok {
		return false
	}

	// A claim that never runs is recorded back unchanged, keeping the pace
	// available to other callers
	completedAt := oldest
	defer func() {
		l.record(completedAt)
	}()

	if wait := time.Until(oldest.Add(l.window)); wait > 0 {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}
	}

	operation()
	completedAt = time.Now()
	return true
}

// claimOldest removes and returns the oldest completion time. It refuses
// without removing anything when the caller's deadline can't fit the wait
// plus maxOperationTime.
func (l *windowLimitRequestLimiter) claimOldest(ctx context.Context, maxOperationTime time.Duration) (time.Time, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	oldest := l.history[0]

	if deadline, ok := ctx.Deadline(); ok {
		wait := time.Until(oldest.Add(l.window))
		if wait+maxOperationTime > time.Until(deadline) {
			return time.Time{}, false
		}
	}

	l.history = l.history[1:]
	return oldest, true
}

func (l *windowLimitRequestLimiter) record(completedAt time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	i, _ := slices.BinarySearchFunc(l.history, completedAt, time.Time.Compare)
	l.history = slices.Insert(l.history, i, completedAt)
}
