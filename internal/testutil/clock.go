package testutil

import (
	"sort"
	"sync"
	"time"

	"hackclock/internal/core/countdown"
)

// FakeClock is a manually advanced countdown.Clock. Callbacks run on the
// goroutine calling Advance, in due order.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	due     time.Time
	seq     int
	fn      func()
	stopped bool
}

// NewFakeClock returns a clock frozen at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *FakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *FakeClock) AfterFunc(d time.Duration, f func()) countdown.Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.seq++
	timer := &fakeTimer{clock: clock, due: clock.now.Add(d), seq: clock.seq, fn: f}
	clock.pending = append(clock.pending, timer)
	return timer
}

// Advance moves time forward by d, firing every timer that comes due.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(d)
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		next := clock.popDueLocked(target)
		if next == nil {
			clock.now = target
			clock.mu.Unlock()
			return
		}
		clock.now = next.due
		clock.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers waiting to fire.
func (clock *FakeClock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.pending)
}

func (clock *FakeClock) popDueLocked(target time.Time) *fakeTimer {
	if len(clock.pending) == 0 {
		return nil
	}
	sort.Slice(clock.pending, func(i, j int) bool {
		if clock.pending[i].due.Equal(clock.pending[j].due) {
			return clock.pending[i].seq < clock.pending[j].seq
		}
		return clock.pending[i].due.Before(clock.pending[j].due)
	})
	next := clock.pending[0]
	if next.due.After(target) {
		return nil
	}
	clock.pending = clock.pending[1:]
	return next
}

func (timer *fakeTimer) Stop() bool {
	clock := timer.clock
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for index, pending := range clock.pending {
		if pending == timer {
			clock.pending = append(clock.pending[:index], clock.pending[index+1:]...)
			return true
		}
	}
	return false
}
