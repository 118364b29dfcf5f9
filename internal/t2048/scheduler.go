package t2048

import (
	"sort"
	"sync"
	"time"
)

// DefaultAnimationDuration is how long the pre-combine frame stays visible.
const DefaultAnimationDuration = 100 * time.Millisecond

// Phase is the commit phase of the most recent move.
type Phase int

const (
	PhaseIdle        Phase = iota // No move committed since the last reset
	PhasePreCombine               // Merged cells still show their old values
	PhasePostCombine              // Final board, including any new tile
)

// String returns the phase name used in snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreCombine:
		return "pre_combine"
	case PhasePostCombine:
		return "post_combine"
	default:
		return "unknown"
	}
}

// Timer is a pending delayed call.
type Timer interface {
	// Stop cancels the call. It returns false if the call already fired or was stopped.
	Stop() bool
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallClock schedules on real time. Callbacks run on their own goroutine.
type WallClock struct{}

// AfterFunc wraps time.AfterFunc.
func (WallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a deterministic scheduler driven by Advance.
// Callbacks run synchronously on the goroutine calling Advance.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewManualClock creates a clock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// AfterFunc registers f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &manualTimer{clock: c, due: c.now + d, seq: c.seq, fn: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward and fires every callback that became due,
// in due order. Returns the number of callbacks fired.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	c.now += d
	var due, keep []*manualTimer
	for _, t := range c.pending {
		switch {
		case t.stopped:
		case t.due <= c.now:
			t.fired = true
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	c.pending = keep
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	// Run outside the lock; callbacks may schedule again
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of scheduled, unfired callbacks.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Stop cancels the timer.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
