package schedule

import (
	"slices"
	"sync"
	"time"
)

type queued struct {
	at  time.Duration
	seq int
	fn  func()
}

// Manual is a Scheduler pumped by its owner.
// It keeps a virtual clock that only moves on Advance.
type Manual struct {
	now   time.Duration
	seq   int
	queue []queued
}

// NewManual returns an empty manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After queues fn to run once the virtual clock reaches now+d.
func (m *Manual) After(d time.Duration, fn func()) {
	m.seq++
	m.queue = append(m.queue, queued{at: m.now + d, seq: m.seq, fn: fn})
}

// Pending returns the number of queued callbacks.
func (m *Manual) Pending() int { return len(m.queue) }

// Advance moves the virtual clock forward by d and runs every callback that
// became due, in due-time then submission order. Callbacks queued while
// advancing run too if they fall within the new time.
func (m *Manual) Advance(d time.Duration) int {
	m.now += d
	ran := 0
	for {
		i := m.nextDue()
		if i < 0 {
			return ran
		}
		q := m.queue[i]
		m.queue = slices.Delete(m.queue, i, i+1)
		q.fn()
		ran++
	}
}

// Flush runs queued callbacks, advancing the clock as needed, until the queue
// is empty. It returns the number of callbacks run.
func (m *Manual) Flush() int {
	ran := 0
	for len(m.queue) > 0 {
		latest := m.now
		for _, q := range m.queue {
			latest = max(latest, q.at)
		}
		ran += m.Advance(latest - m.now)
	}
	return ran
}

func (m *Manual) nextDue() int {
	best := -1
	for i, q := range m.queue {
		if q.at > m.now {
			continue
		}
		if best < 0 || q.at < m.queue[best].at || (q.at == m.queue[best].at && q.seq < m.queue[best].seq) {
			best = i
		}
	}
	return best
}

// Timer is a Scheduler backed by time.AfterFunc.
// Every callback runs while holding mu.
type Timer struct {
	mu sync.Locker
}

// NewTimer returns a timer scheduler that serializes callbacks through mu.
func NewTimer(mu sync.Locker) *Timer {
	return &Timer{mu: mu}
}

// After runs fn on its own goroutine after d, holding the timer's lock.
func (t *Timer) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		fn()
	})
}
