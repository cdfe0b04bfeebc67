package timing

import (
	"slices"
	"time"
)

// Scheduler runs a callback after a delay. Callbacks always run on the
// logical thread that drives the game, never concurrently with each other.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type timer struct {
	due time.Time
	seq int
	fn  func()
}

// Manual is a virtual-time scheduler. Nothing runs until Advance or
// RunUntilIdle is called, which makes timed game flows deterministic.
type Manual struct {
	now   time.Time
	seq   int
	queue []timer
}

// maxIdleRuns bounds RunUntilIdle so a callback that keeps rescheduling
// itself cannot spin forever.
const maxIdleRuns = 10000

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.queue = append(m.queue, timer{due: m.now.Add(d), seq: m.seq, fn: fn})
	m.seq++
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way, including callbacks scheduled by earlier ones. It returns
// the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	ran := 0
	for {
		i := m.next()
		if i < 0 || m.queue[i].due.After(target) {
			break
		}
		m.runAt(i)
		ran++
	}
	m.now = target
	return ran
}

// RunUntilIdle runs queued callbacks in order, jumping the clock to each
// one's due time, until nothing is left.
func (m *Manual) RunUntilIdle() int {
	ran := 0
	for ran < maxIdleRuns {
		i := m.next()
		if i < 0 {
			break
		}
		m.runAt(i)
		ran++
	}
	return ran
}

func (m *Manual) runAt(i int) {
	t := m.queue[i]
	m.queue = slices.Delete(m.queue, i, i+1)
	if t.due.After(m.now) {
		m.now = t.due
	}
	t.fn()
}

// next returns the index of the earliest timer, ties broken by insertion order.
func (m *Manual) next() int {
	best := -1
	for i, t := range m.queue {
		if best < 0 {
			best = i
			continue
		}
		b := m.queue[best]
		if t.due.Before(b.due) || (t.due.Equal(b.due) && t.seq < b.seq) {
			best = i
		}
	}
	return best
}
