package runtime

import (
	"sort"
	"time"
)

// Manual is a Scheduler that only runs work when asked. Tests use it to
// observe state between ticks and to fire timers without sleeping.
type Manual struct {
	queue  []func()
	timers []*manualTimer
	now    time.Duration
	seq    int
}

type manualTimer struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Post(fn func()) {
	m.queue = append(m.queue, fn)
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Pending reports how many tasks are queued.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Tick runs the tasks queued before the call. Tasks they post wait for the
// next tick.
func (m *Manual) Tick() int {
	batch := m.queue
	m.queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// RunPending ticks until the queue is empty and returns the number of tasks run.
func (m *Manual) RunPending() int {
	n := 0
	for len(m.queue) > 0 {
		n += m.Tick()
	}
	return n
}

// Advance moves the clock forward, posts every timer that came due in
// deadline order, and drains the queue.
func (m *Manual) Advance(d time.Duration) {
	m.now += d

	var due, rest []*manualTimer
	for _, t := range m.timers {
		switch {
		case t.cancelled:
		case t.at <= m.now:
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	m.timers = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	for _, t := range due {
		m.Post(t.fn)
	}
	m.RunPending()
}
