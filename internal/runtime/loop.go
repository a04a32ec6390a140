// Package runtime provides the single logical thread the UI core runs on.
// Models, presenters, views and the host document are only ever touched
// from tasks executed by a Scheduler.
package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Scheduler queues work onto the UI thread.
type Scheduler interface {
	// Post enqueues fn to run on a later tick.
	Post(fn func())
	// After posts fn once d has elapsed. The returned func cancels it.
	After(d time.Duration, fn func()) (cancel func())
}

// PanicError carries a panic raised by a task out of Run.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("event loop task panicked: %v", e.Value)
}

// Loop is a Scheduler backed by one goroutine draining an unbounded queue.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	idle   func()
	closed bool
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a loop. Tasks only run once Run is called.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// OnIdle sets a hook invoked on the loop goroutine after every task.
func (l *Loop) OnIdle(fn func()) {
	l.mu.Lock()
	l.idle = fn
	l.mu.Unlock()
}

// Post enqueues fn. Posting after Run has returned is a no-op.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// After arms a timer that posts fn when it fires.
func (l *Loop) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() { l.Post(fn) })
	return func() { t.Stop() }
}

// Run executes tasks until ctx is cancelled. A panicking task stops the loop
// and is returned as a *PanicError.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
	}()
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
		for {
			fn, idle, ok := l.next()
			if !ok {
				break
			}
			fn()
			if idle != nil {
				idle()
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func (l *Loop) next() (func(), func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, l.idle, true
}
