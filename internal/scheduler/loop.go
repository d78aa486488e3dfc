// Package scheduler provides a single-threaded cooperative loop for periodic
// callbacks. Every callback and every posted function runs on the goroutine
// that drives the loop, one at a time, so callbacks never need locking among
// themselves.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Handle cancels a periodic schedule. Cancel is safe to call more than once.
type Handle interface {
	Cancel()
}

// Func is a unit of work run on the loop. A non-nil error stops the loop
// driver (Advance or Run) and is returned to its caller.
type Func func() error

// Loop runs periodic callbacks in due-time order. Callbacks due at the same
// instant run in registration order.
//
// Time on the loop is a duration since the loop was created. Advance moves it
// forward explicitly (tests, headless renders); Run maps wall-clock time onto
// it.
type Loop struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	queue  schedules
	posted []Func
	wake   chan struct{}
	clock  func() time.Time

	// current is the schedule whose callback is running, popped from queue.
	current *schedule
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the wall clock used by Run. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		l.clock = now
	}
}

// NewLoop creates an empty loop at time zero.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		wake:  make(chan struct{}, 1),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Every schedules fn to run every period, first at now+period.
// It panics if period is not positive.
func (l *Loop) Every(period time.Duration, fn Func) Handle {
	if period <= 0 {
		panic("scheduler: non-positive period")
	}

	l.mu.Lock()
	l.seq++
	s := &schedule{
		loop:   l,
		due:    l.now + period,
		period: period,
		seq:    l.seq,
		fn:     fn,
		index:  -1,
	}
	heap.Push(&l.queue, s)
	l.mu.Unlock()

	l.notify()
	return s
}

// Post queues fn to run on the loop before any further timer callbacks.
// Safe to call from any goroutine.
func (l *Loop) Post(fn Func) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	l.notify()
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// Pending returns the number of live (uncanceled) schedules.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) + l.firing()
}

// Advance runs posted work and then every callback due within d, in order,
// and leaves the loop's time at now+d. It returns the first callback error,
// leaving the time at that callback's due time.
func (l *Loop) Advance(d time.Duration) error {
	l.mu.Lock()
	target := l.now + d
	l.mu.Unlock()

	if err := l.drainPosted(); err != nil {
		return err
	}
	return l.runUntil(target)
}

// Run drives the loop in real time until ctx is done or a callback fails.
// Cancellation returns nil.
func (l *Loop) Run(ctx context.Context) error {
	start := l.clock()
	base := l.Now()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		if err := l.drainPosted(); err != nil {
			return err
		}

		elapsed := base + l.clock().Sub(start)
		if err := l.runUntil(elapsed); err != nil {
			return err
		}

		var timerC <-chan time.Time
		if next, ok := l.nextDue(); ok {
			timer.Reset(max(next-elapsed, 0))
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		case <-timerC:
		}
	}
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) nextDue() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return 0, false
	}
	return l.queue[0].due, true
}

func (l *Loop) drainPosted() error {
	for {
		l.mu.Lock()
		if len(l.posted) == 0 {
			l.mu.Unlock()
			return nil
		}
		fn := l.posted[0]
		l.posted = l.posted[1:]
		l.mu.Unlock()

		if err := fn(); err != nil {
			return err
		}
	}
}

func (l *Loop) runUntil(target time.Duration) error {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 || l.queue[0].due > target {
			if target > l.now {
				l.now = target
			}
			l.mu.Unlock()
			return nil
		}
		s := heap.Pop(&l.queue).(*schedule)
		l.current = s
		l.now = s.due
		l.mu.Unlock()

		err := s.fn()

		l.mu.Lock()
		l.current = nil
		if !s.canceled {
			s.due += s.period
			heap.Push(&l.queue, s)
		}
		l.mu.Unlock()

		if err != nil {
			return err
		}

		if err := l.drainPosted(); err != nil {
			return err
		}
	}
}

// firing counts popped schedules whose callback is running. Caller holds mu.
func (l *Loop) firing() int {
	if l.current != nil && !l.current.canceled {
		return 1
	}
	return 0
}
