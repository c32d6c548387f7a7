package field

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval is the fixed timer cadence used when a host has no
// display-synchronized frame callback.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop is a fixed-interval frame scheduler. Event handlers posted with Post
// and frame callbacks requested with RequestFrame all run on the goroutine
// that calls Run, so the state they touch needs no locking.
type Loop struct {
	interval time.Duration
	present  func()
	events   chan func()

	mu      sync.Mutex
	pending func()
	frameID uint64

	stopped atomic.Bool
	stop    chan struct{}
	once    sync.Once
}

// NewLoop creates a loop ticking every interval. present, when non-nil, is
// called after each frame callback, e.g. to flush a screen buffer.
func NewLoop(interval time.Duration, present func()) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		interval: interval,
		present:  present,
		events:   make(chan func(), 128),
		stop:     make(chan struct{}),
	}
}

// RequestFrame schedules fn for the next tick. Only the latest request is
// kept. The returned cancel func revokes this request if it has not run.
func (l *Loop) RequestFrame(fn func()) (cancel func()) {
	l.mu.Lock()
	l.frameID++
	id := l.frameID
	l.pending = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.frameID == id {
			l.pending = nil
		}
	}
}

// Post queues fn to run on the loop goroutine. It returns false once the
// loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if l.stopped.Load() {
		return false
	}
	select {
	case l.events <- fn:
		return true
	case <-l.stop:
		return false
	}
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.stopped.Store(true)
		close(l.stop)
	})
}

// isStopped reports whether Stop has been called
func (l *Loop) isStopped() bool {
	return l.stopped.Load()
}

// Run drives the loop until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.Stop()

	for {
		if l.stopped.Load() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case fn := <-l.events:
			fn()
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Loop) tick() {
	l.mu.Lock()
	fn := l.pending
	l.pending = nil
	l.mu.Unlock()

	if fn == nil {
		return
	}
	fn()
	if l.present != nil {
		l.present()
	}
}
