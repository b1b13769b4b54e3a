// Package ui provides the single logical thread that view state is mutated
// on. Work computed elsewhere is handed back with Access.
package ui

import (
	"context"
	"sync"
)

// UI accepts callbacks to run on its logical thread. Access must not block
// and reports false when the UI is gone and fn was discarded.
type UI interface {
	Access(fn func()) bool
}

// Loop is a UI whose callbacks run on whichever goroutine calls Run.
type Loop struct {
	mu       sync.Mutex
	pending  []func()
	detached bool

	wake chan struct{}
	done chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Access queues fn for the loop. It never blocks, so it is safe to call from
// a callback already running on the loop.
func (l *Loop) Access(fn func()) bool {
	l.mu.Lock()
	if l.detached {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Detach ends the loop. Queued callbacks are dropped and later Access calls
// return false.
func (l *Loop) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return
	}
	l.detached = true
	l.pending = nil
	close(l.done)
}

func (l *Loop) Detached() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.detached
}

// Done is closed once the loop is detached.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run executes queued callbacks on the calling goroutine until the loop is
// detached (nil) or ctx ends (ctx.Err(), and the loop is detached). Run must
// not be called from more than one goroutine.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for _, fn := range l.take() {
			if l.Detached() {
				return nil
			}
			fn()
		}

		select {
		case <-l.wake:
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Detach()
			return ctx.Err()
		}
	}
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.pending
	l.pending = nil
	return batch
}
