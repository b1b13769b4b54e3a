// Package presenter bridges view code and the services. Every entry point
// runs its I/O on a worker pool and hands the outcome back to the bound UI's
// logical thread as a Result.
package presenter

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/ui"
)

// Executor runs tasks off the UI thread.
type Executor interface {
	Submit(fn func()) error
}

// Result is what a callback receives: a value, or a Failure.
type Result[T any] struct {
	Value   T
	Failure *Failure
}

func (r Result[T]) OK() bool { return r.Failure == nil }

func success[T any](v T) Result[T] { return Result[T]{Value: v} }

func failure[T any](f *Failure) Result[T] { return Result[T]{Failure: f} }

// base holds the binding state shared by every presenter. A presenter with
// no UI bound ignores every call.
type base struct {
	pool Executor
	log  zerolog.Logger

	mu   sync.Mutex
	view ui.UI
	gen  uint64
}

func (b *base) init(pool Executor, log zerolog.Logger, name string) {
	b.pool = pool
	b.log = log.With().Str("presenter", name).Logger()
}

// Bind attaches a UI. Results of calls made under a previous binding are
// discarded.
func (b *base) Bind(v ui.UI) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view = v
	b.gen++
}

func (b *base) Unbind() {
	b.Bind(nil)
}

func (b *base) Bound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view != nil
}

func (b *base) binding() (ui.UI, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view, b.gen
}

func (b *base) current(gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view != nil && b.gen == gen
}

// reject reports a precondition failure straight to cb on the calling
// (UI) goroutine, without touching the pool.
func reject[T any](b *base, cb func(Result[T]), f *Failure) {
	if !b.Bound() {
		return
	}
	cb(failure[T](f))
}

// dispatch runs work on the pool with a context that outlives the caller's
// cancellation, then delivers the outcome through the UI that was bound at
// call time. If that UI is detached or the presenter was rebound, the
// outcome is dropped.
func dispatch[T any](ctx context.Context, b *base, op string, cb func(Result[T]), work func(context.Context) (T, error)) {
	view, gen := b.binding()
	if view == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	task := func() {
		var res Result[T]
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error().Interface("panic", r).Str("op", op).Msg("operation panicked")
					res = failure[T](internalFailure())
				}
			}()
			v, err := work(ctx)
			if err != nil {
				f := FailureFrom(err)
				b.logFailure(op, f, err)
				res = failure[T](f)
				return
			}
			res = success(v)
		}()
		b.deliver(view, gen, op, func() { cb(res) })
	}

	if err := b.pool.Submit(task); err != nil {
		f := FailureFrom(err)
		b.logFailure(op, f, err)
		b.deliver(view, gen, op, func() { cb(failure[T](f)) })
	}
}

func (b *base) deliver(view ui.UI, gen uint64, op string, fn func()) {
	ok := view.Access(func() {
		if !b.current(gen) {
			b.log.Debug().Str("op", op).Msg("presenter rebound, result discarded")
			return
		}
		fn()
	})
	if !ok {
		b.log.Debug().Str("op", op).Msg("view detached, result discarded")
	}
}

func (b *base) logFailure(op string, f *Failure, err error) {
	switch f.Kind {
	case KindUnavailable, KindInternal:
		b.log.Error().Err(err).Str("op", op).Str("kind", string(f.Kind)).Msg("operation failed")
	default:
		b.log.Debug().Err(err).Str("op", op).Str("kind", string(f.Kind)).Msg("operation rejected")
	}
}
