package queue

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/metrics"
)

const (
	defaultCore       = 4
	defaultMax        = 16
	defaultQueueDepth = 64
	defaultKeepAlive  = time.Minute
)

// ErrPoolStopped is returned by Submit after Stop has been called.
var ErrPoolStopped = errors.New("worker pool stopped")

// Config sizes a Pool. Zero values fall back to the package defaults.
type Config struct {
	Core       int
	Max        int
	QueueDepth int
	KeepAlive  time.Duration
}

// Pool runs submitted tasks on a bounded set of goroutines. Core workers
// live until Stop; up to Max-Core extra workers are started while the queue
// is full and retire after KeepAlive without work. When the queue is full and
// Max workers are busy the submitting goroutine runs the task itself.
type Pool struct {
	cfg   Config
	tasks chan func()
	log   zerolog.Logger

	mu      sync.Mutex
	workers int
	stopped bool
	wg      sync.WaitGroup
}

// NewPool creates a Pool and starts its core workers.
func NewPool(cfg Config, log zerolog.Logger) *Pool {
	if cfg.Core <= 0 {
		cfg.Core = defaultCore
	}
	if cfg.Max < cfg.Core {
		cfg.Max = max(cfg.Core, defaultMax)
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = defaultQueueDepth
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = defaultKeepAlive
	}

	p := &Pool{
		cfg:   cfg,
		tasks: make(chan func(), cfg.QueueDepth),
		log:   log.With().Str("component", "pool").Logger(),
	}
	p.mu.Lock()
	for i := 0; i < cfg.Core; i++ {
		p.spawn(nil, true)
	}
	p.mu.Unlock()
	return p
}

// Submit schedules fn. It never blocks on a full queue: it either grows the
// pool or runs fn on the calling goroutine.
func (p *Pool) Submit(fn func()) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolStopped
	}

	select {
	case p.tasks <- fn:
		p.mu.Unlock()
		metrics.PoolQueueDepth.Set(float64(len(p.tasks)))
		return nil
	default:
	}

	if p.workers < p.cfg.Max {
		p.spawn(fn, false)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	metrics.PoolCallerRunsTotal.Inc()
	p.log.Debug().Msg("pool saturated, running task on caller")
	p.run(fn)
	return nil
}

// Workers returns the current number of worker goroutines.
func (p *Pool) Workers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workers
}

// Stop refuses new tasks, lets the workers drain the queue and waits for
// them to exit or for ctx to end.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// spawn starts a worker. Callers must hold p.mu.
func (p *Pool) spawn(first func(), core bool) {
	p.workers++
	metrics.PoolWorkers.Set(float64(p.workers))
	p.wg.Add(1)
	go p.worker(first, core)
}

func (p *Pool) worker(first func(), core bool) {
	defer p.wg.Done()

	if first != nil {
		p.run(first)
	}

	for {
		if core {
			fn, ok := <-p.tasks
			if !ok {
				p.retire()
				return
			}
			p.run(fn)
			continue
		}

		timer := time.NewTimer(p.cfg.KeepAlive)
		select {
		case fn, ok := <-p.tasks:
			timer.Stop()
			if !ok {
				p.retire()
				return
			}
			p.run(fn)
		case <-timer.C:
			p.retire()
			return
		}
	}
}

func (p *Pool) retire() {
	p.mu.Lock()
	p.workers--
	metrics.PoolWorkers.Set(float64(p.workers))
	p.mu.Unlock()
}

// run executes fn, recovering and logging a panic.
func (p *Pool) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("task panicked")
		}
		metrics.PoolQueueDepth.Set(float64(len(p.tasks)))
	}()
	fn()
}
