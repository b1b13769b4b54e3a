package queue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// occupy submits a task that blocks until the returned release is called.
func occupy(t *testing.T, p *Pool) (release func()) {
	t.Helper()
	started := make(chan struct{})
	gate := make(chan struct{})
	if err := p.Submit(func() {
		close(started)
		<-gate
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("blocking task never started")
	}
	return func() { close(gate) }
}

func TestPool_RunsTasks(t *testing.T) {
	p := NewPool(Config{Core: 2, Max: 2, QueueDepth: 8}, zerolog.Nop())
	var n atomic.Int32
	for i := 0; i < 20; i++ {
		if err := p.Submit(func() { n.Add(1) }); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := n.Load(); got != 20 {
		t.Errorf("ran %d tasks, want 20", got)
	}
}

func TestPool_CallerRunsWhenSaturated(t *testing.T) {
	p := NewPool(Config{Core: 1, Max: 1, QueueDepth: 1}, zerolog.Nop())
	release := occupy(t, p)

	if err := p.Submit(func() {}); err != nil { // fills the queue
		t.Fatalf("submit: %v", err)
	}

	var ranInline bool
	if err := p.Submit(func() { ranInline = true }); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !ranInline {
		t.Fatal("expected the saturated submit to run on the caller")
	}

	release()
	_ = p.Stop(context.Background())
}

func TestPool_ElasticWorkersRetire(t *testing.T) {
	p := NewPool(Config{Core: 1, Max: 2, QueueDepth: 1, KeepAlive: 20 * time.Millisecond}, zerolog.Nop())
	release := occupy(t, p)

	_ = p.Submit(func() {}) // queued
	done := make(chan struct{})
	_ = p.Submit(func() { close(done) }) // grows the pool

	if got := p.Workers(); got != 2 {
		t.Fatalf("workers = %d, want 2", got)
	}
	<-done
	release()

	waitFor(t, func() bool { return p.Workers() == 1 })
	_ = p.Stop(context.Background())
}

func TestPool_RecoversPanics(t *testing.T) {
	p := NewPool(Config{Core: 1, Max: 1, QueueDepth: 4}, zerolog.Nop())
	_ = p.Submit(func() { panic("boom") })

	done := make(chan struct{})
	_ = p.Submit(func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
	_ = p.Stop(context.Background())
}

func TestPool_StopDrainsAndRejects(t *testing.T) {
	p := NewPool(Config{Core: 1, Max: 1, QueueDepth: 10}, zerolog.Nop())
	release := occupy(t, p)

	var n atomic.Int32
	for i := 0; i < 5; i++ {
		_ = p.Submit(func() { n.Add(1) })
	}
	go func() {
		time.Sleep(20 * time.Millisecond)
		release()
	}()

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := n.Load(); got != 5 {
		t.Errorf("drained %d tasks, want 5", got)
	}
	if err := p.Submit(func() {}); err != ErrPoolStopped {
		t.Errorf("submit after stop: got %v", err)
	}
	if p.Workers() != 0 {
		t.Errorf("workers = %d after stop", p.Workers())
	}
}

func TestPool_StopHonoursContext(t *testing.T) {
	p := NewPool(Config{Core: 1, Max: 1, QueueDepth: 1}, zerolog.Nop())
	release := occupy(t, p)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Stop(ctx); err != context.DeadlineExceeded {
		t.Errorf("stop = %v, want deadline exceeded", err)
	}
}
