package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsCallbacksInOrderOnRunGoroutine(t *testing.T) {
	l := NewLoop()
	var got []int // only touched on the loop

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 3; i++ {
			i := i
			assert.True(t, l.Access(func() { got = append(got, i) }))
		}
		l.Access(l.Detach)
	}()

	require.NoError(t, l.Run(context.Background()))
	wg.Wait()
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestLoop_ReentrantAccessDoesNotBlock(t *testing.T) {
	l := NewLoop()
	var order []string

	l.Access(func() {
		order = append(order, "outer")
		l.Access(func() {
			order = append(order, "inner")
			l.Detach()
		})
		order = append(order, "outer-done")
	})

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []string{"outer", "outer-done", "inner"}, order)
}

func TestLoop_DiscardsAfterDetach(t *testing.T) {
	l := NewLoop()
	ran := false
	l.Access(func() { ran = true })
	l.Detach()

	assert.False(t, l.Access(func() { ran = true }))
	require.NoError(t, l.Run(context.Background()))
	assert.False(t, ran)
	assert.True(t, l.Detached())
}

func TestLoop_DetachStopsRemainingBatch(t *testing.T) {
	l := NewLoop()
	second := false
	l.Access(l.Detach)
	l.Access(func() { second = true })

	require.NoError(t, l.Run(context.Background()))
	assert.False(t, second)
}

func TestLoop_ContextEndDetaches(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, l.Access(func() {}))

	select {
	case <-l.Done():
	default:
		t.Fatal("done channel not closed")
	}
}
