package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerOnlyLatestDelivers(t *testing.T) {
	d := NewDebouncer[string](10 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var delivered []string
	deliver := func(result string, err error) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, result)
	}

	ctx := context.Background()
	for _, q := range []string{"o", "or", "orc", "orchid"} {
		query := q
		d.Do(ctx, func(context.Context) (string, error) {
			return query, nil
		}, deliver)
		time.Sleep(2 * time.Millisecond) // typing cadence faster than the delay
	}

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"orchid"}, delivered)
}

func TestDebouncerCancelsInFlightRun(t *testing.T) {
	d := NewDebouncer[int](0)
	defer d.Stop()

	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var delivered []int
	deliver := func(result int, err error) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, result)
	}

	ctx := context.Background()

	// Slow first search blocks until released.
	d.Do(ctx, func(runCtx context.Context) (int, error) {
		close(started)
		<-release
		return 1, runCtx.Err()
	}, deliver)

	<-started

	// Second search supersedes the first while it is still running.
	done := make(chan struct{})
	d.Do(ctx, func(context.Context) (int, error) {
		return 2, nil
	}, func(result int, err error) {
		deliver(result, err)
		close(done)
	})

	close(release)
	<-done
	time.Sleep(20 * time.Millisecond) // give the stale run time to (not) deliver

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2}, delivered)
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer[int](5 * time.Millisecond)

	var mu sync.Mutex
	deliveredCount := 0

	d.Do(context.Background(), func(context.Context) (int, error) {
		return 1, nil
	}, func(int, error) {
		mu.Lock()
		deliveredCount++
		mu.Unlock()
	})

	d.Stop()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, deliveredCount)
}
