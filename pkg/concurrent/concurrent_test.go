package concurrent

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRun(t *testing.T) {
	jobs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	results := Run[int, int](3, jobs, func(job int) int {
		return job * job
	})

	sort.Ints(results)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64, 81, 100}, results)
}

func TestWorkerPoolNoJobs(t *testing.T) {
	results := Run[string, int](0, nil, func(job string) int {
		return len(job)
	})
	assert.Empty(t, results)
}

func TestGoroutinePoolSchedule(t *testing.T) {
	pool := NewGoroutinePool(4, 2)
	defer pool.Close()
	pool.Spawn(2)

	var (
		wg    sync.WaitGroup
		count atomic.Int64
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		require.NoError(t, pool.Schedule(func() {
			defer wg.Done()
			count.Add(1)
		}))
	}
	wg.Wait()
	assert.Equal(t, int64(50), count.Load())
}

func TestGoroutinePoolScheduleTimeout(t *testing.T) {
	pool := NewGoroutinePool(1, 0)
	defer pool.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Schedule(func() {
		close(started)
		<-release
	}))
	<-started

	// the only goroutine is busy and the queue has no room
	err := pool.ScheduleTimeout(10*time.Millisecond, func() {})
	assert.ErrorIs(t, err, ErrScheduleTimeout)

	close(release)
}

func TestGoroutinePoolClosed(t *testing.T) {
	pool := NewGoroutinePool(1, 1)
	pool.Close()
	pool.Close()

	assert.ErrorIs(t, pool.Schedule(func() {}), ErrPoolClosed)
}
