package concurrent

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrScheduleTimeout = errors.New("schedule error: timed out")
	ErrPoolClosed      = errors.New("schedule error: pool closed")
)

// GoroutinePool. bounded set of goroutines that run arbitrary tasks, used by the websocket server
// so that every ready connection does not get its own goroutine.
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
type GoroutinePool struct {
	sem  chan struct{}
	work chan func()

	done      chan struct{}
	closeOnce sync.Once
}

// NewGoroutinePool. size = max number of goroutines, queue = number of tasks waiting for an idle goroutine.
func NewGoroutinePool(size, queue int) *GoroutinePool {
	if size < 1 {
		size = 1
	}
	return &GoroutinePool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn. start n idle goroutines up front. n is capped by the pool size.
func (p *GoroutinePool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(nil)
		default:
			return
		}
	}
}

// Schedule. block until task is queued or picked up by a goroutine.
func (p *GoroutinePool) Schedule(task func()) error {
	return p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule but give up with ErrScheduleTimeout after timeout.
func (p *GoroutinePool) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return p.schedule(task, timer.C)
}

func (p *GoroutinePool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}

	select {
	case <-timeout:
		return ErrScheduleTimeout
	case <-p.done:
		return ErrPoolClosed
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *GoroutinePool) worker(task func()) {
	defer func() { <-p.sem }()

	if task != nil {
		task()
	}

	for {
		select {
		case task := <-p.work:
			task()
		case <-p.done:
			return
		}
	}
}

// Close. stop idle goroutines, tasks already running finish normally.
func (p *GoroutinePool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}
