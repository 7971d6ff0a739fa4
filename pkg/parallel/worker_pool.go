// Package parallel provides the worker pool used to spread per-source
// reachability traversals and per-origin path enumeration across CPUs.
package parallel

import (
	"runtime"
	"sync"

	"github.com/pathscope/pathscope/pkg/logging"
)

// WorkerPool manages a fixed set of worker goroutines consuming a task queue.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
}

// NewWorkerPool creates a pool with the given number of workers. Zero or
// negative falls back to runtime.NumCPU().
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// worker processes tasks from the queue until the queue closes.
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// A panicking task must not take the worker down with it.
		func() {
			defer func() {
				if r := recover(); r != nil {
					logging.ErrorLog("worker panic recovered",
						logging.Component("parallel"),
						logging.Any("panic", r))
				}
			}()
			task()
		}()
	}
}

// Submit adds a task to the pool's queue. Blocks when the queue is full.
func (wp *WorkerPool) Submit(task func()) {
	wp.taskQueue <- task
}

// Wait closes the queue and blocks until every submitted task has finished.
// The pool cannot be reused afterwards.
func (wp *WorkerPool) Wait() {
	wp.once.Do(func() {
		close(wp.taskQueue)
	})
	wp.wg.Wait()
}

// ForEach runs fn over items using a fresh pool of the given size and waits
// for completion. Each invocation receives the item's index and value, so
// callers can write results into pre-sized slices without locking.
func ForEach(workers int, items []string, fn func(i int, item string)) {
	if len(items) == 0 {
		return
	}

	pool := NewWorkerPool(workers)
	for i, item := range items {
		pool.Submit(func() { fn(i, item) })
	}
	pool.Wait()
}
