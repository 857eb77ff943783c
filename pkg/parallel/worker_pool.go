package parallel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-wayfind/pkg/logging"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	panics    atomic.Int64
	logger    logging.Logger
}

var (
	// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")

	// ErrPoolClosed is returned when work is submitted to a closed pool.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrTaskPanicked is returned by Map when one or more tasks panicked.
	ErrTaskPanicked = errors.New("task panicked")
)

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = 4096

// NewWorkerPool creates a new worker pool with specified number of workers.
// Recovered task panics are logged to logger; nil discards them.
// Returns an error if the worker count exceeds MaxWorkers.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2), // Buffer for 2x workers
		logger:    logger.With(logging.Component("worker_pool")),
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Panics returns the number of recovered task panics
func (wp *WorkerPool) Panics() int64 {
	return wp.panics.Load()
}

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run executes one task, recovering a panic so the worker survives
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panics.Add(1)
			wp.logger.Error("worker panic recovered", logging.Any("panic", r))
		}
	}()
	task()
}

// Submit adds a task to the worker pool
// Returns false if the pool is closed, true if task was submitted
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}

	// Safe to send because we hold the lock and pool is not closed
	wp.taskQueue <- task
	return true
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait waits for all submitted tasks to complete
func (wp *WorkerPool) Wait() {
	wp.Close()
}

// Map applies fn to every item on a fresh pool of workers and returns the
// results in input order. A task that panics leaves its result at the zero
// value and Map reports ErrTaskPanicked alongside the partial results.
func Map[T, R any](workers int, logger logging.Logger, items []T, fn func(int, T) R) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if workers > len(items) {
		workers = len(items)
	}

	pool, err := NewWorkerPool(workers, logger)
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		i, item := i, item
		if !pool.Submit(func() { results[i] = fn(i, item) }) {
			pool.Close()
			return nil, ErrPoolClosed
		}
	}
	pool.Wait()

	if n := pool.Panics(); n > 0 {
		return results, fmt.Errorf("%w: %d of %d tasks", ErrTaskPanicked, n, len(items))
	}
	return results, nil
}
