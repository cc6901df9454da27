package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/scroll-api/internal/redact"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	// Generation and poll tasks share the same workers.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 8,
		QueueSize:   100,
	}
}

// TaskRunner is the bounded executor for background tasks. Submit never
// blocks: when the queue is full the task is rejected with ErrQueueFull.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	logger = logger.With("component", "task_runner")
	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)
	pool.SetErrorHandler(func(task Task, err error) {
		logger.Warn("task finished with error",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", redact.Error(err))
	})

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit queues a task for asynchronous execution.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return ErrRunnerStopped
	}

	if err := r.queue.Enqueue(task); err != nil {
		r.logger.Error("failed to enqueue task",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
		return fmt.Errorf("submit %s task: %w", task.Type(), err)
	}
	return nil
}

// Start launches the worker pool. Tasks submitted before Start stay queued
// until a worker picks them up.
func (r *TaskRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.stopped:
		return ErrRunnerStopped
	case r.started:
		return ErrRunnerStarted
	}
	r.started = true
	r.pool.Start(ctx)
	return nil
}

// Stop gracefully shuts down the task runner. Running tasks observe context
// cancellation. Tasks still queued are dropped; those implementing Abandoner
// are abandoned first, so a dropped poll task gives back its registry entry.
func (r *TaskRunner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	started := r.started
	r.mu.Unlock()

	if started {
		r.pool.Stop()
	}
	r.queue.Close()
	r.drain()
}

// drain empties the closed queue.
func (r *TaskRunner) drain() {
	dropped := 0
	for task := range r.queue.GetChannel() {
		dropped++
		if a, ok := task.(Abandoner); ok {
			a.Abandon()
		}
	}
	if dropped > 0 {
		r.logger.Info("dropped queued tasks on stop", "dropped", dropped)
	}
}

// QueueLen returns the number of tasks waiting for a worker.
func (r *TaskRunner) QueueLen() int {
	return r.queue.Len()
}
