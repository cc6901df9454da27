package task

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeStudysetGeneration synthesizes a studyset's content and starts its renders.
	TaskTypeStudysetGeneration = "studyset_generation"

	// TaskTypeRenderPoll reconciles a studyset's pending reel renders.
	TaskTypeRenderPoll = "render_poll"
)

// Common errors
var (
	ErrNilStore         = errors.New("studyset store cannot be nil")
	ErrNilGenerator     = errors.New("content generator cannot be nil")
	ErrNilRenderer      = errors.New("video renderer cannot be nil")
	ErrNilImageRenderer = errors.New("image renderer cannot be nil")
	ErrNilScheduler     = errors.New("poll scheduler cannot be nil")
	ErrNilArtifacts     = errors.New("artifact writer cannot be nil")
	ErrNilRegistry      = errors.New("job registry cannot be nil")
	ErrNilSubmitter     = errors.New("task submitter cannot be nil")
	ErrEmptyStudyset    = errors.New("studyset ID cannot be empty")
	ErrTaskPanicked     = errors.New("task panicked")
	ErrReelNotFound     = errors.New("reel not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrRunnerStopped    = errors.New("task runner is stopped")
	ErrRunnerStarted    = errors.New("task runner already started")
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Abandoner is implemented by tasks that hold a resource from submission
// until they run. The runner calls Abandon on queued tasks it drops.
type Abandoner interface {
	Abandon()
}

// TaskQueueReader provides read-only access to the task channel
// allowing workers to consume tasks without the ability to enqueue
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task
}

// TaskQueueWriter provides write access to the task queue
// allowing services to enqueue tasks for processing
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing
	// Returns an error if the queue is full or closed
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}

// Submitter accepts tasks for asynchronous execution without blocking on them.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// statusTracker holds a task's status for concurrent readers.
type statusTracker struct {
	mu     sync.Mutex
	status TaskStatus
}

func (s *statusTracker) Status() TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == "" {
		return TaskStatusPending
	}
	return s.status
}

func (s *statusTracker) setStatus(status TaskStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
