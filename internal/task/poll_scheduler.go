package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// PollScheduler starts render poll tasks, at most one per studyset.
type PollScheduler struct {
	registry  *JobRegistry
	submitter Submitter
	newTask   func(studysetID uuid.UUID) (Task, error)
	logger    *slog.Logger
}

// NewPollScheduler returns a scheduler that builds poll tasks with newTask
// and submits them to submitter.
func NewPollScheduler(
	registry *JobRegistry,
	submitter Submitter,
	newTask func(studysetID uuid.UUID) (Task, error),
	logger *slog.Logger,
) (*PollScheduler, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if submitter == nil {
		return nil, ErrNilSubmitter
	}
	return &PollScheduler{
		registry:  registry,
		submitter: submitter,
		newTask:   newTask,
		logger:    logger.With("component", "poll_scheduler"),
	}, nil
}

// Schedule acquires the studyset's registry entry and submits a poll task
// that owns it. It reports false without error when a poll task is already
// running. If the task cannot be built or submitted the entry is released.
func (s *PollScheduler) Schedule(ctx context.Context, studysetID uuid.UUID) (bool, error) {
	if !s.registry.TryAcquire(studysetID) {
		s.logger.Debug("poll task already active", "studyset_id", studysetID)
		return false, nil
	}

	task, err := s.newTask(studysetID)
	if err != nil {
		s.registry.Release(studysetID)
		return false, fmt.Errorf("create poll task: %w", err)
	}

	if err := s.submitter.Submit(ctx, task); err != nil {
		s.registry.Release(studysetID)
		s.logger.Error("failed to submit poll task, registry entry released",
			"studyset_id", studysetID,
			"error", err)
		return false, fmt.Errorf("submit poll task: %w", err)
	}

	s.logger.Info("poll task submitted", "studyset_id", studysetID, "task_id", task.ID())
	return true, nil
}
