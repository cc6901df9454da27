package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/events"
)

// GenerationTaskCreator builds generation tasks from requests.
type GenerationTaskCreator interface {
	CreateGenerationTask(req GenerationRequest) (Task, error)
}

// TaskFactoryEventHandler implements the events.EventHandler interface
// to turn studyset generation events into tasks on the runner.
type TaskFactoryEventHandler struct {
	taskFactory GenerationTaskCreator
	taskRunner  Submitter
	logger      *slog.Logger
}

// NewTaskFactoryEventHandler creates a new event handler that uses the given task factory
// to create tasks, and submits them to the provided task runner.
func NewTaskFactoryEventHandler(
	taskFactory GenerationTaskCreator,
	taskRunner Submitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent creates a generation task from the event payload and submits
// it. Events of other types are ignored.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != events.TypeStudysetGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.StudysetGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.StudysetID == uuid.Nil {
		return fmt.Errorf("%w: event %s", ErrEmptyStudyset, event.ID)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("event %s: %w", event.ID, err)
	}

	task, err := h.taskFactory.CreateGenerationTask(GenerationRequest{
		StudysetID:   payload.StudysetID,
		Prompt:       payload.Prompt,
		RenderReels:  payload.RenderReels,
		RenderImages: payload.RenderImages,
	})
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"studyset_id", payload.StudysetID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"studyset_id", payload.StudysetID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted successfully",
		"task_id", task.ID(),
		"studyset_id", payload.StudysetID,
		"event_id", event.ID)
	return nil
}

// Ensure TaskFactoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)
