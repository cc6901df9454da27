package task

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// MockTask is a simple implementation of the Task interface for testing
type MockTask struct {
	statusTracker

	TaskID      uuid.UUID
	TaskType    string
	TaskPayload []byte
	ExecuteFn   func(ctx context.Context) error
}

// NewMockTask creates a new MockTask with the given ID and type
func NewMockTask(id uuid.UUID, taskType string, payload []byte) *MockTask {
	return &MockTask{
		TaskID:      id,
		TaskType:    taskType,
		TaskPayload: payload,
		ExecuteFn:   func(ctx context.Context) error { return nil },
	}
}

// CreateMockTaskWithPayload creates a MockTask with a JSON payload.
func CreateMockTaskWithPayload(payload string) *MockTask {
	b, _ := json.Marshal(map[string]string{"data": payload})
	return NewMockTask(uuid.New(), "mock", b)
}

func (t *MockTask) ID() uuid.UUID   { return t.TaskID }
func (t *MockTask) Type() string    { return t.TaskType }
func (t *MockTask) Payload() []byte { return t.TaskPayload }

func (t *MockTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	err := t.ExecuteFn(ctx)
	if err != nil {
		t.setStatus(TaskStatusFailed)
	} else {
		t.setStatus(TaskStatusCompleted)
	}
	return err
}
