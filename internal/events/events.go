package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TypeStudysetGeneration requests content generation for one studyset.
const TypeStudysetGeneration = "studyset_generation"

// ErrInvalidPayload is returned when an event payload is missing required fields.
var ErrInvalidPayload = errors.New("invalid event payload")

// TaskRequestEvent is a typed, JSON-encoded request for background work.
type TaskRequestEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// StudysetGenerationPayload is the payload of a TypeStudysetGeneration event.
type StudysetGenerationPayload struct {
	StudysetID   uuid.UUID `json:"studyset_id"`
	Prompt       string    `json:"prompt"`
	RenderReels  bool      `json:"render_reels"`
	RenderImages bool      `json:"render_images"`
}

// Validate reports whether the payload identifies a studyset and a prompt.
func (p StudysetGenerationPayload) Validate() error {
	if p.StudysetID == uuid.Nil {
		return fmt.Errorf("%w: studyset_id is required", ErrInvalidPayload)
	}
	if p.Prompt == "" {
		return fmt.Errorf("%w: prompt is required", ErrInvalidPayload)
	}
	return nil
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates an event of eventType carrying payload.
func NewTaskRequestEvent(eventType string, payload any) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", eventType, err)
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewStudysetGenerationEvent validates p and wraps it in a generation event.
func NewStudysetGenerationEvent(p StudysetGenerationPayload) (*TaskRequestEvent, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return NewTaskRequestEvent(TypeStudysetGeneration, p)
}

// EventHandler acts on events it has subscribed to.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskRequestEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	return f(ctx, event)
}

// EventEmitter publishes events to their subscribers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
