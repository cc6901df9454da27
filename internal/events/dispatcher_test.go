package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler counts the events it receives.
type recordingHandler struct {
	mu     sync.Mutex
	events []*TaskRequestEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *TaskRequestEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestEvent(t *testing.T) *TaskRequestEvent {
	t.Helper()
	event, err := NewStudysetGenerationEvent(StudysetGenerationPayload{
		StudysetID: uuid.New(),
		Prompt:     "volcanoes",
	})
	require.NoError(t, err)
	return event
}

func TestDispatcher_NoHandler(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher()
	err := d.EmitEvent(context.Background(), newTestEvent(t))
	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Contains(t, err.Error(), TypeStudysetGeneration)
}

func TestDispatcher_RoutesByType(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher()
	generation := &recordingHandler{}
	other := &recordingHandler{}
	d.Subscribe(TypeStudysetGeneration, generation)
	d.Subscribe("artifact_cleanup", other)

	event := newTestEvent(t)
	require.NoError(t, d.EmitEvent(context.Background(), event))

	assert.Equal(t, 1, generation.count())
	assert.Same(t, event, generation.events[0])
	assert.Equal(t, 0, other.count())
	assert.Equal(t, 1, d.HandlerCount(TypeStudysetGeneration))
	assert.Equal(t, 0, d.HandlerCount("unknown"))
}

func TestDispatcher_JoinsHandlerErrors(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher()
	errA := errors.New("queue full")
	errB := errors.New("factory rejected request")
	ok := &recordingHandler{}
	d.Subscribe(TypeStudysetGeneration, &recordingHandler{err: errA})
	d.Subscribe(TypeStudysetGeneration, ok)
	d.Subscribe(TypeStudysetGeneration, &recordingHandler{err: errB})

	err := d.EmitEvent(context.Background(), newTestEvent(t))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 1, ok.count(), "later handlers still run after a failure")
}

func TestDispatcher_HandlerFunc(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher()
	var got uuid.UUID
	d.Subscribe(TypeStudysetGeneration, HandlerFunc(func(_ context.Context, event *TaskRequestEvent) error {
		var p StudysetGenerationPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		got = p.StudysetID
		return nil
	}))

	event := newTestEvent(t)
	require.NoError(t, d.EmitEvent(context.Background(), event))

	var want StudysetGenerationPayload
	require.NoError(t, event.UnmarshalPayload(&want))
	assert.Equal(t, want.StudysetID, got)
}
