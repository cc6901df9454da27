package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNoHandler is returned when an event type has no subscribers. Emitting
// work nobody will pick up is treated as a scheduling failure.
var ErrNoHandler = errors.New("no handler subscribed for event type")

// Dispatcher routes events to the handlers subscribed to their type. It runs
// handlers synchronously on the emitting goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string][]EventHandler),
		logger:   logger.With(slog.String("component", "event_dispatcher")),
	}
}

// Subscribe registers handler for events of eventType.
func (d *Dispatcher) Subscribe(eventType string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	d.logger.Debug("handler subscribed",
		slog.String("event_type", eventType),
		slog.Int("handler_count", len(d.handlers[eventType])))
}

// HandlerCount returns the number of handlers subscribed to eventType.
func (d *Dispatcher) HandlerCount(eventType string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[eventType])
}

// EmitEvent delivers event to every handler subscribed to its type. All
// handlers run even if some fail; their errors are joined.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *TaskRequestEvent) error {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[event.Type]...)
	d.mu.RUnlock()

	log := d.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))

	if len(handlers) == 0 {
		log.Warn("no handler for event")
		return fmt.Errorf("%w: %s", ErrNoHandler, event.Type)
	}

	var errs []error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("handler failed to process event",
				slog.Int("handler_index", i),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	log.Debug("event dispatched",
		slog.Int("handler_count", len(handlers)),
		slog.Int("failed", len(errs)))
	return errors.Join(errs...)
}
