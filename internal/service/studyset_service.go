package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/events"
	"github.com/phrazzld/scroll-api/internal/redact"
)

// StudysetStore is the store surface the studyset service uses.
type StudysetStore interface {
	CreateStudyset(ctx context.Context, prompt string) (*domain.Studyset, error)
	Get(id uuid.UUID) (*domain.Studyset, error)
	List() []*domain.Studyset
	Mutate(ctx context.Context, id uuid.UUID, fn func(st *domain.Studyset) error) (*domain.Studyset, error)
}

// CreateStudysetInput carries a create-studyset request.
type CreateStudysetInput struct {
	Prompt       string
	RenderReels  bool
	RenderImages bool
}

// StudysetView is a studyset together with its flattened, ordered feed.
type StudysetView struct {
	Studyset *domain.Studyset
	Feed     []domain.FeedEntry
}

// StudysetSummary is the list representation of a studyset.
type StudysetSummary struct {
	ID             uuid.UUID
	Status         domain.StudysetStatus
	Title          string
	Prompt         string
	Error          string
	PendingRenders int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StudysetService provides studyset operations
type StudysetService interface {
	// CreateStudysetAndEnqueue records a pending studyset and requests its
	// generation without waiting for it.
	CreateStudysetAndEnqueue(ctx context.Context, input CreateStudysetInput) (*domain.Studyset, error)

	// GetStudyset returns the studyset and its feed.
	GetStudyset(ctx context.Context, id uuid.UUID) (*StudysetView, error)

	// ListStudysets returns summaries in creation order.
	ListStudysets(ctx context.Context) ([]StudysetSummary, error)
}

type studysetServiceImpl struct {
	store        StudysetStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewStudysetService creates a new StudysetService
// It returns an error if any of the required dependencies are nil.
func NewStudysetService(
	store StudysetStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (StudysetService, error) {
	if store == nil {
		return nil, &ServiceError{Service: "studyset", Operation: "create_service", Message: "store cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Service: "studyset", Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &studysetServiceImpl{
		store:        store,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "studyset_service"),
	}, nil
}

// CreateStudysetAndEnqueue creates a pending studyset and emits a generation
// event. If the event cannot be delivered the studyset is failed so clients
// never wait on work that was not queued.
func (s *studysetServiceImpl) CreateStudysetAndEnqueue(
	ctx context.Context,
	input CreateStudysetInput,
) (*domain.Studyset, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, ErrInvalidPrompt
	}

	st, err := s.store.CreateStudyset(ctx, prompt)
	if err != nil {
		s.logger.Error("failed to create studyset", "error", err)
		return nil, NewServiceError("studyset", "create_studyset", "failed to save studyset", err)
	}

	s.logger.Info("studyset created with pending status",
		"studyset_id", st.ID,
		"render_reels", input.RenderReels,
		"render_images", input.RenderImages)

	event, err := events.NewStudysetGenerationEvent(events.StudysetGenerationPayload{
		StudysetID:   st.ID,
		Prompt:       st.Prompt,
		RenderReels:  input.RenderReels,
		RenderImages: input.RenderImages,
	})
	if err == nil {
		err = s.eventEmitter.EmitEvent(ctx, event)
	}
	if err != nil {
		s.logger.Error("failed to enqueue studyset generation",
			"error", redact.Error(err),
			"studyset_id", st.ID)
		s.failUnscheduled(ctx, st.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrSchedulingFailed, err)
	}

	s.logger.Info("studyset generation requested",
		"studyset_id", st.ID,
		"event_id", event.ID)
	return st, nil
}

func (s *studysetServiceImpl) failUnscheduled(ctx context.Context, id uuid.UUID, cause error) {
	_, err := s.store.Mutate(context.WithoutCancel(ctx), id, func(st *domain.Studyset) error {
		return st.Fail(fmt.Sprintf("%s: %v", ErrSchedulingFailed, cause))
	})
	if err != nil && !errors.Is(err, domain.ErrStudysetNotPending) {
		s.logger.Error("failed to mark unscheduled studyset", "error", err, "studyset_id", id)
	}
}

// GetStudyset returns the studyset with its flattened feed.
func (s *studysetServiceImpl) GetStudyset(ctx context.Context, id uuid.UUID) (*StudysetView, error) {
	st, err := s.store.Get(id)
	if err != nil {
		return nil, NewServiceError("studyset", "get_studyset", "failed to retrieve studyset", err)
	}

	s.logger.Debug("retrieved studyset",
		"studyset_id", id,
		"status", st.Status)

	return &StudysetView{Studyset: st, Feed: st.Feed()}, nil
}

// ListStudysets returns summaries of all studysets in creation order.
func (s *studysetServiceImpl) ListStudysets(ctx context.Context) ([]StudysetSummary, error) {
	all := s.store.List()
	out := make([]StudysetSummary, 0, len(all))
	for _, st := range all {
		out = append(out, StudysetSummary{
			ID:             st.ID,
			Status:         st.Status,
			Title:          st.Title,
			Prompt:         st.Prompt,
			Error:          st.Error,
			PendingRenders: st.PendingReelCount(),
			CreatedAt:      st.CreatedAt,
			UpdatedAt:      st.UpdatedAt,
		})
	}
	return out, nil
}
