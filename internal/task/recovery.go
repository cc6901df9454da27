package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
)

// ErrGenerationInterrupted is recorded on studysets whose generation was
// still pending when the process stopped.
var ErrGenerationInterrupted = errors.New("generation interrupted by restart")

// RecoveryStore is what the Recoverer reads and repairs at startup.
type RecoveryStore interface {
	StudysetStore
	PendingRenderLister
	List() []*domain.Studyset
}

// Recoverer restores background work after a restart.
type Recoverer struct {
	store     RecoveryStore
	scheduler Scheduler
	logger    *slog.Logger
}

// NewRecoverer creates a Recoverer.
func NewRecoverer(store RecoveryStore, scheduler Scheduler, logger *slog.Logger) (*Recoverer, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	return &Recoverer{
		store:     store,
		scheduler: scheduler,
		logger:    logger.With("component", "recovery"),
	}, nil
}

// Run fails interrupted generations, then resumes render polling. It must
// run before new studysets can be created.
func (r *Recoverer) Run(ctx context.Context) error {
	failed, failErr := r.FailInterruptedGenerations(ctx)
	scheduled, pollErr := r.RecoverPollers(ctx)

	r.logger.Info("recovery finished",
		"interrupted_generations", failed,
		"pollers_scheduled", scheduled)
	return errors.Join(failErr, pollErr)
}

// RecoverPollers submits one poll task per studyset with pending renders.
// Studysets that already have an active poll task are skipped, so repeated
// calls never start a second poller for the same studyset.
func (r *Recoverer) RecoverPollers(ctx context.Context) (int, error) {
	ids := r.store.PendingRenderIDs()
	if len(ids) == 0 {
		return 0, nil
	}

	var errs []error
	scheduled := 0
	for _, id := range ids {
		ok, err := r.scheduler.Schedule(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("studyset %s: %w", id, err))
			continue
		}
		if ok {
			scheduled++
		}
	}

	r.logger.Info("render polling recovered", "pending_studysets", len(ids), "scheduled", scheduled)
	return scheduled, errors.Join(errs...)
}

// FailInterruptedGenerations marks studysets still pending from a previous
// run as failed. Their generation task died with the process and is never
// retried.
func (r *Recoverer) FailInterruptedGenerations(ctx context.Context) (int, error) {
	var pending []uuid.UUID
	for _, st := range r.store.List() {
		if st.Status == domain.StudysetStatusPending {
			pending = append(pending, st.ID)
		}
	}

	var errs []error
	for _, id := range pending {
		_, err := r.store.Mutate(ctx, id, func(st *domain.Studyset) error {
			return st.Fail(ErrGenerationInterrupted.Error())
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("studyset %s: %w", id, err))
			continue
		}
		r.logger.Warn("interrupted generation marked failed", "studyset_id", id)
	}
	return len(pending) - len(errs), errors.Join(errs...)
}
