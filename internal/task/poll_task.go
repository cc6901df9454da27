package task

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/generation"
	"github.com/phrazzld/scroll-api/internal/redact"
	"github.com/phrazzld/scroll-api/internal/store"
)

// DefaultPollInterval is the delay between two reconciliation sweeps.
const DefaultPollInterval = 2 * time.Second

type renderPollPayload struct {
	StudysetID uuid.UUID `json:"studyset_id"`
}

// RenderPollTask reconciles the render status of every pending reel of one
// studyset until none is pending. The caller must hold the studyset's
// registry entry before submitting the task; the task releases it on every
// exit path, panics included.
type RenderPollTask struct {
	statusTracker

	id         uuid.UUID
	studysetID uuid.UUID
	store      StudysetStore
	renderer   generation.VideoRenderer
	artifacts  ArtifactWriter
	registry   Releaser
	interval   time.Duration
	logger     *slog.Logger
}

// NewRenderPollTask creates a poll task for studysetID.
func NewRenderPollTask(
	studysetID uuid.UUID,
	st StudysetStore,
	renderer generation.VideoRenderer,
	artifacts ArtifactWriter,
	registry Releaser,
	interval time.Duration,
	logger *slog.Logger,
) (*RenderPollTask, error) {
	switch {
	case studysetID == uuid.Nil:
		return nil, ErrEmptyStudyset
	case st == nil:
		return nil, ErrNilStore
	case renderer == nil:
		return nil, ErrNilRenderer
	case artifacts == nil:
		return nil, ErrNilArtifacts
	case registry == nil:
		return nil, ErrNilRegistry
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	id := uuid.New()
	return &RenderPollTask{
		id:         id,
		studysetID: studysetID,
		store:      st,
		renderer:   renderer,
		artifacts:  artifacts,
		registry:   registry,
		interval:   interval,
		logger: logger.With(
			"task_id", id,
			"task_type", TaskTypeRenderPoll,
			"studyset_id", studysetID,
		),
	}, nil
}

// ID returns the task's unique identifier
func (t *RenderPollTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeRenderPoll.
func (t *RenderPollTask) Type() string { return TaskTypeRenderPoll }

// StudysetID returns the studyset this task polls.
func (t *RenderPollTask) StudysetID() uuid.UUID { return t.studysetID }

// Payload returns the JSON-encoded studyset reference.
func (t *RenderPollTask) Payload() []byte {
	b, _ := json.Marshal(renderPollPayload{StudysetID: t.studysetID})
	return b
}

// Execute sweeps until no reel is pending, the studyset disappears, or ctx is
// cancelled.
func (t *RenderPollTask) Execute(ctx context.Context) (err error) {
	t.setStatus(TaskStatusProcessing)

	defer func() {
		t.registry.Release(t.studysetID)
		if err != nil {
			t.setStatus(TaskStatusFailed)
		} else {
			t.setStatus(TaskStatusCompleted)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("render poll panicked", "panic", r)
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	t.logger.Info("render polling started", "interval", t.interval)

	for sweep := 1; ; sweep++ {
		pending, err := t.sweep(ctx)
		if errors.Is(err, store.ErrNotFound) {
			t.logger.Warn("studyset disappeared, stopping render polling")
			return nil
		}
		if err != nil {
			return err
		}
		if pending == 0 {
			t.logger.Info("render polling finished", "sweeps", sweep)
			return nil
		}

		t.logger.Debug("renders still pending", "pending", pending, "sweep", sweep)

		timer := time.NewTimer(t.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			t.logger.Info("render polling interrupted", "pending", pending)
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Abandon releases the registry entry of a task that will never run.
func (t *RenderPollTask) Abandon() {
	t.registry.Release(t.studysetID)
	t.logger.Info("poll task dropped before running")
}

var _ Abandoner = (*RenderPollTask)(nil)

// sweep reconciles every pending reel once and returns how many remain
// pending afterwards.
func (t *RenderPollTask) sweep(ctx context.Context) (int, error) {
	st, err := t.store.Get(t.studysetID)
	if err != nil {
		return 0, err
	}

	pending := 0
	for _, reel := range st.Reels {
		if !reel.IsPendingRender() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		stillPending, err := t.reconcile(ctx, reel)
		if err != nil {
			return 0, err
		}
		if stillPending {
			pending++
		}
	}
	return pending, nil
}

// reconcile queries one reel's render job and records the outcome.
func (t *RenderPollTask) reconcile(ctx context.Context, reel domain.Reel) (bool, error) {
	log := t.logger.With("reel_id", reel.ID, "render_id", reel.RenderID)

	state, err := t.renderer.Retrieve(ctx, reel.RenderID)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		log.Error("render status query failed", "error", redact.Error(err))
		return false, t.fail(ctx, reel.ID, err.Error())
	}

	switch {
	case state.Error != "" || generation.IsFailed(state.Status):
		msg := cmp.Or(state.Error, "render ended with status "+state.Status)
		log.Warn("render failed", "status", state.Status, "error", redact.String(msg))
		return false, t.fail(ctx, reel.ID, msg)

	case generation.IsComplete(state.Status):
		path, err := t.download(ctx, reel)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			log.Error("render download failed", "error", redact.Error(err))
			return false, t.fail(ctx, reel.ID, err.Error())
		}
		log.Info("render completed", "file", path)
		return false, t.updateReel(ctx, reel.ID, func(r *domain.Reel) {
			r.MarkRenderSucceeded(path)
		})

	default:
		status := domain.RenderStatus(state.Status)
		if status == reel.RenderStatus {
			return true, nil
		}
		log.Debug("render status changed", "from", reel.RenderStatus, "to", status)
		return true, t.updateReel(ctx, reel.ID, func(r *domain.Reel) {
			r.SetRenderStatus(status)
		})
	}
}

func (t *RenderPollTask) download(ctx context.Context, reel domain.Reel) (string, error) {
	data, err := t.renderer.Download(ctx, reel.RenderID)
	if err != nil {
		return "", fmt.Errorf("download render: %w", err)
	}
	path, err := t.artifacts.Write(videoArtifactName(t.studysetID, reel.ID), data)
	if err != nil {
		return "", fmt.Errorf("write render artifact: %w", err)
	}
	return path, nil
}

func (t *RenderPollTask) fail(ctx context.Context, reelID int, msg string) error {
	return t.updateReel(ctx, reelID, func(r *domain.Reel) {
		r.MarkRenderFailed(msg)
	})
}

func (t *RenderPollTask) updateReel(ctx context.Context, reelID int, fn func(r *domain.Reel)) error {
	_, err := t.store.Mutate(ctx, t.studysetID, func(st *domain.Studyset) error {
		reel := st.ReelByID(reelID)
		if reel == nil {
			return fmt.Errorf("%w: %d", ErrReelNotFound, reelID)
		}
		fn(reel)
		return nil
	})
	return err
}

func videoArtifactName(studysetID uuid.UUID, reelID int) string {
	return fmt.Sprintf("%s-reel-%d.mp4", studysetID, reelID)
}
