package task

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/generation"
	"github.com/phrazzld/scroll-api/internal/redact"
)

// GenerationRequest describes one studyset generation.
type GenerationRequest struct {
	StudysetID   uuid.UUID `json:"studyset_id"`
	Prompt       string    `json:"prompt"`
	RenderReels  bool      `json:"render_reels"`
	RenderImages bool      `json:"render_images"`
}

// Scheduler starts a poll task for a studyset unless one is already running.
type Scheduler interface {
	Schedule(ctx context.Context, studysetID uuid.UUID) (bool, error)
}

// GenerationDeps are the collaborators of a StudysetGenerationTask. Videos
// and Scheduler are only required when reels are rendered; Images and
// Artifacts only when images are rendered.
type GenerationDeps struct {
	Store                StudysetStore
	Generator            generation.ContentGenerator
	Videos               generation.VideoRenderer
	Images               generation.ImageRenderer
	Artifacts            ArtifactWriter
	Scheduler            Scheduler
	VideoDurationSeconds int
}

// StudysetGenerationTask synthesizes a studyset's content exactly once, then
// starts its reel renders and renders its images when requested.
type StudysetGenerationTask struct {
	statusTracker

	id     uuid.UUID
	req    GenerationRequest
	deps   GenerationDeps
	logger *slog.Logger
}

// NewStudysetGenerationTask validates req against the available collaborators.
func NewStudysetGenerationTask(
	req GenerationRequest,
	deps GenerationDeps,
	logger *slog.Logger,
) (*StudysetGenerationTask, error) {
	switch {
	case req.StudysetID == uuid.Nil:
		return nil, ErrEmptyStudyset
	case deps.Store == nil:
		return nil, ErrNilStore
	case deps.Generator == nil:
		return nil, ErrNilGenerator
	case req.RenderReels && deps.Videos == nil:
		return nil, ErrNilRenderer
	case req.RenderReels && deps.Scheduler == nil:
		return nil, ErrNilScheduler
	case req.RenderImages && deps.Images == nil:
		return nil, ErrNilImageRenderer
	case req.RenderImages && deps.Artifacts == nil:
		return nil, ErrNilArtifacts
	}

	id := uuid.New()
	return &StudysetGenerationTask{
		id:   id,
		req:  req,
		deps: deps,
		logger: logger.With(
			"task_id", id,
			"task_type", TaskTypeStudysetGeneration,
			"studyset_id", req.StudysetID,
		),
	}, nil
}

// ID returns the task's unique identifier
func (t *StudysetGenerationTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeStudysetGeneration.
func (t *StudysetGenerationTask) Type() string { return TaskTypeStudysetGeneration }

// Payload returns the JSON-encoded request.
func (t *StudysetGenerationTask) Payload() []byte {
	b, _ := json.Marshal(t.req)
	return b
}

// Execute runs the generation. Synthesis failures are recorded on the
// studyset as its terminal error; per-item render failures are recorded on
// the item and never fail the task.
func (t *StudysetGenerationTask) Execute(ctx context.Context) (err error) {
	t.setStatus(TaskStatusProcessing)

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("studyset generation panicked", "panic", r)
			_ = t.recordFailure(context.WithoutCancel(ctx), fmt.Sprintf("internal error: %v", r))
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
		if err != nil {
			t.setStatus(TaskStatusFailed)
		} else {
			t.setStatus(TaskStatusCompleted)
		}
	}()

	current, err := t.deps.Store.Get(t.req.StudysetID)
	if err != nil {
		return fmt.Errorf("load studyset: %w", err)
	}
	if current.Status != domain.StudysetStatusPending {
		t.logger.Warn("studyset already generated, skipping", "status", current.Status)
		return nil
	}

	t.logger.Info("generating studyset content")
	content, genErr := t.deps.Generator.Generate(ctx, t.req.Prompt)
	if genErr != nil {
		t.logger.Error("content synthesis failed", "error", redact.Error(genErr))
		if err := t.recordFailure(ctx, genErr.Error()); err != nil {
			return err
		}
		return fmt.Errorf("generate studyset content: %w", genErr)
	}

	st, err := t.deps.Store.Mutate(ctx, t.req.StudysetID, func(st *domain.Studyset) error {
		return st.ApplyContent(content)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrStudysetNotPending) {
			_ = t.recordFailure(ctx, err.Error())
		}
		return fmt.Errorf("apply generated content: %w", err)
	}
	t.logger.Info("studyset ready",
		"questions", len(st.Questions),
		"posts", len(st.Posts),
		"images", len(st.Images),
		"reels", len(st.Reels))

	if t.req.RenderReels {
		t.startReelRenders(ctx, st)
	}
	if t.req.RenderImages {
		t.renderImages(ctx, st)
	}
	return nil
}

func (t *StudysetGenerationTask) recordFailure(ctx context.Context, msg string) error {
	_, err := t.deps.Store.Mutate(ctx, t.req.StudysetID, func(st *domain.Studyset) error {
		return st.Fail(msg)
	})
	if err != nil {
		t.logger.Error("failed to record generation failure", "error", err)
		return fmt.Errorf("record generation failure: %w", err)
	}
	return nil
}

// startReelRenders creates one render job per reel with a prompt and hands
// the studyset to a poll task if at least one job was created.
func (t *StudysetGenerationTask) startReelRenders(ctx context.Context, st *domain.Studyset) {
	created := 0
	for _, reel := range st.Reels {
		prompt := strings.TrimSpace(reel.VideoPrompt)
		if prompt == "" {
			continue
		}
		log := t.logger.With("reel_id", reel.ID)

		job, err := t.deps.Videos.Create(ctx, prompt, t.deps.VideoDurationSeconds)
		if err == nil && job.ID == "" {
			err = fmt.Errorf("%w: render job has no id", generation.ErrRenderFailed)
		}
		if err != nil {
			log.Warn("render create failed", "error", redact.Error(err))
			t.updateReel(ctx, reel.ID, func(r *domain.Reel) {
				r.MarkRenderFailed(err.Error())
			})
			continue
		}

		status := domain.RenderStatus(cmp.Or(job.Status, generation.StatusSubmitted))
		if t.updateReel(ctx, reel.ID, func(r *domain.Reel) {
			r.MarkRenderSubmitted(job.ID, status)
		}) {
			created++
			log.Info("render submitted", "render_id", job.ID, "render_status", status)
		}
	}

	if created == 0 {
		return
	}

	acquired, err := t.deps.Scheduler.Schedule(ctx, t.req.StudysetID)
	switch {
	case err != nil:
		t.logger.Error("failed to schedule render polling", "error", err)
	case !acquired:
		t.logger.Info("render polling already running", "renders", created)
	default:
		t.logger.Info("render polling scheduled", "renders", created)
	}
}

func (t *StudysetGenerationTask) updateReel(ctx context.Context, reelID int, fn func(r *domain.Reel)) bool {
	_, err := t.deps.Store.Mutate(ctx, t.req.StudysetID, func(st *domain.Studyset) error {
		reel := st.ReelByID(reelID)
		if reel == nil {
			return fmt.Errorf("%w: %d", ErrReelNotFound, reelID)
		}
		fn(reel)
		return nil
	})
	if err != nil {
		t.logger.Error("failed to update reel", "reel_id", reelID, "error", err)
		return false
	}
	return true
}

// renderImages generates each prompted image in turn and records the written
// artifact or the failure on the image.
func (t *StudysetGenerationTask) renderImages(ctx context.Context, st *domain.Studyset) {
	for _, img := range st.Images {
		prompt := strings.TrimSpace(img.ImagePrompt)
		if prompt == "" {
			continue
		}
		log := t.logger.With("image_id", img.ID)

		path, renderErr := t.renderImage(ctx, img.ID, prompt)
		if renderErr != nil {
			log.Warn("image render failed", "error", redact.Error(renderErr))
		} else {
			log.Info("image rendered", "file", path)
		}

		_, err := t.deps.Store.Mutate(ctx, t.req.StudysetID, func(st *domain.Studyset) error {
			image := st.ImageByID(img.ID)
			if image == nil {
				return fmt.Errorf("%w: %d", ErrImageNotFound, img.ID)
			}
			if renderErr != nil {
				image.MarkFailed(renderErr.Error())
			} else {
				image.MarkRendered(path)
			}
			return nil
		})
		if err != nil {
			log.Error("failed to update image", "error", err)
		}
	}
}

func (t *StudysetGenerationTask) renderImage(ctx context.Context, imageID int, prompt string) (string, error) {
	rendered, err := t.deps.Images.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}
	if len(rendered.Data) == 0 {
		return "", fmt.Errorf("%w: empty image", generation.ErrInvalidResponse)
	}
	name := fmt.Sprintf("%s-image-%d%s", t.req.StudysetID, imageID, imageExtension(rendered.MIMEType))
	return t.deps.Artifacts.Write(name, rendered.Data)
}

func imageExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
