package task

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/generation"
)

// FactoryDeps are the shared collaborators of every task the factory builds.
// Videos and Images may be nil, in which case requests to render them are
// rejected.
type FactoryDeps struct {
	Store     StudysetStore
	Generator generation.ContentGenerator
	Videos    generation.VideoRenderer
	Images    generation.ImageRenderer
	Artifacts ArtifactWriter
	Registry  *JobRegistry
	Submitter Submitter
}

// FactoryConfig tunes the tasks the factory builds.
type FactoryConfig struct {
	VideoDurationSeconds int
	PollInterval         time.Duration
}

// StudysetTaskFactory creates generation and poll tasks wired to the same
// store, registry and runner.
type StudysetTaskFactory struct {
	deps      FactoryDeps
	config    FactoryConfig
	scheduler *PollScheduler
	logger    *slog.Logger
}

// NewStudysetTaskFactory validates deps and builds the poll scheduler.
func NewStudysetTaskFactory(
	deps FactoryDeps,
	config FactoryConfig,
	logger *slog.Logger,
) (*StudysetTaskFactory, error) {
	switch {
	case deps.Store == nil:
		return nil, ErrNilStore
	case deps.Generator == nil:
		return nil, ErrNilGenerator
	case deps.Artifacts == nil:
		return nil, ErrNilArtifacts
	}

	f := &StudysetTaskFactory{
		deps:   deps,
		config: config,
		logger: logger.With("component", "studyset_task_factory"),
	}

	scheduler, err := NewPollScheduler(deps.Registry, deps.Submitter, f.CreatePollTask, logger)
	if err != nil {
		return nil, err
	}
	f.scheduler = scheduler
	return f, nil
}

// Scheduler returns the poll scheduler shared by generation tasks and recovery.
func (f *StudysetTaskFactory) Scheduler() *PollScheduler {
	return f.scheduler
}

// CreateGenerationTask creates a generation task for req.
func (f *StudysetTaskFactory) CreateGenerationTask(req GenerationRequest) (Task, error) {
	task, err := NewStudysetGenerationTask(req, GenerationDeps{
		Store:                f.deps.Store,
		Generator:            f.deps.Generator,
		Videos:               f.deps.Videos,
		Images:               f.deps.Images,
		Artifacts:            f.deps.Artifacts,
		Scheduler:            f.scheduler,
		VideoDurationSeconds: f.config.VideoDurationSeconds,
	}, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreatePollTask creates a poll task for studysetID. The caller must already
// hold the studyset's registry entry.
func (f *StudysetTaskFactory) CreatePollTask(studysetID uuid.UUID) (Task, error) {
	if f.deps.Videos == nil {
		return nil, ErrNilRenderer
	}
	task, err := NewRenderPollTask(
		studysetID,
		f.deps.Store,
		f.deps.Videos,
		f.deps.Artifacts,
		f.deps.Registry,
		f.config.PollInterval,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
