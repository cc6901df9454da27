package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/events"
	"github.com/phrazzld/scroll-api/internal/generation"
	"github.com/phrazzld/scroll-api/internal/platform/gemini"
	"github.com/phrazzld/scroll-api/internal/service"
	"github.com/phrazzld/scroll-api/internal/store"
	"github.com/phrazzld/scroll-api/internal/task"
	"golang.org/x/sync/errgroup"
)

// collaborators are the external generative backends.
type collaborators struct {
	generator generation.ContentGenerator
	videos    generation.VideoRenderer
	images    generation.ImageRenderer
}

// newGeminiCollaborators builds content, video and image collaborators that
// share one genai client.
func newGeminiCollaborators(
	ctx context.Context,
	cfg config.LLMConfig,
	validator gemini.PayloadValidator,
	logger *slog.Logger,
) (collaborators, error) {
	client, err := gemini.NewClient(ctx, logger, cfg)
	if err != nil {
		return collaborators{}, fmt.Errorf("failed to create gemini client: %w", err)
	}

	generator, err := gemini.NewContentGenerator(client, cfg, validator, logger.With("component", "content_generator"))
	if err != nil {
		return collaborators{}, fmt.Errorf("failed to initialize content generator: %w", err)
	}
	videos, err := gemini.NewVideoRenderer(client, cfg, logger.With("component", "video_renderer"))
	if err != nil {
		return collaborators{}, fmt.Errorf("failed to initialize video renderer: %w", err)
	}
	images, err := gemini.NewImageRenderer(client, cfg, logger.With("component", "image_renderer"))
	if err != nil {
		return collaborators{}, fmt.Errorf("failed to initialize image renderer: %w", err)
	}

	return collaborators{generator: generator, videos: videos, images: images}, nil
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	store     *store.Store
	artifacts *store.ArtifactStore

	studysetService service.StudysetService
	userService     service.UserService

	eventEmitter *events.Dispatcher
	registry     *task.JobRegistry
	taskRunner   *task.TaskRunner
	recoverer    *task.Recoverer

	closeStore func() error
}

// newApplication wires the store, the task pipeline and the services.
// The task runner is created but not started; Run starts it.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	st *store.Store,
	collab collaborators,
) (*application, error) {
	app := &application{
		config:     cfg,
		logger:     logger,
		store:      st,
		artifacts:  store.NewArtifactStore(cfg.Store.ArtifactsDir),
		registry:   task.NewJobRegistry(),
		closeStore: func() error { return nil },
	}

	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)

	factory, err := task.NewStudysetTaskFactory(task.FactoryDeps{
		Store:     st,
		Generator: collab.generator,
		Videos:    collab.videos,
		Images:    collab.images,
		Artifacts: app.artifacts,
		Registry:  app.registry,
		Submitter: app.taskRunner,
	}, task.FactoryConfig{
		VideoDurationSeconds: cfg.LLM.VideoDurationSeconds,
		PollInterval:         cfg.Task.PollInterval(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	app.recoverer, err = task.NewRecoverer(st, factory.Scheduler(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create recoverer: %w", err)
	}

	app.eventEmitter = events.NewDispatcher(logger)
	app.eventEmitter.Subscribe(events.TypeStudysetGeneration,
		task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger))

	app.studysetService, err = service.NewStudysetService(st, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create studyset service: %w", err)
	}
	app.userService, err = service.NewUserService(st, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("application initialized",
		"worker_count", cfg.Task.WorkerCount,
		"queue_size", cfg.Task.QueueSize,
		"poll_interval", cfg.Task.PollInterval().String())
	return app, nil
}

// Run starts the task runner, recovers interrupted work, then serves HTTP
// until ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.taskRunner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	// Recovery finishes before the first request can create new work.
	if err := app.recoverer.Run(ctx); err != nil {
		app.logger.Error("recovery finished with errors", "error", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.startHTTPServer(gCtx, app.setupRouter())
	})
	g.Go(func() error {
		<-gCtx.Done()
		app.taskRunner.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.closeStore != nil {
		if err := app.closeStore(); err != nil {
			app.logger.Error("error closing store backend", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
