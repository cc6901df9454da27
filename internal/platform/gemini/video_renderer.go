package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/generation"
	"google.golang.org/genai"
)

const (
	defaultVideoDurationSeconds = 8
	videoAspectRatio            = "9:16"
)

// VideoRenderer implements generation.VideoRenderer with Veo long-running
// operations. The render ID is the operation name.
type VideoRenderer struct {
	models     modelsAPI
	operations operationsAPI
	files      filesAPI
	model      string
	logger     *slog.Logger
}

var _ generation.VideoRenderer = (*VideoRenderer)(nil)

// NewVideoRenderer creates a renderer on client.
func NewVideoRenderer(client *genai.Client, cfg config.LLMConfig, logger *slog.Logger) (*VideoRenderer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", generation.ErrInvalidConfig)
	}
	return newVideoRenderer(client.Models, client.Operations, client.Files, cfg, logger)
}

func newVideoRenderer(
	models modelsAPI,
	operations operationsAPI,
	files filesAPI,
	cfg config.LLMConfig,
	logger *slog.Logger,
) (*VideoRenderer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.VideoModel == "" {
		return nil, fmt.Errorf("%w: VideoModel cannot be empty", generation.ErrInvalidConfig)
	}

	return &VideoRenderer{
		models:     models,
		operations: operations,
		files:      files,
		model:      cfg.VideoModel,
		logger:     logger.With("component", "video_renderer", "model", cfg.VideoModel),
	}, nil
}

// Create implements generation.VideoRenderer.
func (r *VideoRenderer) Create(ctx context.Context, prompt string, durationSeconds int) (generation.RenderJob, error) {
	if strings.TrimSpace(prompt) == "" {
		return generation.RenderJob{}, ErrEmptyPrompt
	}
	if durationSeconds <= 0 {
		durationSeconds = defaultVideoDurationSeconds
	}

	op, err := r.models.GenerateVideos(ctx, r.model, prompt, nil, &genai.GenerateVideosConfig{
		NumberOfVideos:  1,
		DurationSeconds: genai.Ptr(int32(durationSeconds)),
		AspectRatio:     videoAspectRatio,
	})
	if err != nil {
		return generation.RenderJob{}, fmt.Errorf("%w: %v", generation.ErrRenderFailed, err)
	}
	if op == nil || op.Name == "" {
		return generation.RenderJob{}, fmt.Errorf("%w: operation has no name", generation.ErrRenderFailed)
	}

	state := operationState(op)
	if state.Error != "" {
		return generation.RenderJob{}, fmt.Errorf("%w: %s", generation.ErrRenderFailed, state.Error)
	}

	r.logger.InfoContext(ctx, "video render created",
		"render_id", op.Name,
		"duration_seconds", durationSeconds)

	return generation.RenderJob{ID: op.Name, Status: state.Status}, nil
}

// Retrieve implements generation.VideoRenderer.
func (r *VideoRenderer) Retrieve(ctx context.Context, id string) (generation.RenderState, error) {
	op, err := r.operation(ctx, id)
	if err != nil {
		return generation.RenderState{}, err
	}
	return operationState(op), nil
}

// Download implements generation.VideoRenderer.
func (r *VideoRenderer) Download(ctx context.Context, id string) ([]byte, error) {
	op, err := r.operation(ctx, id)
	if err != nil {
		return nil, err
	}

	video := firstVideo(op)
	if !op.Done || video == nil || video.Video == nil {
		return nil, fmt.Errorf("%w: %s", generation.ErrRenderNotReady, id)
	}
	if len(video.Video.VideoBytes) > 0 {
		return video.Video.VideoBytes, nil
	}

	data, err := r.files.Download(ctx, genai.NewDownloadURIFromGeneratedVideo(video), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download video %s: %w", id, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty video for %s", generation.ErrInvalidResponse, id)
	}

	r.logger.InfoContext(ctx, "video downloaded", "render_id", id, "bytes", len(data))
	return data, nil
}

func (r *VideoRenderer) operation(ctx context.Context, id string) (*genai.GenerateVideosOperation, error) {
	if id == "" {
		return nil, ErrEmptyRenderID
	}
	op, err := r.operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: id}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get video operation %s: %w", id, err)
	}
	if op == nil {
		return nil, fmt.Errorf("%w: %s", generation.ErrRenderNotFound, id)
	}
	return op, nil
}

// operationState maps a Veo operation onto the render status vocabulary.
func operationState(op *genai.GenerateVideosOperation) generation.RenderState {
	if len(op.Error) > 0 {
		return generation.RenderState{Status: generation.StatusFailed, Error: operationError(op.Error)}
	}
	if !op.Done {
		return generation.RenderState{Status: generation.StatusInProgress}
	}
	if firstVideo(op) == nil {
		msg := "no video returned"
		if op.Response != nil && len(op.Response.RAIMediaFilteredReasons) > 0 {
			msg = "filtered: " + strings.Join(op.Response.RAIMediaFilteredReasons, "; ")
		}
		return generation.RenderState{Status: generation.StatusFailed, Error: msg}
	}
	return generation.RenderState{Status: generation.StatusCompleted}
}

func firstVideo(op *genai.GenerateVideosOperation) *genai.GeneratedVideo {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return nil
	}
	return op.Response.GeneratedVideos[0]
}

func operationError(e map[string]any) string {
	if msg, ok := e["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("%v", e)
}
