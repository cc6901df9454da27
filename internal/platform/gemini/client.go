package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/generation"
	"google.golang.org/genai"
)

// modelsAPI is the subset of genai.Models used by this package.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
	GenerateVideos(
		ctx context.Context,
		model string,
		prompt string,
		image *genai.Image,
		config *genai.GenerateVideosConfig,
	) (*genai.GenerateVideosOperation, error)
	GenerateImages(
		ctx context.Context,
		model string,
		prompt string,
		config *genai.GenerateImagesConfig,
	) (*genai.GenerateImagesResponse, error)
}

// operationsAPI is the subset of genai.Operations used by this package.
type operationsAPI interface {
	GetVideosOperation(
		ctx context.Context,
		operation *genai.GenerateVideosOperation,
		config *genai.GetOperationConfig,
	) (*genai.GenerateVideosOperation, error)
}

// filesAPI is the subset of genai.Files used by this package.
type filesAPI interface {
	Download(ctx context.Context, uri genai.DownloadURI, config *genai.DownloadFileConfig) ([]byte, error)
}

// NewClient validates cfg and creates a Gemini API client shared by the
// content generator and both renderers.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*genai.Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini client initialized",
		"content_model", cfg.ContentModel,
		"video_model", cfg.VideoModel,
		"image_model", cfg.ImageModel)

	return client, nil
}

// validateConfig checks that the API key and model names are set.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key")
		return fmt.Errorf("%w: GeminiAPIKey cannot be empty", generation.ErrInvalidConfig)
	}

	models := []struct{ field, value string }{
		{"ContentModel", cfg.ContentModel},
		{"VideoModel", cfg.VideoModel},
		{"ImageModel", cfg.ImageModel},
	}
	for _, m := range models {
		if m.value == "" {
			logger.ErrorContext(ctx, "Missing model name", "field", m.field)
			return fmt.Errorf("%w: %s cannot be empty", generation.ErrInvalidConfig, m.field)
		}
	}

	if cfg.VideoDurationSeconds <= 0 {
		logger.WarnContext(ctx, "Invalid video duration, renderer will use its default",
			"value", cfg.VideoDurationSeconds)
	}

	return nil
}
