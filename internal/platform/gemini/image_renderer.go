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

const defaultImageMIMEType = "image/png"

// ImageRenderer implements generation.ImageRenderer with Imagen.
type ImageRenderer struct {
	models modelsAPI
	model  string
	logger *slog.Logger
}

var _ generation.ImageRenderer = (*ImageRenderer)(nil)

// NewImageRenderer creates a renderer on client.
func NewImageRenderer(client *genai.Client, cfg config.LLMConfig, logger *slog.Logger) (*ImageRenderer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", generation.ErrInvalidConfig)
	}
	return newImageRenderer(client.Models, cfg, logger)
}

func newImageRenderer(models modelsAPI, cfg config.LLMConfig, logger *slog.Logger) (*ImageRenderer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.ImageModel == "" {
		return nil, fmt.Errorf("%w: ImageModel cannot be empty", generation.ErrInvalidConfig)
	}
	return &ImageRenderer{
		models: models,
		model:  cfg.ImageModel,
		logger: logger.With("component", "image_renderer", "model", cfg.ImageModel),
	}, nil
}

// GenerateImage implements generation.ImageRenderer. The SDK returns decoded
// image bytes.
func (r *ImageRenderer) GenerateImage(ctx context.Context, prompt string) (generation.RenderedImage, error) {
	if strings.TrimSpace(prompt) == "" {
		return generation.RenderedImage{}, ErrEmptyPrompt
	}

	resp, err := r.models.GenerateImages(ctx, r.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages:   1,
		OutputMIMEType:   defaultImageMIMEType,
		IncludeRAIReason: true,
	})
	if err != nil {
		return generation.RenderedImage{}, fmt.Errorf("%w: %v", generation.ErrRenderFailed, err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return generation.RenderedImage{}, fmt.Errorf("%w: no image generated", generation.ErrInvalidResponse)
	}

	img := resp.GeneratedImages[0]
	if img.RAIFilteredReason != "" {
		return generation.RenderedImage{}, fmt.Errorf("%w: %s", generation.ErrContentBlocked, img.RAIFilteredReason)
	}
	if img.Image == nil || len(img.Image.ImageBytes) == 0 {
		return generation.RenderedImage{}, fmt.Errorf("%w: empty image data", generation.ErrInvalidResponse)
	}

	mime := img.Image.MIMEType
	if mime == "" {
		mime = defaultImageMIMEType
	}

	r.logger.DebugContext(ctx, "image generated", "bytes", len(img.Image.ImageBytes), "mime_type", mime)
	return generation.RenderedImage{Data: img.Image.ImageBytes, MIMEType: mime}, nil
}
