package generation

import (
	"context"

	"github.com/phrazzld/scroll-api/internal/domain"
)

// ContentGenerator turns a user prompt into structured feed content.
// A single call may take minutes; it fails with an error wrapping one of
// the sentinels in errors.go.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (*domain.GeneratedContent, error)
}

// RenderJob is the handle returned when a video render is created.
type RenderJob struct {
	ID     string
	Status string
}

// RenderState is the collaborator's current view of a render job. A
// non-empty Error means the job failed.
type RenderState struct {
	Status string
	Error  string
}

// VideoRenderer creates, inspects and downloads asynchronous video renders.
type VideoRenderer interface {
	Create(ctx context.Context, prompt string, durationSeconds int) (RenderJob, error)
	Retrieve(ctx context.Context, id string) (RenderState, error)
	Download(ctx context.Context, id string) ([]byte, error)
}

// RenderedImage is a generated image in its decoded binary form.
type RenderedImage struct {
	Data     []byte
	MIMEType string
}

// ImageRenderer generates a single image from a prompt.
type ImageRenderer interface {
	GenerateImage(ctx context.Context, prompt string) (RenderedImage, error)
}
