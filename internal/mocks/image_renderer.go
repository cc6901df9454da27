package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scroll-api/internal/generation"
)

// DefaultImageBytes is the payload returned when GenerateImageFn is unset.
var DefaultImageBytes = []byte("png-bytes")

// MockImageRenderer implements generation.ImageRenderer for testing.
type MockImageRenderer struct {
	GenerateImageFn func(ctx context.Context, prompt string) (generation.RenderedImage, error)

	mu      sync.Mutex
	prompts []string
}

var _ generation.ImageRenderer = (*MockImageRenderer)(nil)

// GenerateImage implements generation.ImageRenderer.
func (m *MockImageRenderer) GenerateImage(ctx context.Context, prompt string) (generation.RenderedImage, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, prompt)
	}
	return generation.RenderedImage{Data: DefaultImageBytes, MIMEType: "image/png"}, nil
}

// Prompts returns the prompts passed to GenerateImage, in call order.
func (m *MockImageRenderer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
