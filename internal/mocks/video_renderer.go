package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scroll-api/internal/generation"
)

// MockVideoRenderer implements generation.VideoRenderer for testing. With no
// overrides, renders are queued on Create, complete on the first Retrieve and
// download as "video:<id>".
type MockVideoRenderer struct {
	CreateFn   func(ctx context.Context, prompt string, durationSeconds int) (generation.RenderJob, error)
	RetrieveFn func(ctx context.Context, id string) (generation.RenderState, error)
	DownloadFn func(ctx context.Context, id string) ([]byte, error)

	mu        sync.Mutex
	prompts   []string
	retrieves int
	downloads int
}

var _ generation.VideoRenderer = (*MockVideoRenderer)(nil)

// Create implements generation.VideoRenderer.
func (m *MockVideoRenderer) Create(ctx context.Context, prompt string, durationSeconds int) (generation.RenderJob, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, prompt, durationSeconds)
	}
	return generation.RenderJob{ID: "op-" + prompt, Status: generation.StatusQueued}, nil
}

// Retrieve implements generation.VideoRenderer.
func (m *MockVideoRenderer) Retrieve(ctx context.Context, id string) (generation.RenderState, error) {
	m.mu.Lock()
	m.retrieves++
	m.mu.Unlock()

	if m.RetrieveFn != nil {
		return m.RetrieveFn(ctx, id)
	}
	return generation.RenderState{Status: generation.StatusCompleted}, nil
}

// Download implements generation.VideoRenderer.
func (m *MockVideoRenderer) Download(ctx context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	m.downloads++
	m.mu.Unlock()

	if m.DownloadFn != nil {
		return m.DownloadFn(ctx, id)
	}
	return []byte("video:" + id), nil
}

// Counts returns how many times each method was called.
func (m *MockVideoRenderer) Counts() (creates, retrieves, downloads int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts), m.retrieves, m.downloads
}

// CreatedPrompts returns the prompts passed to Create, in call order.
func (m *MockVideoRenderer) CreatedPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
