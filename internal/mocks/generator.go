package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/generation"
)

// MockContentGenerator implements generation.ContentGenerator for testing.
type MockContentGenerator struct {
	// GenerateFn overrides Generate when set
	GenerateFn func(ctx context.Context, prompt string) (*domain.GeneratedContent, error)

	// Default response values
	Content *domain.GeneratedContent
	Err     error

	mu      sync.Mutex
	prompts []string
}

var _ generation.ContentGenerator = (*MockContentGenerator)(nil)

// Generate implements generation.ContentGenerator.
func (m *MockContentGenerator) Generate(ctx context.Context, prompt string) (*domain.GeneratedContent, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}
	return m.Content, m.Err
}

// Prompts returns the prompts passed to Generate, in call order.
func (m *MockContentGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Reset clears the call history.
func (m *MockContentGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = nil
}

// NewMockGeneratorWithContent creates a generator that returns content.
func NewMockGeneratorWithContent(content *domain.GeneratedContent) *MockContentGenerator {
	return &MockContentGenerator{Content: content}
}

// NewMockGeneratorWithError creates a generator that returns err.
func NewMockGeneratorWithError(err error) *MockContentGenerator {
	return &MockContentGenerator{Err: err}
}

// MockGeneratorThatFails creates a generator that reports a generation failure.
func MockGeneratorThatFails() *MockContentGenerator {
	return &MockContentGenerator{Err: generation.ErrGenerationFailed}
}

// MockGeneratorWithContentBlocked creates a generator whose prompts are
// rejected by safety filters.
func MockGeneratorWithContentBlocked() *MockContentGenerator {
	return &MockContentGenerator{Err: generation.ErrContentBlocked}
}

// SampleContent returns a small studyset with one question, one image and
// one reel spread over a single topic. Each call returns a fresh value.
func SampleContent() *domain.GeneratedContent {
	return &domain.GeneratedContent{
		Title:  "Volcanoes",
		Topics: []domain.Topic{{Title: "Eruptions", Sections: []string{"Magma", "Lava"}}},
		Questions: []domain.Question{{
			FeedItem:   domain.FeedItem{ID: 1, Topic: 0, Section: 1},
			Question:   "What is lava?",
			Choices:    []string{"a", "b", "c", "d"},
			CorrectIdx: 2,
		}},
		Images: []domain.Image{{FeedItem: domain.FeedItem{ID: 2}, ImagePrompt: "crater"}},
		Reels:  []domain.Reel{{FeedItem: domain.FeedItem{ID: 3}, VideoPrompt: "lava"}},
	}
}
