package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/schemas"
	"github.com/phrazzld/scroll-api/internal/store"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// newTestStore opens a file-backed store at path, so a second call with the
// same path simulates a process restart.
func newTestStore(t *testing.T, path string) *store.Store {
	t.Helper()
	v, err := schemas.NewValidator()
	require.NoError(t, err)
	s, err := store.New(context.Background(), store.NewFileSnapshot(path), v, setupTestLogger())
	require.NoError(t, err)
	return s
}

func snapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.json")
}

func sampleContent(reelPrompts ...string) *domain.GeneratedContent {
	content := &domain.GeneratedContent{
		Title:  "Volcanoes",
		Topics: []domain.Topic{{Title: "Basics", Sections: []string{"Magma", "Eruptions"}}},
		Questions: []domain.Question{{
			FeedItem:   domain.FeedItem{ID: 1, Title: "Q1", Topic: 0, Section: 1},
			Question:   "What is magma?",
			Choices:    []string{"Molten rock", "Ice", "Gas", "Sand"},
			CorrectIdx: 0,
		}},
		Posts: []domain.Post{{
			FeedItem: domain.FeedItem{ID: 2, Title: "P1"},
			Slides:   []domain.Slide{{Icon: "🌋", Content: "Magma rises."}},
		}},
		Images: []domain.Image{},
	}
	for i, prompt := range reelPrompts {
		content.Reels = append(content.Reels, domain.Reel{
			FeedItem:    domain.FeedItem{ID: 100 + i, Title: fmt.Sprintf("R%d", i)},
			VideoPrompt: prompt,
		})
	}
	content.Normalize()
	return content
}

// memArtifacts records written artifacts in memory.
type memArtifacts struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemArtifacts() *memArtifacts {
	return &memArtifacts{files: make(map[string][]byte)}
}

func (m *memArtifacts) Write(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.files[name] = data
	return "artifacts/" + name, nil
}

func (m *memArtifacts) file(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	return data, ok
}

// recordingSubmitter captures submitted tasks without running them.
type recordingSubmitter struct {
	mu    sync.Mutex
	tasks []Task
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *recordingSubmitter) submitted() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Task(nil), s.tasks...)
}

func createPending(t *testing.T, s *store.Store, prompt string) uuid.UUID {
	t.Helper()
	st, err := s.CreateStudyset(context.Background(), prompt)
	require.NoError(t, err)
	return st.ID
}
