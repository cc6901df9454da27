package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/service"
	"github.com/stretchr/testify/require"
)

// MockStudysetService is a mock implementation of service.StudysetService for testing
type MockStudysetService struct {
	CreateFn func(ctx context.Context, input service.CreateStudysetInput) (*domain.Studyset, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*service.StudysetView, error)
	ListFn   func(ctx context.Context) ([]service.StudysetSummary, error)
}

func (m *MockStudysetService) CreateStudysetAndEnqueue(
	ctx context.Context,
	input service.CreateStudysetInput,
) (*domain.Studyset, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input)
	}
	return nil, nil
}

func (m *MockStudysetService) GetStudyset(ctx context.Context, id uuid.UUID) (*service.StudysetView, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, nil
}

func (m *MockStudysetService) ListStudysets(ctx context.Context) ([]service.StudysetSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

// MockUserService is a mock implementation of service.UserService for testing
type MockUserService struct {
	GetOrCreateUserFn func(ctx context.Context, name string) (*domain.User, error)
	UpdateProgressFn  func(ctx context.Context, name string, progress map[string]any) (*domain.User, error)
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, name string) (*domain.User, error) {
	if m.GetOrCreateUserFn != nil {
		return m.GetOrCreateUserFn(ctx, name)
	}
	return nil, nil
}

func (m *MockUserService) UpdateProgress(
	ctx context.Context,
	name string,
	progress map[string]any,
) (*domain.User, error) {
	if m.UpdateProgressFn != nil {
		return m.UpdateProgressFn(ctx, name, progress)
	}
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handlers on the same paths the server uses.
func newTestRouter(studysets service.StudysetService, users service.UserService) http.Handler {
	sh := NewStudysetHandler(studysets, testLogger())
	uh := NewUserHandler(users, testLogger())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/studysets", sh.CreateStudyset)
		r.Get("/studysets", sh.ListStudysets)
		r.Get("/studysets/{id}", sh.GetStudyset)
		r.Get("/users/{name}", uh.GetUser)
		r.Put("/users/{name}/progress", uh.UpdateProgress)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}
