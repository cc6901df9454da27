package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/scroll-api/internal/api"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_StudysetLifecycle(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	st := openTestStore(t, cfg)
	videos := &mocks.MockVideoRenderer{}

	app, err := newApplication(cfg, testLogger(), st, collaborators{
		generator: mocks.NewMockGeneratorWithContent(mocks.SampleContent()),
		videos:    videos,
		images:    &mocks.MockImageRenderer{},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, app.taskRunner.Start(ctx))
	t.Cleanup(app.taskRunner.Stop)

	router := app.setupRouter()

	w := serve(t, router, http.MethodPost, "/api/studysets", api.CreateStudysetRequest{
		Prompt:       "volcanoes",
		RenderReels:  true,
		RenderImages: true,
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var created api.CreateStudysetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.StudysetStatusPending, created.Status)

	var final *domain.Studyset
	require.Eventually(t, func() bool {
		got, err := st.Get(created.ID)
		if err != nil || got.Status != domain.StudysetStatusReady || len(got.Reels) != 1 || len(got.Images) != 1 {
			return false
		}
		if got.Images[0].ImageFile == "" {
			return false
		}
		final = got
		return got.Reels[0].RenderStatus == domain.RenderStatusSuccess && !app.registry.Contains(created.ID)
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, "Volcanoes", final.Title)
	assert.Equal(t, []string{"lava"}, videos.CreatedPrompts())
	require.Len(t, final.Images, 1)
	assert.NotEmpty(t, final.Images[0].ImageFile)
	assert.Empty(t, final.Images[0].ImageError)

	video, err := os.ReadFile(final.Reels[0].RenderFile)
	require.NoError(t, err)
	assert.Equal(t, "video:op-lava", string(video))

	// artifacts are served by base name
	w = serve(t, router, http.MethodGet, "/artifacts/"+filepath.Base(final.Images[0].ImageFile), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = serve(t, router, http.MethodGet, "/api/studysets/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Status string `json:"status"`
		Feed   []struct {
			Type string `json:"type"`
		} `json:"feed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "ready", view.Status)
	require.Len(t, view.Feed, 3)
	assert.Equal(t, "reel", view.Feed[0].Type)
	assert.Equal(t, "image", view.Feed[1].Type)
	assert.Equal(t, "question", view.Feed[2].Type)

	w = serve(t, router, http.MethodGet, "/api/studysets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list api.ListStudysetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Studysets, 1)
	assert.Equal(t, 0, list.Studysets[0].PendingRenders)

	// the snapshot on disk reflects the final state
	reopened := openTestStore(t, cfg)
	persisted, err := reopened.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RenderStatusSuccess, persisted.Reels[0].RenderStatus)
}

func TestApplication_UserEndpoints(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	app, err := newApplication(cfg, testLogger(), openTestStore(t, cfg), collaborators{
		generator: mocks.NewMockGeneratorWithContent(mocks.SampleContent()),
	})
	require.NoError(t, err)
	router := app.setupRouter()

	w := serve(t, router, http.MethodGet, "/api/users/ada", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, router, http.MethodPut, "/api/users/ada/progress", api.UpdateProgressRequest{
		Progress: map[string]any{"volcanoes": 3},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "ada", user.Name)
	assert.InDelta(t, 3, user.Progress["volcanoes"], 0)

	w = serve(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestApplication_CreateWithoutRendererFailsStudyset(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	st := openTestStore(t, cfg)
	app, err := newApplication(cfg, testLogger(), st, collaborators{
		generator: mocks.NewMockGeneratorWithContent(mocks.SampleContent()),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, app.taskRunner.Start(ctx))
	t.Cleanup(app.taskRunner.Stop)

	w := serve(t, app.setupRouter(), http.MethodPost, "/api/studysets", api.CreateStudysetRequest{
		Prompt:      "volcanoes",
		RenderReels: true,
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	all := st.List()
	require.Len(t, all, 1)
	assert.Equal(t, domain.StudysetStatusError, all[0].Status)
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestApplication_RunRecoversAndShutsDown(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Server.Port = freePort(t)
	st := openTestStore(t, cfg)

	interrupted, err := st.CreateStudyset(context.Background(), "interrupted")
	require.NoError(t, err)

	rendering, err := st.CreateStudyset(context.Background(), "rendering")
	require.NoError(t, err)
	_, err = st.Mutate(context.Background(), rendering.ID, func(s *domain.Studyset) error {
		if err := s.ApplyContent(mocks.SampleContent()); err != nil {
			return err
		}
		s.Reels[0].MarkRenderSubmitted("op-lava", "processing")
		return nil
	})
	require.NoError(t, err)

	app, err := newApplication(cfg, testLogger(), st, collaborators{
		generator: mocks.NewMockGeneratorWithContent(mocks.SampleContent()),
		videos:    &mocks.MockVideoRenderer{},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		got, err := st.Get(rendering.ID)
		return err == nil && got.Reels[0].RenderStatus == domain.RenderStatusSuccess
	}, 5*time.Second, 10*time.Millisecond)

	got, err := st.Get(interrupted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StudysetStatusError, got.Status)
	assert.NotEmpty(t, got.Error)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestNewApplication_RequiresGenerator(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	_, err := newApplication(cfg, testLogger(), openTestStore(t, cfg), collaborators{})
	assert.Error(t, err)
}
