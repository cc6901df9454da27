package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/schemas"
	"github.com/phrazzld/scroll-api/internal/store"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a valid file-backend configuration rooted in a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Store: config.StoreConfig{
			Backend:      config.BackendFile,
			SnapshotPath: filepath.Join(dir, "state.json"),
			ArtifactsDir: filepath.Join(dir, "artifacts"),
		},
		LLM: config.LLMConfig{
			GeminiAPIKey:         "test-key",
			ContentModel:         "content",
			VideoModel:           "video",
			ImageModel:           "image",
			VideoDurationSeconds: 8,
		},
		Task: config.TaskConfig{WorkerCount: 2, QueueSize: 10, PollIntervalSeconds: 1},
	}
	require.NoError(t, config.Validate(cfg))
	return cfg
}

func openTestStore(t *testing.T, cfg *config.Config) *store.Store {
	t.Helper()

	validator, err := schemas.NewValidator()
	require.NoError(t, err)

	st, closeFn, err := openStore(context.Background(), cfg, validator, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return st
}

func serve(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, reader))
	return w
}
