package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scroll-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestVideoRenderer(t *testing.T, m *fakeModels, o *fakeOperations, f *fakeFiles) *VideoRenderer {
	t.Helper()
	r, err := newVideoRenderer(m, o, f, testLLMConfig(), testLogger())
	require.NoError(t, err)
	return r
}

func TestVideoRenderer_Create(t *testing.T) {
	t.Parallel()

	var gotCfg *genai.GenerateVideosConfig
	models := &fakeModels{
		GenerateVideosFn: func(_ context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			assert.Equal(t, "veo-test", model)
			assert.Equal(t, "a rapping chemist", prompt)
			assert.Nil(t, image)
			gotCfg = cfg
			return &genai.GenerateVideosOperation{Name: "operations/vid-1"}, nil
		},
	}

	r := newTestVideoRenderer(t, models, &fakeOperations{}, &fakeFiles{})
	job, err := r.Create(context.Background(), "a rapping chemist", 12)
	require.NoError(t, err)
	assert.Equal(t, "operations/vid-1", job.ID)
	assert.Equal(t, generation.StatusInProgress, job.Status)
	require.NotNil(t, gotCfg.DurationSeconds)
	assert.Equal(t, int32(12), *gotCfg.DurationSeconds)
	assert.Equal(t, int32(1), gotCfg.NumberOfVideos)

	_, err = r.Create(context.Background(), "", 8)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestVideoRenderer_CreateFailure(t *testing.T) {
	t.Parallel()

	models := &fakeModels{
		GenerateVideosFn: func(context.Context, string, string, *genai.Image, *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	r := newTestVideoRenderer(t, models, &fakeOperations{}, &fakeFiles{})
	_, err := r.Create(context.Background(), "prompt", 8)
	assert.ErrorIs(t, err, generation.ErrRenderFailed)
}

func TestVideoRenderer_Retrieve(t *testing.T) {
	t.Parallel()

	done := &genai.GenerateVideosOperation{
		Name: "op",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: "https://files/v"}}},
		},
	}

	tests := []struct {
		name       string
		op         *genai.GenerateVideosOperation
		err        error
		wantStatus string
		wantErrMsg string
		wantErr    bool
	}{
		{name: "running", op: &genai.GenerateVideosOperation{Name: "op"}, wantStatus: generation.StatusInProgress},
		{name: "done", op: done, wantStatus: generation.StatusCompleted},
		{
			name:       "operation error",
			op:         &genai.GenerateVideosOperation{Name: "op", Done: true, Error: map[string]any{"message": "unsafe prompt"}},
			wantStatus: generation.StatusFailed,
			wantErrMsg: "unsafe prompt",
		},
		{
			name: "filtered",
			op: &genai.GenerateVideosOperation{Name: "op", Done: true, Response: &genai.GenerateVideosResponse{
				RAIMediaFilteredReasons: []string{"people"},
			}},
			wantStatus: generation.StatusFailed,
			wantErrMsg: "filtered: people",
		},
		{name: "transport error", err: errors.New("timeout"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ops := &fakeOperations{
				GetVideosOperationFn: func(_ context.Context, op *genai.GenerateVideosOperation, _ *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
					assert.Equal(t, "op", op.Name)
					return tc.op, tc.err
				},
			}
			r := newTestVideoRenderer(t, &fakeModels{}, ops, &fakeFiles{})
			state, err := r.Retrieve(context.Background(), "op")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, state.Status)
			assert.Equal(t, tc.wantErrMsg, state.Error)
		})
	}
}

func TestVideoRenderer_Download(t *testing.T) {
	t.Parallel()

	op := &genai.GenerateVideosOperation{
		Name: "op",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: "https://files/v"}}},
		},
	}
	ops := &fakeOperations{
		GetVideosOperationFn: func(context.Context, *genai.GenerateVideosOperation, *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
			return op, nil
		},
	}
	files := &fakeFiles{
		DownloadFn: func(context.Context, genai.DownloadURI, *genai.DownloadFileConfig) ([]byte, error) {
			return []byte("mp4"), nil
		},
	}

	r := newTestVideoRenderer(t, &fakeModels{}, ops, files)
	data, err := r.Download(context.Background(), "op")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp4"), data)

	_, err = r.Download(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyRenderID)
}

func TestVideoRenderer_DownloadNotReady(t *testing.T) {
	t.Parallel()

	ops := &fakeOperations{
		GetVideosOperationFn: func(context.Context, *genai.GenerateVideosOperation, *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
			return &genai.GenerateVideosOperation{Name: "op"}, nil
		},
	}
	r := newTestVideoRenderer(t, &fakeModels{}, ops, &fakeFiles{})
	_, err := r.Download(context.Background(), "op")
	assert.ErrorIs(t, err, generation.ErrRenderNotReady)
}

func TestImageRenderer_GenerateImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resp    *genai.GenerateImagesResponse
		err     error
		wantErr error
	}{
		{
			name: "ok",
			resp: &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{{
				Image: &genai.Image{ImageBytes: []byte("png"), MIMEType: "image/png"},
			}}},
		},
		{name: "api error", err: errors.New("boom"), wantErr: generation.ErrRenderFailed},
		{name: "no images", resp: &genai.GenerateImagesResponse{}, wantErr: generation.ErrInvalidResponse},
		{
			name: "filtered",
			resp: &genai.GenerateImagesResponse{GeneratedImages: []*genai.GeneratedImage{{
				RAIFilteredReason: "violence",
			}}},
			wantErr: generation.ErrContentBlocked,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			models := &fakeModels{
				GenerateImagesFn: func(_ context.Context, model, _ string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
					assert.Equal(t, "imagen-test", model)
					assert.Equal(t, int32(1), cfg.NumberOfImages)
					return tc.resp, tc.err
				},
			}
			r, err := newImageRenderer(models, testLLMConfig(), testLogger())
			require.NoError(t, err)

			img, err := r.GenerateImage(context.Background(), "an ion")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("png"), img.Data)
			assert.Equal(t, "image/png", img.MIMEType)
		})
	}
}
