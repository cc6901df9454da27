package gemini

import (
	"context"
	"io"
	"log/slog"

	"github.com/phrazzld/scroll-api/internal/config"
	"google.golang.org/genai"
)

type fakeModels struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideosFn  func(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GenerateImagesFn  func(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return f.GenerateContentFn(ctx, model, contents, cfg)
}

func (f *fakeModels) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return f.GenerateVideosFn(ctx, model, prompt, image, cfg)
}

func (f *fakeModels) GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return f.GenerateImagesFn(ctx, model, prompt, cfg)
}

type fakeOperations struct {
	GetVideosOperationFn func(ctx context.Context, op *genai.GenerateVideosOperation, cfg *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

func (f *fakeOperations) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation, cfg *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	return f.GetVideosOperationFn(ctx, op, cfg)
}

type fakeFiles struct {
	DownloadFn func(ctx context.Context, uri genai.DownloadURI, cfg *genai.DownloadFileConfig) ([]byte, error)
}

func (f *fakeFiles) Download(ctx context.Context, uri genai.DownloadURI, cfg *genai.DownloadFileConfig) ([]byte, error) {
	return f.DownloadFn(ctx, uri, cfg)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:         "test-key",
		ContentModel:         "gemini-test",
		VideoModel:           "veo-test",
		ImageModel:           "imagen-test",
		VideoDurationSeconds: 8,
		Temperature:          0.5,
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
