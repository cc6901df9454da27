package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/scroll-api/internal/config"
	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/generation"
	"github.com/phrazzld/scroll-api/internal/redact"
	"google.golang.org/genai"
)

// PayloadValidator checks raw generated JSON before it is decoded.
type PayloadValidator interface {
	ValidateGeneratedContent(data []byte) error
}

// ContentGenerator implements generation.ContentGenerator with a Gemini model.
type ContentGenerator struct {
	models      modelsAPI
	model       string
	temperature float32
	validator   PayloadValidator
	logger      *slog.Logger
}

var _ generation.ContentGenerator = (*ContentGenerator)(nil)

// NewContentGenerator creates a generator on client. validator may be nil.
func NewContentGenerator(
	client *genai.Client,
	cfg config.LLMConfig,
	validator PayloadValidator,
	logger *slog.Logger,
) (*ContentGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", generation.ErrInvalidConfig)
	}
	return newContentGenerator(client.Models, cfg, validator, logger)
}

func newContentGenerator(
	models modelsAPI,
	cfg config.LLMConfig,
	validator PayloadValidator,
	logger *slog.Logger,
) (*ContentGenerator, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.ContentModel == "" {
		return nil, fmt.Errorf("%w: ContentModel cannot be empty", generation.ErrInvalidConfig)
	}

	return &ContentGenerator{
		models:      models,
		model:       cfg.ContentModel,
		temperature: cfg.Temperature,
		validator:   validator,
		logger:      logger.With("component", "content_generator", "model", cfg.ContentModel),
	}, nil
}

// Generate implements generation.ContentGenerator. It makes a single call;
// the caller decides whether a failure is terminal.
func (g *ContentGenerator) Generate(ctx context.Context, prompt string) (*domain.GeneratedContent, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	g.logger.InfoContext(ctx, "Making Gemini API call", "prompt_length", len(prompt))

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(g.temperature),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema(),
		})
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call error", "error", redact.Error(err))
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "Unusable Gemini response", "error", redact.Error(err))
		return nil, err
	}

	raw := []byte(cleanJSONBlock(text))
	if g.validator != nil {
		if err := g.validator.ValidateGeneratedContent(raw); err != nil {
			g.logger.WarnContext(ctx, "Generated content failed schema validation", "error", redact.Error(err))
			return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
		}
	}

	var content domain.GeneratedContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	content.Normalize()
	if content.IsEmpty() {
		return nil, fmt.Errorf("%w: no feed items in response", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "Gemini API call successful",
		"topics", len(content.Topics),
		"questions", len(content.Questions),
		"posts", len(content.Posts),
		"images", len(content.Images),
		"reels", len(content.Reels))

	return &content, nil
}

// responseText extracts the text of the first candidate, mapping blocked and
// empty responses to generation errors.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" &&
		resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
