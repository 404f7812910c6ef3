package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/career-guide/internal/logger"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second
	provider       = "gemini"
)

var errEmptyResponse = errors.New("gemini api returned empty response")

// contentModels is the part of genai.Models used by the generator.
type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models  contentModels
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// Every call is bounded by timeout; zero selects the default.
func NewGenerator(ctx context.Context, apiKey, model string, timeout time.Duration, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, timeout, log), nil
}

func newGenerator(models contentModels, model string, timeout time.Duration, log *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{
		models:  models,
		model:   model,
		timeout: timeout,
		logger:  logger.WithCommonFields(log, provider, model),
	}
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// A call that exceeds the timeout fails; it is never retried here.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	started := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := responseText(resp)
	if output == "" {
		return "", errEmptyResponse
	}

	g.logger.Debug("gemini generate content finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("response_length", utf8.RuneCountInString(output)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
