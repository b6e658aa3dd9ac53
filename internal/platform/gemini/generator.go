package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/phrazzld/excuse-api/internal/config"
	"github.com/phrazzld/excuse-api/internal/domain"
	"github.com/phrazzld/excuse-api/internal/generation"
)

// defaultModel is used when no model name is configured.
const defaultModel = "gemini-2.0-flash"

// Generator implements the generation.Generator interface using Google's
// Gemini API.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// cfg contains LLM-specific configuration
	cfg config.LLMConfig

	// client is the Gemini API client; nil when no API key is configured,
	// in which case every request reports a missing credential
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// observer receives normalization outcomes; may be nil
	observer generation.Observer
}

// NewGenerator creates a new Generator with the provided dependencies.
//
// A missing API key does not fail construction: the credential's absence is
// a per-request condition reported by GenerateExcuse.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, observer generation.Observer) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	model := cfg.ModelName
	if model == "" {
		model = defaultModel
	}

	g := &Generator{
		logger:   logger,
		cfg:      cfg,
		model:    model,
		observer: observer,
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("gemini API key not configured; generation requests will fail until it is set")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	g.client = client

	return g, nil
}

// GenerateExcuse builds the prompt, performs one generation call against the
// Gemini API, and normalizes the model's text output.
func (g *Generator) GenerateExcuse(ctx context.Context, req *domain.ExcuseRequest) (generation.Result, error) {
	if g.client == nil {
		return generation.Result{}, fmt.Errorf("%w: gemini API key not set", generation.ErrMissingCredential)
	}

	prompt := generation.BuildPrompt(req)

	g.logger.InfoContext(ctx, "calling Gemini API",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
		MaxOutputTokens: int32(g.cfg.MaxTokens),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return generation.Result{}, fmt.Errorf("%w: %v", generation.ErrUpstreamTimeout, err)
		}
		return generation.Result{}, fmt.Errorf("%w: %v", generation.ErrTransport, err)
	}

	result, strategy := generation.NormalizeWithStrategy([]byte(resp.Text()))
	if g.observer != nil {
		g.observer.ObserveNormalize(strategy)
	}

	g.logger.InfoContext(ctx, "normalized model response",
		"success", result.Success,
		"strategy", strategy)

	return result, nil
}
