package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/excuse-api/internal/config"
	"github.com/phrazzld/excuse-api/internal/domain"
	"github.com/phrazzld/excuse-api/internal/generation"
)

// maxResponseBytes bounds how much of an upstream response body is read.
const maxResponseBytes = 1 << 20

// upstreamBodyExcerpt bounds the body excerpt carried in UpstreamError.
const upstreamBodyExcerpt = 512

// Generator implements the generation.Generator interface by invoking a
// Databricks model serving endpoint over HTTP.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// cfg contains LLM-specific configuration
	cfg config.LLMConfig

	// httpClient carries the bounded request timeout
	httpClient *http.Client

	// observer receives normalization outcomes; may be nil
	observer generation.Observer
}

// NewGenerator creates a Generator for the configured serving endpoint.
//
// A missing API token is NOT a constructor error: the token's absence is a
// per-request condition reported by GenerateExcuse, so the process can start
// and serve its auxiliary endpoints without a credential.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, observer generation.Observer) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.EndpointURL == "" {
		return nil, fmt.Errorf("%w: endpoint URL cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds <= 0 {
		timeout = 30 * time.Second
	}

	return &Generator{
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		observer:   observer,
	}, nil
}

// GenerateExcuse builds the prompt, performs one bounded invocation of the
// serving endpoint, and normalizes whatever comes back. Errors cover the
// call itself; an unparseable response body is a non-error failure Result.
func (g *Generator) GenerateExcuse(ctx context.Context, req *domain.ExcuseRequest) (generation.Result, error) {
	prompt := generation.BuildPrompt(req)

	raw, err := g.invoke(ctx, prompt)
	if err != nil {
		return generation.Result{}, err
	}

	result, strategy := generation.NormalizeWithStrategy(raw)
	if g.observer != nil {
		g.observer.ObserveNormalize(strategy)
	}

	g.logger.InfoContext(ctx, "normalized model response",
		"success", result.Success,
		"strategy", strategy)

	return result, nil
}

// invoke performs one POST to the serving endpoint and classifies the
// outcome. No retries: a failed call is reported as-is.
func (g *Generator) invoke(ctx context.Context, prompt string) ([]byte, error) {
	if g.cfg.APIToken == "" {
		return nil, fmt.Errorf("%w: databricks API token not set", generation.ErrMissingCredential)
	}

	payload := chatRequest{
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invocation payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrTransport, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIToken)
	httpReq.Header.Set("Content-Type", "application/json")

	g.logger.InfoContext(ctx, "invoking model serving endpoint",
		"prompt_length", len(prompt))

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		var netErr net.Error
		switch {
		case errors.Is(err, context.DeadlineExceeded),
			errors.As(err, &netErr) && netErr.Timeout():
			return nil, fmt.Errorf("%w: %v", generation.ErrUpstreamTimeout, err)
		default:
			return nil, fmt.Errorf("%w: %v", generation.ErrTransport, err)
		}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.WarnContext(ctx, "failed to close response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", generation.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(raw)
		if len(excerpt) > upstreamBodyExcerpt {
			excerpt = excerpt[:upstreamBodyExcerpt]
		}
		g.logger.ErrorContext(ctx, "model serving endpoint returned error status",
			"status", resp.StatusCode)
		return nil, &generation.UpstreamError{Status: resp.StatusCode, Body: excerpt}
	}

	return raw, nil
}
