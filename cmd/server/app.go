package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/phrazzld/excuse-api/internal/config"
	"github.com/phrazzld/excuse-api/internal/generation"
	"github.com/phrazzld/excuse-api/internal/platform/databricks"
	"github.com/phrazzld/excuse-api/internal/platform/gemini"
	"github.com/phrazzld/excuse-api/internal/platform/metrics"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
	registry  *prometheus.Registry
	recorder  *metrics.Recorder
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration and logging must be established first.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	var err error
	app.recorder, err = metrics.NewRecorder(app.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics recorder: %w", err)
	}

	generatorLogger := logger.With("component", "llm_generator")

	switch cfg.LLM.Provider {
	case "gemini":
		app.generator, err = gemini.NewGenerator(ctx, generatorLogger, cfg.LLM, app.recorder)
	default:
		app.generator, err = databricks.NewGenerator(generatorLogger, cfg.LLM, app.recorder)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "provider", cfg.LLM.Provider)

	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
