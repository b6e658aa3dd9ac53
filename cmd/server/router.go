package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/excuse-api/internal/api"
	apiMiddleware "github.com/phrazzld/excuse-api/internal/api/middleware"
	"github.com/phrazzld/excuse-api/internal/api/shared"
	"github.com/phrazzld/excuse-api/internal/platform/metrics"
)

// version reported by the health endpoint.
const version = "1.0.0"

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	excuseHandler := api.NewExcuseHandler(app.generator, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.With(apiMiddleware.NewMetricsMiddleware(app.recorder)).
			Post("/generate-excuse", excuseHandler.GenerateExcuse)
	})

	// Auxiliary read-only endpoints
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, healthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version,
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "pong"})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(app.registry))

	// Debug endpoint for non-secret environment information. Reports
	// credential presence only, never the credential.
	r.Get("/debug", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
			"environment": map[string]any{
				"llm_provider":    app.config.LLM.Provider,
				"has_api_token":   app.config.LLM.APIToken != "",
				"has_gemini_key":  app.config.LLM.GeminiAPIKey != "",
				"llm_endpoint":    app.config.LLM.EndpointURL,
				"port":            app.config.Server.Port,
				"timeout_seconds": app.config.LLM.TimeoutSeconds,
			},
		})
	})

	return r
}
