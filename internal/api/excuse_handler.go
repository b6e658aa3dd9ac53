package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/excuse-api/internal/api/shared"
	"github.com/phrazzld/excuse-api/internal/domain"
	"github.com/phrazzld/excuse-api/internal/generation"
)

// ExcuseHandler handles excuse generation HTTP requests.
type ExcuseHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewExcuseHandler creates a new ExcuseHandler.
// Panics if the logger is nil; the handler must never fall back to silent
// logging.
func NewExcuseHandler(generator generation.Generator, logger *slog.Logger) *ExcuseHandler {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ExcuseHandler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateExcuse handles POST /api/generate-excuse requests.
//
// Upstream and configuration problems map to error status codes, but a
// model response the normalization cascade could not settle is a 200 with
// success false: the operation completed, the model just failed to produce
// a usable email.
func (h *ExcuseHandler) GenerateExcuse(w http.ResponseWriter, r *http.Request) {
	// Parse request body
	var req GenerateExcuseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request shape
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	// Construct the domain request; this enforces the seriousness bounds
	// and required fields regardless of transport-level validation.
	excuseReq, err := domain.NewExcuseRequest(
		req.Category,
		domain.Tone(req.Tone),
		req.Seriousness,
		req.RecipientName,
		req.SenderName,
		req.EtaWhen,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	h.logger.InfoContext(r.Context(), "generating excuse",
		"category", excuseReq.Category,
		"tone", string(excuseReq.Tone),
		"seriousness", excuseReq.Seriousness)

	result, err := h.generator.GenerateExcuse(r.Context(), excuseReq)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	if !result.Success {
		h.logger.WarnContext(r.Context(), "model response could not be normalized",
			"diagnostic", result.Diagnostic)
		shared.RespondWithJSON(w, r, http.StatusOK, ExcuseResponse{
			Subject: "Error",
			Body:    "Failed to parse LLM response",
			Success: false,
			Error:   result.Diagnostic,
		})
		return
	}

	h.logger.InfoContext(r.Context(), "excuse generated successfully")
	shared.RespondWithJSON(w, r, http.StatusOK, ExcuseResponse{
		Subject: result.Subject,
		Body:    result.Body,
		Success: true,
	})
}
