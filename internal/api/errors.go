package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/excuse-api/internal/domain"
	"github.com/phrazzld/excuse-api/internal/generation"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Upstream errors. A provider's non-2xx is reported as a gateway
	// failure rather than echoed to our caller.
	case errors.Is(err, generation.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, generation.ErrUpstream):
		return http.StatusBadGateway

	// Configuration errors surface per-request as server faults
	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Domain validation sentinels carry no sensitive detail, so their
	// message is returned as-is.
	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	case errors.Is(err, generation.ErrUpstreamTimeout):
		return "Request timeout"

	case errors.Is(err, generation.ErrUpstream):
		var upstream *generation.UpstreamError
		if errors.As(err, &upstream) {
			return fmt.Sprintf("LLM service error (status %d)", upstream.Status)
		}
		return "LLM service error"

	case errors.Is(err, generation.ErrMissingCredential):
		return "LLM credential not configured"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validator errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateExcuseRequest.Seriousness' Error:Field
	// validation for 'Seriousness' failed on the 'lte' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "value too small"
	case "lte":
		return "value too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
