package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/excuse-api/internal/domain"
	"github.com/phrazzld/excuse-api/internal/generation"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "validation_error",
			err:      domain.ErrEmptyCategory,
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped_validation_error",
			err:      fmt.Errorf("creating request: %w", domain.ErrSeriousnessOutOfRange),
			expected: http.StatusBadRequest,
		},
		{
			name:     "upstream_timeout",
			err:      generation.ErrUpstreamTimeout,
			expected: http.StatusGatewayTimeout,
		},
		{
			name:     "wrapped_upstream_timeout",
			err:      fmt.Errorf("%w: context deadline exceeded", generation.ErrUpstreamTimeout),
			expected: http.StatusGatewayTimeout,
		},
		{
			name:     "upstream_error",
			err:      &generation.UpstreamError{Status: 500, Body: "internal"},
			expected: http.StatusBadGateway,
		},
		{
			name:     "missing_credential",
			err:      generation.ErrMissingCredential,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "invalid_config",
			err:      generation.ErrInvalidConfig,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "transport_error",
			err:      fmt.Errorf("%w: connection refused", generation.ErrTransport),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "unknown_error",
			err:      errors.New("something else"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil_error",
			err:      nil,
			expected: "An unexpected error occurred",
		},
		{
			name:     "validation_error_passes_through",
			err:      domain.ErrEmptyRecipientName,
			expected: domain.ErrEmptyRecipientName.Error(),
		},
		{
			name:     "upstream_timeout",
			err:      fmt.Errorf("%w: deadline exceeded", generation.ErrUpstreamTimeout),
			expected: "Request timeout",
		},
		{
			name:     "upstream_error_includes_status",
			err:      &generation.UpstreamError{Status: 429, Body: "rate limited"},
			expected: "LLM service error (status 429)",
		},
		{
			name:     "missing_credential",
			err:      fmt.Errorf("%w: databricks API token not set", generation.ErrMissingCredential),
			expected: "LLM credential not configured",
		},
		{
			name:     "unknown_error_is_generic",
			err:      errors.New("secret internal detail"),
			expected: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expected, msg)
		})
	}
}

func TestGetSafeErrorMessage_NeverLeaksBody(t *testing.T) {
	err := &generation.UpstreamError{Status: 500, Body: "stack trace with internal hostnames"}
	msg := GetSafeErrorMessage(err)
	assert.NotContains(t, msg, "stack trace")
	assert.NotContains(t, msg, "internal hostnames")
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		expected string
	}{
		{
			name:     "field_validation_with_tag",
			errMsg:   "Key: 'GenerateExcuseRequest.Seriousness' Error:Field validation for 'Seriousness' failed on the 'lte' tag",
			expected: "Invalid Seriousness: value too large",
		},
		{
			name:     "required_tag",
			errMsg:   "Key: 'GenerateExcuseRequest.Category' Error:Field validation for 'Category' failed on the 'required' tag",
			expected: "Invalid Category: required field",
		},
		{
			name:     "unrecognized_format",
			errMsg:   "some other error entirely",
			expected: "Validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeValidationError(errors.New(tt.errMsg)))
		})
	}
}
