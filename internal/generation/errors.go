package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package and its backends.
var (
	// ErrMissingCredential is returned when the backend credential is not
	// configured. This is a per-request failure, not a startup failure.
	ErrMissingCredential = errors.New("LLM credential is not configured")

	// ErrUpstreamTimeout is returned when the LLM call exceeds its deadline.
	ErrUpstreamTimeout = errors.New("upstream LLM request timed out")

	// ErrUpstream is returned when the LLM service answers with a non-2xx
	// status. Returned wrapped inside an UpstreamError carrying the detail.
	ErrUpstream = errors.New("upstream LLM service error")

	// ErrTransport is returned for network failures other than timeouts.
	ErrTransport = errors.New("transport error calling LLM service")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// UpstreamError carries the status code and a bounded body excerpt from a
// non-2xx LLM service response.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream LLM service error: status %d", e.Status)
}

// Unwrap makes errors.Is(err, ErrUpstream) hold for UpstreamError values.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
