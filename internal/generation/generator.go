package generation

import (
	"context"

	"github.com/phrazzld/excuse-api/internal/domain"
)

// Generator defines the interface for producing excuse emails from a
// validated request. This interface is the boundary between the application
// core and external AI/LLM services, following the hexagonal architecture
// pattern.
//
// The error return is reserved for failures around generation: missing
// credentials, transport problems, upstream timeouts or non-2xx statuses.
// A model response that cannot be normalized is NOT an error; it yields a
// Result with Success false and a diagnostic.
type Generator interface {
	GenerateExcuse(ctx context.Context, req *domain.ExcuseRequest) (Result, error)
}

// Observer receives notifications about normalization outcomes. Backends
// call it with the name of the cascade strategy that settled the response.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveNormalize(strategy string)
}
