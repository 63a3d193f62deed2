package driven

import (
	"context"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// Transport sends one request and returns the server's envelope.
// Errors are opaque to the core: they are returned to the caller unchanged
// and never retried here.
type Transport interface {
	Invoke(ctx context.Context, req domain.Request) (*domain.RawEnvelope, error)
}
