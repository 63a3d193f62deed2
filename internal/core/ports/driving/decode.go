package driving

import (
	"context"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// DecodeResult is the outcome of an offline decode.
type DecodeResult struct {
	// Value is the decoded domain value.
	Value any

	// Dropped lists the unsupported variants skipped during decoding.
	Dropped []domain.Unsupported
}

// DecodeService decodes recorded envelopes without a transport.
type DecodeService interface {
	// DecodeEnvelope decodes a JSON envelope whose payload belongs to family.
	DecodeEnvelope(ctx context.Context, family domain.Family, data []byte, policy domain.UnsupportedPolicy) (*DecodeResult, error)

	// Families returns the families that can be decoded.
	Families() []domain.Family

	// Tags returns the tags known for a family.
	Tags(family domain.Family) []string
}
