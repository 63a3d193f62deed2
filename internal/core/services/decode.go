package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
	"github.com/custodia-labs/tgcore/internal/decoders"
	"github.com/custodia-labs/tgcore/internal/entities"
	"github.com/custodia-labs/tgcore/internal/logger"
	"github.com/custodia-labs/tgcore/internal/wire"
)

// Ensure DecodeService implements the interface.
var _ driving.DecodeService = (*DecodeService)(nil)

// DecodeService decodes recorded responses offline.
type DecodeService struct {
	registry *decoders.Registry
	opts     Options
}

// NewDecodeService creates a decode service using the default registry.
func NewDecodeService(opts Options) *DecodeService {
	return &DecodeService{registry: decoders.Default(), opts: opts}
}

// DecodeEnvelope decodes a JSON response whose payload belongs to family.
// The payload's users, chats and messages lists are its entities.
func (s *DecodeService) DecodeEnvelope(ctx context.Context, family domain.Family, data []byte, policy domain.UnsupportedPolicy) (*driving.DecodeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.registry.Tags(family)) == 0 {
		return nil, fmt.Errorf("unknown family %q: %w", family, domain.ErrInvalidInput)
	}
	if !policy.IsValid() {
		policy = s.opts.Policy
	}

	payload, err := wire.Decode(data)
	if err != nil {
		return nil, err
	}
	env := domain.NewEnvelope(payload)

	logger.Section("Decode")
	logger.Debug("family %s, payload %s, %d entities, policy %s", family, payload.Tag, env.Entities.Len(), policy)

	session := decoders.NewSession(s.registry, entities.FromEnvelope(env), decoders.Context{
		SelfID:      s.opts.SelfID,
		Resolution:  s.opts.Resolution,
		Unsupported: policy,
	})
	value, err := decoders.Payload[any](session, family, payload)
	if err != nil {
		return nil, err
	}

	dropped := session.Dropped()
	if dropped == nil {
		dropped = []domain.Unsupported{}
	}
	return &driving.DecodeResult{Value: value, Dropped: dropped}, nil
}

// Families returns the families that can be decoded.
func (s *DecodeService) Families() []domain.Family {
	return s.registry.Families()
}

// Tags returns the tags known for a family.
func (s *DecodeService) Tags(family domain.Family) []string {
	return s.registry.Tags(family)
}
