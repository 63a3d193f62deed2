package decoders

import (
	"fmt"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/entities"
)

// Context carries decode-time parameters that are not part of the wire data.
// The zero value decodes eagerly, drops unsupported variants and has no
// viewpoint.
type Context struct {
	// SelfID is the current account. Users and messages are judged as self or
	// outgoing from this viewpoint in addition to their wire flags.
	SelfID int64

	// Resolution decides whether optional nested messages are looked up in
	// the envelope or left as identifier-only stand-ins.
	Resolution domain.ResolutionMode

	// Unsupported decides what happens to unknown variant tags.
	Unsupported domain.UnsupportedPolicy

	// OnDropped, if set, is called for every unsupported variant a session
	// drops, at any depth.
	OnDropped func(domain.Unsupported)
}

func (c Context) policy() domain.UnsupportedPolicy {
	if c.Unsupported == "" {
		return domain.PolicyDrop
	}
	return c.Unsupported
}

func (c Context) eager() bool {
	return c.Resolution != domain.ResolveLazy
}

// Session is one decode pass: a registry, the envelope's entity table and
// the decode context. It records the unsupported variants it dropped.
// A Session is not safe for concurrent use; create one per decode.
type Session struct {
	registry *Registry
	table    *entities.Table
	ctx      Context
	dropped  []domain.Unsupported
}

// NewSession creates a decode session.
func NewSession(r *Registry, table *entities.Table, ctx Context) *Session {
	if r == nil {
		r = Default()
	}
	return &Session{registry: r, table: table, ctx: ctx}
}

// Dropped returns the unsupported variants skipped so far.
func (s *Session) Dropped() []domain.Unsupported {
	return s.dropped
}

// unsupported applies the session policy to an unknown tag. keep is false
// when the value must be left out.
func unsupported[T any](s *Session, family domain.Family, tag string, required bool) (value T, keep bool, err error) {
	marker := domain.Unsupported{Family: family, Tag: tag}

	switch s.ctx.policy() {
	case domain.PolicyEscalate:
		return value, false, &domain.UnsupportedVariantError{Family: family, Tag: tag}
	case domain.PolicySurface:
		if v, ok := any(marker).(T); ok {
			return v, true, nil
		}
	}

	if required {
		return value, false, &domain.UnsupportedVariantError{Family: family, Tag: tag}
	}
	s.dropped = append(s.dropped, marker)
	if s.ctx.OnDropped != nil {
		s.ctx.OnDropped(marker)
	}
	return value, false, nil
}

// run decodes a variant whose decoder is known to exist.
func run[T any](s *Session, family domain.Family, dec Decoder, v domain.RawVariant) (T, bool, error) {
	var zero T
	out, err := dec(s, v)
	if err != nil {
		return zero, false, err
	}
	if out == nil {
		return zero, false, nil
	}
	typed, ok := out.(T)
	if !ok {
		return zero, false, &domain.MalformedVariantError{
			Family: family,
			Tag:    v.Tag,
			Reason: fmt.Sprintf("decodes to %T, not the expected type", out),
		}
	}
	return typed, true, nil
}

// one decodes a single nested variant. A required field escalates an
// unsupported variant unless the policy surfaces it; an optional one
// yields the zero value.
func one[T any](s *Session, family domain.Family, v domain.RawVariant, required bool) (T, error) {
	dec, ok := s.registry.DecoderFor(family, v.Tag)
	if !ok {
		value, _, err := unsupported[T](s, family, v.Tag, required)
		return value, err
	}
	value, _, err := run[T](s, family, dec, v)
	return value, err
}

// many decodes a list. Unsupported elements are dropped (or surfaced) one
// at a time and never abort their siblings. Elements decoding to no value
// are skipped.
func many[T any](s *Session, family domain.Family, items []domain.RawVariant) ([]T, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		value, keep, err := element[T](s, family, item)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, value)
		}
	}
	return out, nil
}

func element[T any](s *Session, family domain.Family, v domain.RawVariant) (T, bool, error) {
	dec, ok := s.registry.DecoderFor(family, v.Tag)
	if !ok {
		return unsupported[T](s, family, v.Tag, false)
	}
	return run[T](s, family, dec, v)
}

// Decode decodes a required payload with the default registry.
func Decode[T any](family domain.Family, v domain.RawVariant, table *entities.Table, ctx Context) (T, error) {
	return DecodeWith[T](Default(), family, v, table, ctx)
}

// DecodeWith decodes a required payload with the given registry.
func DecodeWith[T any](r *Registry, family domain.Family, v domain.RawVariant, table *entities.Table, ctx Context) (T, error) {
	return one[T](NewSession(r, table, ctx), family, v, true)
}

// DecodeEnvelope builds the envelope's entity table and decodes its payload.
func DecodeEnvelope[T any](family domain.Family, env *domain.RawEnvelope, ctx Context) (T, error) {
	if env == nil {
		var zero T
		return zero, &domain.MalformedVariantError{Family: family, Reason: "envelope is nil"}
	}
	return Decode[T](family, env.Payload, entities.FromEnvelope(env), ctx)
}

// ElementFunc decodes one list element against a page's entity table.
// keep is false when the element was dropped as unsupported.
type ElementFunc[T any] func(v domain.RawVariant, table *entities.Table) (item T, keep bool, err error)

// Elements returns an ElementFunc decoding list elements of a family with
// list-element semantics. Each element gets its own session; set
// ctx.OnDropped to observe what those sessions drop.
func Elements[T any](r *Registry, family domain.Family, ctx Context) ElementFunc[T] {
	if r == nil {
		r = Default()
	}
	return func(v domain.RawVariant, table *entities.Table) (T, bool, error) {
		return element[T](NewSession(r, table, ctx), family, v)
	}
}

// Payload decodes a required payload within an existing session, so the
// caller can inspect Dropped afterwards.
func Payload[T any](s *Session, family domain.Family, v domain.RawVariant) (T, error) {
	return one[T](s, family, v, true)
}
