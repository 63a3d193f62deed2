package services

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
	"github.com/custodia-labs/tgcore/internal/decoders"
	"github.com/custodia-labs/tgcore/internal/entities"
	"github.com/custodia-labs/tgcore/internal/logger"
	"github.com/custodia-labs/tgcore/internal/pagination"
)

// Options are the decode and pagination defaults shared by the services.
type Options struct {
	// SelfID is the current account's user ID.
	SelfID int64

	// Policy is the unsupported variant policy used when a call sets none.
	Policy domain.UnsupportedPolicy

	Resolution domain.ResolutionMode

	// PageSize is the page size used when a call sets none.
	PageSize int
}

// OptionsFromSettings derives service options from application settings.
func OptionsFromSettings(settings *domain.AppSettings) Options {
	if settings == nil {
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}
	return Options{
		SelfID:     settings.Decode.SelfID,
		Policy:     settings.Decode.Policy,
		Resolution: settings.Decode.Resolution,
		PageSize:   settings.Pagination.PageSize,
	}
}

// Caller sends requests and decodes their responses. The list and query
// services share one Caller.
type Caller struct {
	transport driven.Transport
	peers     driving.PeerService
	observer  driven.Observer
	registry  *decoders.Registry
	opts      Options
}

// NewCaller creates a caller. peers and observer may be nil.
func NewCaller(transport driven.Transport, peers driving.PeerService, observer driven.Observer, opts Options) *Caller {
	return &Caller{
		transport: transport,
		peers:     peers,
		observer:  observer,
		registry:  decoders.Default(),
		opts:      opts,
	}
}

// decodeContext returns the decode context for a call. A valid policy
// overrides the configured one.
func (c *Caller) decodeContext(policy domain.UnsupportedPolicy) decoders.Context {
	if !policy.IsValid() {
		policy = c.opts.Policy
	}
	return decoders.Context{
		SelfID:      c.opts.SelfID,
		Resolution:  c.opts.Resolution,
		Unsupported: policy,
	}
}

// invoke sends one request. Transport errors are returned unchanged.
// The peers of a successful response are recorded.
func (c *Caller) invoke(ctx context.Context, method string, params map[string]any) (*domain.RawEnvelope, error) {
	if c.transport == nil {
		return nil, fmt.Errorf("%s: %w", method, domain.ErrTransportUnavailable)
	}

	req := domain.Request{ID: uuid.NewString(), Method: method, Params: params}
	log := logger.Logger().With().Str("request_id", req.ID).Str("method", method).Logger()
	log.Debug().Msg("invoke")

	start := time.Now()
	env, err := c.transport.Invoke(ctx, req)
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveRequest(method, elapsed, err)
	}
	if err != nil {
		log.Debug().Err(err).Dur("elapsed", elapsed).Msg("invoke failed")
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("%s: empty response: %w", method, domain.ErrMalformedVariant)
	}
	log.Debug().Dur("elapsed", elapsed).Str("payload", env.Payload.Tag).
		Int("entities", env.Entities.Len()).Msg("invoke done")

	if c.peers != nil {
		if err := c.peers.Record(ctx, env.Entities); err != nil {
			log.Warn().Err(err).Msg("record peers")
		}
	}
	return env, nil
}

func (c *Caller) reportDropped(method string, dropped []domain.Unsupported) {
	for _, d := range dropped {
		logger.Logger().Debug().Str("method", method).Str("family", d.Family.String()).
			Str("tag", d.Tag).Msg("dropped unsupported variant")
		if c.observer != nil {
			c.observer.ObserveDropped(d.Family.String(), d.Tag)
		}
	}
}

func (c *Caller) pageSize(opts domain.ListOptions) int {
	if opts.PageSize > 0 {
		return opts.PageSize
	}
	return c.opts.PageSize
}

// query invokes method and decodes the whole response as family.
func query[T any](ctx context.Context, c *Caller, method string, params map[string]any, family domain.Family, policy domain.UnsupportedPolicy) (T, error) {
	var zero T
	env, err := c.invoke(ctx, method, params)
	if err != nil {
		return zero, err
	}

	s := decoders.NewSession(c.registry, entities.FromEnvelope(env), c.decodeContext(policy))
	out, err := decoders.Payload[T](s, family, env.Payload)
	c.reportDropped(method, s.Dropped())
	if err != nil {
		return zero, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

// listCall describes one paginated remote method.
type listCall struct {
	method string

	// family is the family of the list elements.
	family domain.Family

	// items names the payload field holding the elements.
	items string

	// params builds the request for one page.
	params func(ctx context.Context, cursor string, pageSize int) (map[string]any, error)

	// next extracts the next cursor. The default reads "next_offset".
	next func(env *domain.RawEnvelope) (string, error)
}

// list returns the lazy sequence of a paginated method's decoded elements.
func list[T any](ctx context.Context, c *Caller, call listCall, opts domain.ListOptions) iter.Seq2[T, error] {
	fetch := func(ctx context.Context, cursor string, pageSize int) (pagination.Page, error) {
		params, err := call.params(ctx, cursor, pageSize)
		if err != nil {
			return pagination.Page{}, err
		}
		env, err := c.invoke(ctx, call.method, params)
		if err != nil {
			return pagination.Page{}, err
		}

		items, err := pageItems(env.Payload, call.items)
		if err != nil {
			return pagination.Page{}, fmt.Errorf("%s: %w", call.method, err)
		}
		next := nextOffset(env)
		if call.next != nil {
			if next, err = call.next(env); err != nil {
				return pagination.Page{}, fmt.Errorf("%s: %w", call.method, err)
			}
		}
		if c.observer != nil {
			c.observer.ObservePage(call.method, len(items))
		}
		logger.Logger().Debug().Str("method", call.method).Str("cursor", cursor).
			Int("items", len(items)).Str("next", next).Msg("page fetched")
		return pagination.Page{Items: items, NextCursor: next, Entities: env.Entities}, nil
	}

	dctx := c.decodeContext(opts.Policy)
	dctx.OnDropped = func(d domain.Unsupported) {
		c.reportDropped(call.method, []domain.Unsupported{d})
	}
	elements := decoders.Elements[T](c.registry, call.family, dctx)
	decode := func(v domain.RawVariant, table *entities.Table) (T, bool, error) {
		item, keep, err := elements(v, table)
		if err != nil {
			return item, false, fmt.Errorf("%s: %w", call.method, err)
		}
		return item, keep, nil
	}

	budget := pagination.Budget{Limit: opts.Limit, PageSize: c.pageSize(opts)}
	return pagination.Paginate(ctx, fetch, decode, budget, pagination.WithCursor(opts.Offset))
}

// pageItems extracts the list elements of a page payload. A missing list
// is an empty page.
func pageItems(payload domain.RawVariant, field string) ([]domain.RawVariant, error) {
	val, ok := payload.Get(field)
	if !ok {
		return nil, nil
	}
	raw, ok := val.([]any)
	if !ok {
		return nil, &domain.MalformedVariantError{Tag: payload.Tag, Field: field, Reason: "is not a list"}
	}
	items := make([]domain.RawVariant, 0, len(raw))
	for i, item := range raw {
		v, ok := item.(domain.RawVariant)
		if !ok {
			return nil, &domain.MalformedVariantError{
				Tag:    payload.Tag,
				Field:  field,
				Reason: fmt.Sprintf("element %d is not an object", i),
			}
		}
		items = append(items, v)
	}
	return items, nil
}

func nextOffset(env *domain.RawEnvelope) string {
	next, _ := env.Payload.Fields["next_offset"].(string)
	return next
}
