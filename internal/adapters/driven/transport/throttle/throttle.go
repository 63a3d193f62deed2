// Package throttle wraps a transport with client-side rate limiting and
// flood wait handling.
package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/tgcore/internal/adapters/driven/transport"
	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
	"github.com/custodia-labs/tgcore/internal/logger"
)

// DefaultSleepThreshold is the longest flood wait that is slept through
// and retried rather than returned.
const DefaultSleepThreshold = 10 * time.Second

// Ensure Transport implements the interface.
var _ driven.Transport = (*Transport)(nil)

// Transport limits the request rate of the wrapped transport.
//
// Every request first takes a token from a bucket. A flood wait answer
// blocks all requests until it expires; waits up to the sleep threshold
// are then retried once, longer ones are returned to the caller.
type Transport struct {
	next      driven.Transport
	bucket    *rate.Limiter
	threshold time.Duration

	mu         sync.Mutex
	blockUntil time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option configures a Transport.
type Option func(*Transport)

// WithSleepThreshold sets the longest flood wait that is retried.
// Zero returns every flood wait to the caller.
func WithSleepThreshold(d time.Duration) Option {
	return func(t *Transport) {
		t.threshold = d
	}
}

// New wraps next. A rate of zero or less disables the bucket.
func New(next driven.Transport, perSecond float64, burst int, opts ...Option) *Transport {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	t := &Transport{
		next:      next,
		bucket:    rate.NewLimiter(limit, burst),
		threshold: DefaultSleepThreshold,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Invoke sends a request once it is safe to do so.
func (t *Transport) Invoke(ctx context.Context, req domain.Request) (*domain.RawEnvelope, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}

	env, err := t.next.Invoke(ctx, req)
	wait, flood := transport.IsFloodWait(err)
	if !flood {
		return env, err
	}

	t.block(wait)
	if wait > t.threshold {
		return nil, err
	}

	logger.Logger().Debug().Str("request_id", req.ID).Str("method", req.Method).
		Dur("wait", wait).Msg("flood wait, retrying")
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	return t.next.Invoke(ctx, req)
}

// wait blocks until the bucket has a token and no flood wait is active.
func (t *Transport) wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	until := t.blockUntil
	t.mu.Unlock()

	if d := time.Until(until); d > 0 {
		return t.sleep(ctx, d)
	}
	return nil
}

// block extends the flood wait window.
func (t *Transport) block(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if until := time.Now().Add(d); until.After(t.blockUntil) {
		t.blockUntil = until
	}
}

// BlockedUntil returns when the current flood wait ends.
func (t *Transport) BlockedUntil() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.blockUntil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
