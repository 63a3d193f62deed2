package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// BoostService reads channel boosts.
type BoostService interface {
	// List iterates over the boosts applied to a channel.
	List(ctx context.Context, chat string, opts domain.BoostListOptions) iter.Seq2[domain.Boost, error]

	// MyBoosts returns the current user's boost slots.
	MyBoosts(ctx context.Context) ([]domain.MyBoost, error)

	// Status returns a channel's boost level and progress.
	Status(ctx context.Context, chat string) (*domain.BoostsStatus, error)
}
