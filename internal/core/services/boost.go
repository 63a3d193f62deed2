package services

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

// Ensure BoostService implements the interface.
var _ driving.BoostService = (*BoostService)(nil)

// BoostService lists and summarises channel boosts.
type BoostService struct {
	caller *Caller
	peers  driving.PeerService
}

// NewBoostService creates a new boost service.
func NewBoostService(caller *Caller, peers driving.PeerService) *BoostService {
	return &BoostService{caller: caller, peers: peers}
}

// List returns the boosts applied to a channel.
func (s *BoostService) List(ctx context.Context, chat string, opts domain.BoostListOptions) iter.Seq2[domain.Boost, error] {
	call := listCall{
		method: "premium.getBoostsList",
		family: domain.FamilyBoost,
		items:  "boosts",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			peer, err := s.peers.InputPeer(ctx, chat)
			if err != nil {
				return nil, err
			}
			params := map[string]any{
				"peer":   peer,
				"offset": cursor,
				"limit":  int64(pageSize),
			}
			setFlag(params, "gifts", opts.Gifts)
			return params, nil
		},
	}
	return list[domain.Boost](ctx, s.caller, call, opts.ListOptions)
}

// MyBoosts returns the current account's boost slots.
func (s *BoostService) MyBoosts(ctx context.Context) ([]domain.MyBoost, error) {
	return query[[]domain.MyBoost](ctx, s.caller, "premium.getMyBoosts", nil, domain.FamilyMyBoosts, "")
}

// Status returns a channel's boost level and progress.
func (s *BoostService) Status(ctx context.Context, chat string) (*domain.BoostsStatus, error) {
	peer, err := s.peers.InputPeer(ctx, chat)
	if err != nil {
		return nil, err
	}
	params := map[string]any{"peer": peer}
	return query[*domain.BoostsStatus](ctx, s.caller, "premium.getBoostsStatus", params, domain.FamilyBoostsStatus, "")
}
