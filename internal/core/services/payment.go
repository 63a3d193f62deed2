package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

// Ensure PaymentService implements the interface.
var _ driving.PaymentService = (*PaymentService)(nil)

// PaymentService reads stars balances, history and gift auctions.
type PaymentService struct {
	caller *Caller
	peers  driving.PeerService
}

// NewPaymentService creates a new payment service.
func NewPaymentService(caller *Caller, peers driving.PeerService) *PaymentService {
	return &PaymentService{caller: caller, peers: peers}
}

// Transactions returns the stars transaction history of a peer.
func (s *PaymentService) Transactions(ctx context.Context, peer string, opts domain.TransactionListOptions) iter.Seq2[domain.StarsTransaction, error] {
	call := listCall{
		method: "payments.getStarsTransactions",
		family: domain.FamilyStarsTransaction,
		items:  "history",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			input, err := inputPeerOrSelf(ctx, s.peers, peer)
			if err != nil {
				return nil, err
			}
			params := map[string]any{
				"peer":   input,
				"offset": cursor,
				"limit":  int64(pageSize),
			}
			setFlag(params, "inbound", opts.Inbound)
			setFlag(params, "outbound", opts.Outbound)
			setFlag(params, "ascending", opts.Ascending)
			if opts.SubscriptionID != "" {
				params["subscription_id"] = opts.SubscriptionID
			}
			return params, nil
		},
	}
	return list[domain.StarsTransaction](ctx, s.caller, call, opts.ListOptions)
}

// Subscriptions returns the active stars subscriptions of a peer.
// The server chooses the page size for this method.
func (s *PaymentService) Subscriptions(ctx context.Context, peer string, opts domain.ListOptions) iter.Seq2[domain.StarsSubscription, error] {
	call := listCall{
		method: "payments.getStarsSubscriptions",
		family: domain.FamilyStarsSubscription,
		items:  "subscriptions",
		params: func(ctx context.Context, cursor string, _ int) (map[string]any, error) {
			input, err := inputPeerOrSelf(ctx, s.peers, peer)
			if err != nil {
				return nil, err
			}
			return map[string]any{"peer": input, "offset": cursor}, nil
		},
		next: func(env *domain.RawEnvelope) (string, error) {
			next, _ := env.Payload.Fields["subscriptions_next_offset"].(string)
			return next, nil
		},
	}
	return list[domain.StarsSubscription](ctx, s.caller, call, opts)
}

// Status returns the stars balance of a peer.
func (s *PaymentService) Status(ctx context.Context, peer string) (*domain.StarsStatus, error) {
	input, err := inputPeerOrSelf(ctx, s.peers, peer)
	if err != nil {
		return nil, err
	}
	params := map[string]any{"peer": input}
	return query[*domain.StarsStatus](ctx, s.caller, "payments.getStarsStatus", params, domain.FamilyStarsStatus, "")
}

// AuctionState returns the state of a gift auction. version is the last
// version seen; zero asks for the full state.
func (s *PaymentService) AuctionState(ctx context.Context, giftID int64, version int) (*domain.AuctionSnapshot, error) {
	params := map[string]any{
		"auction": domain.NewVariant("inputStarGiftAuction", map[string]any{"gift_id": giftID}),
		"version": int64(version),
	}
	snap, err := query[*domain.AuctionSnapshot](ctx, s.caller, "payments.getStarGiftAuctionState", params, domain.FamilyAuctionStateResult, "")
	if err != nil {
		return nil, err
	}
	if snap.GiftID == 0 {
		snap.GiftID = giftID
	}
	return snap, nil
}

// StarGifts returns the catalogue of gifts that can be bought.
func (s *PaymentService) StarGifts(ctx context.Context) (*domain.StarGifts, error) {
	params := map[string]any{"hash": int64(0)}
	return query[*domain.StarGifts](ctx, s.caller, "payments.getStarGifts", params, domain.FamilyStarGifts, "")
}

// SavedStarGifts returns the gifts kept on a peer's profile. The empty
// peer is the current account.
func (s *PaymentService) SavedStarGifts(ctx context.Context, peer string, opts domain.ListOptions) iter.Seq2[domain.SavedStarGift, error] {
	call := listCall{
		method: "payments.getSavedStarGifts",
		family: domain.FamilySavedStarGift,
		items:  "gifts",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			input, err := inputPeerOrSelf(ctx, s.peers, peer)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"peer":   input,
				"offset": cursor,
				"limit":  int64(pageSize),
			}, nil
		},
	}
	return list[domain.SavedStarGift](ctx, s.caller, call, opts)
}

// UniqueStarGift returns a collectible gift by its slug.
func (s *PaymentService) UniqueStarGift(ctx context.Context, slug string) (*domain.UniqueStarGift, error) {
	if slug == "" {
		return nil, fmt.Errorf("empty gift slug: %w", domain.ErrInvalidInput)
	}
	params := map[string]any{"slug": slug}
	return query[*domain.UniqueStarGift](ctx, s.caller, "payments.getUniqueStarGift", params, domain.FamilyUniqueStarGift, "")
}
