package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// PaymentService reads stars balances, history and gift auctions.
type PaymentService interface {
	// Transactions iterates over a stars balance history.
	Transactions(ctx context.Context, peer string, opts domain.TransactionListOptions) iter.Seq2[domain.StarsTransaction, error]

	// Subscriptions iterates over active stars subscriptions.
	Subscriptions(ctx context.Context, peer string, opts domain.ListOptions) iter.Seq2[domain.StarsSubscription, error]

	// Status returns a stars balance with its first history page.
	Status(ctx context.Context, peer string) (*domain.StarsStatus, error)

	// AuctionState returns the state of a gift auction.
	AuctionState(ctx context.Context, giftID int64, version int) (*domain.AuctionSnapshot, error)

	// StarGifts returns the catalogue of gifts that can be bought.
	StarGifts(ctx context.Context) (*domain.StarGifts, error)

	// SavedStarGifts iterates over the gifts kept on a profile.
	SavedStarGifts(ctx context.Context, peer string, opts domain.ListOptions) iter.Seq2[domain.SavedStarGift, error]

	// UniqueStarGift returns a collectible gift by its slug.
	UniqueStarGift(ctx context.Context, slug string) (*domain.UniqueStarGift, error)
}
