package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/pagination"
)

func rawTransaction(id string, amount int64) domain.RawVariant {
	return rv("starsTransaction",
		"id", id,
		"date", t0,
		"amount", rv("starsAmount", "amount", amount),
		"peer", rv("starsTransactionPeerFragment"),
	)
}

func TestPaymentService_Transactions(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": rv("payments.starsStatus",
			"balance", rv("starsAmount", "amount", int64(10)),
			"history", anyList(rawTransaction("t1", -5), rawTransaction("t2", 15)),
			"next_offset", "p2",
		),
		"p2": rv("payments.starsStatus",
			"balance", int64(10),
			"history", anyList(rawTransaction("t3", 1)),
		),
	}))
	service := NewPaymentService(f.caller, f.peers)

	opts := domain.TransactionListOptions{Outbound: true, SubscriptionID: "sub"}
	txs, err := pagination.Collect(service.Transactions(context.Background(), "", opts))

	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.True(t, txs[0].IsOutgoing())
	assert.Equal(t, domain.TransactionPeerFragment, txs[0].Peer.Type)
	assert.Equal(t, "t3", txs[2].ID)

	calls := f.transport.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "payments.getStarsTransactions", calls[0].Method)
	assert.Equal(t, rv("inputPeerSelf"), calls[0].Params["peer"])
	assert.Equal(t, true, calls[0].Params["outbound"])
	assert.Equal(t, "sub", calls[0].Params["subscription_id"])
	assert.NotContains(t, calls[0].Params, "inbound")
	assert.Equal(t, "p2", calls[1].Params["offset"])
}

func TestPaymentService_Transactions_EmptyHistory(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": rv("payments.starsStatus", "balance", int64(0), "next_offset", "ignored"),
	}))
	service := NewPaymentService(f.caller, f.peers)

	txs, err := pagination.Collect(service.Transactions(context.Background(), "@news", domain.TransactionListOptions{}))

	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Len(t, f.transport.calls(), 1)
}

func TestPaymentService_Transactions_MalformedItem(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": rv("payments.starsStatus",
			"balance", int64(0),
			"history", anyList(rawTransaction("t1", 1), rv("starsTransaction", "id", "t2"), rawTransaction("t3", 1)),
		),
	}))
	service := NewPaymentService(f.caller, f.peers)

	var ids []string
	var errs []error
	for tx, err := range service.Transactions(context.Background(), "", domain.TransactionListOptions{}) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ids = append(ids, tx.ID)
	}

	assert.Equal(t, []string{"t1", "t3"}, ids)
	require.Len(t, errs, 1)
	assert.True(t, domain.IsMalformed(errs[0]))
	assert.Contains(t, errs[0].Error(), "payments.getStarsTransactions")
}

func TestPaymentService_Subscriptions(t *testing.T) {
	sub := func(id string) domain.RawVariant {
		return rv("starsSubscription",
			"id", id,
			"until_date", t0,
			"peer", rv("peerChannel", "channel_id", int64(123)),
			"pricing", rv("starsSubscriptionPricing", "period", int64(2592000), "amount", int64(50)),
		)
	}
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": rv("payments.starsStatus",
			"balance", int64(0),
			"subscriptions", anyList(sub("s1")),
			"subscriptions_next_offset", "more",
			"next_offset", "history-cursor",
		),
		"more": rv("payments.starsStatus", "balance", int64(0), "subscriptions", anyList(sub("s2"))),
	}))
	service := NewPaymentService(f.caller, f.peers)

	subs, err := pagination.Collect(service.Subscriptions(context.Background(), "", domain.ListOptions{}))

	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, 30*24*time.Hour, subs[0].Pricing.Period)
	assert.True(t, subs[0].Chat.Unresolved)

	calls := f.transport.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "more", calls[1].Params["offset"])
	assert.NotContains(t, calls[0].Params, "limit")
}

func TestPaymentService_Status(t *testing.T) {
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		assert.Equal(t, "payments.getStarsStatus", req.Method)
		return domain.NewEnvelope(rv("payments.starsStatus",
			"balance", rv("starsAmount", "amount", int64(120), "nanos", int64(5)),
		)), nil
	})
	service := NewPaymentService(f.caller, f.peers)

	status, err := service.Status(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, int64(120), status.Balance.Amount)
	assert.Equal(t, int32(5), status.Balance.Nanos)
}

func TestPaymentService_AuctionState(t *testing.T) {
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		assert.Equal(t, "payments.getStarGiftAuctionState", req.Method)
		assert.Equal(t, rv("inputStarGiftAuction", "gift_id", int64(77)), req.Params["auction"])
		assert.Equal(t, int64(3), req.Params["version"])
		return domain.NewEnvelope(rv("payments.starGiftAuctionState",
			"state", rv("starGiftAuctionStateNotModified"),
			"timeout", int64(30),
		)), nil
	})
	service := NewPaymentService(f.caller, f.peers)

	snap, err := service.AuctionState(context.Background(), 77, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(77), snap.GiftID)
	assert.Equal(t, domain.AuctionNotModified{}, snap.State)
	assert.Equal(t, 30*time.Second, snap.Timeout)
}

func TestPaymentService_AuctionState_UnknownState(t *testing.T) {
	f := newFixture(t, func(domain.Request) (*domain.RawEnvelope, error) {
		return domain.NewEnvelope(rv("payments.starGiftAuctionState",
			"state", rv("starGiftAuctionStatePaused"),
		)), nil
	})
	service := NewPaymentService(f.caller, f.peers)

	_, err := service.AuctionState(context.Background(), 77, 0)

	assert.True(t, domain.IsUnsupported(err))
}

func TestPaymentService_SavedStarGifts(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": rv("payments.savedStarGifts",
			"count", int64(3),
			"gifts", anyList(
				rv("savedStarGift",
					"from_id", rv("peerUser", "user_id", aliceID),
					"date", t0,
					"gift", rv("starGift", "id", int64(5), "stars", int64(25), "title", "Rose"),
				),
				rv("savedStarGift", "date", t0, "gift", rv("starGiftFromTheFuture", "id", int64(6))),
			),
			"users", anyList(rawUser(aliceID, "Alice")),
			"next_offset", "g2",
		),
		"g2": rv("payments.savedStarGifts",
			"count", int64(3),
			"gifts", anyList(
				rv("savedStarGift", "date", t0, "name_hidden", true,
					"gift", rv("starGiftUnique", "id", int64(900), "gift_id", int64(5), "title", "Rose", "slug", "rose-12", "num", int64(12)),
				),
			),
		),
	}))
	service := NewPaymentService(f.caller, f.peers)

	gifts, err := pagination.Collect(service.SavedStarGifts(context.Background(), "@news", domain.ListOptions{Limit: 2}))

	require.NoError(t, err)
	require.Len(t, gifts, 2)
	first, ok := gifts[0].Gift.(*domain.StarGift)
	require.True(t, ok)
	assert.Equal(t, int64(25), first.Stars)
	assert.Equal(t, "Alice", gifts[0].From.FirstName)
	unique, ok := gifts[1].Gift.(*domain.UniqueStarGift)
	require.True(t, ok)
	assert.Equal(t, "rose-12", unique.Slug)
	assert.Nil(t, gifts[1].From)
	assert.True(t, gifts[1].NameHidden)
	assert.Equal(t, []string{"StarGift/starGiftFromTheFuture"}, f.observer.dropped)

	calls := f.transport.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "payments.getSavedStarGifts", calls[0].Method)
	assert.Equal(t, newsInputPeer(), calls[0].Params["peer"])
	assert.Equal(t, "g2", calls[1].Params["offset"])
}

func TestPaymentService_SavedStarGifts_DefaultsToCurrentAccount(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": rv("payments.savedStarGifts", "count", int64(0), "gifts", anyList()),
	}))
	service := NewPaymentService(f.caller, f.peers)

	gifts, err := pagination.Collect(service.SavedStarGifts(context.Background(), "", domain.ListOptions{}))

	require.NoError(t, err)
	assert.Empty(t, gifts)
	assert.Equal(t, rv("inputPeerSelf"), f.transport.calls()[0].Params["peer"])
}

func TestPaymentService_StarGifts(t *testing.T) {
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		assert.Equal(t, "payments.getStarGifts", req.Method)
		assert.Equal(t, int64(0), req.Params["hash"])
		return domain.NewEnvelope(rv("payments.starGifts",
			"hash", int64(77),
			"gifts", anyList(
				rv("starGift", "id", int64(1), "stars", int64(15), "limited", true,
					"availability_remains", int64(10), "availability_total", int64(100)),
				rv("starGiftFromTheFuture", "id", int64(2)),
			),
		)), nil
	})
	service := NewPaymentService(f.caller, f.peers)

	catalog, err := service.StarGifts(context.Background())

	require.NoError(t, err)
	assert.True(t, catalog.Modified)
	assert.Equal(t, int64(77), catalog.Hash)
	require.Len(t, catalog.Gifts, 1)
	gift := catalog.Gifts[0].(*domain.StarGift)
	assert.True(t, gift.Limited)
	assert.Equal(t, int64(10), gift.AvailabilityRemains)
	assert.Equal(t, []string{"StarGift/starGiftFromTheFuture"}, f.observer.dropped)
}

func TestPaymentService_UniqueStarGift(t *testing.T) {
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		assert.Equal(t, "payments.getUniqueStarGift", req.Method)
		assert.Equal(t, "rose-12", req.Params["slug"])
		return domain.NewEnvelope(rv("payments.uniqueStarGift",
			"gift", rv("starGiftUnique",
				"id", int64(900),
				"gift_id", int64(5),
				"title", "Rose",
				"slug", "rose-12",
				"num", int64(12),
				"owner_id", rv("peerUser", "user_id", aliceID),
			),
			"users", anyList(rawUser(aliceID, "Alice")),
		)), nil
	})
	service := NewPaymentService(f.caller, f.peers)

	gift, err := service.UniqueStarGift(context.Background(), "rose-12")

	require.NoError(t, err)
	assert.Equal(t, int64(12), gift.Num)
	require.NotNil(t, gift.Owner)
	assert.Equal(t, "Alice", gift.Owner.FirstName)

	_, err = service.UniqueStarGift(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, f.transport.calls(), 1)
}

func TestPaymentService_UniqueStarGift_NotCollectible(t *testing.T) {
	f := newFixture(t, func(domain.Request) (*domain.RawEnvelope, error) {
		return domain.NewEnvelope(rv("payments.uniqueStarGift",
			"gift", rv("starGift", "id", int64(5), "stars", int64(25)),
		)), nil
	})
	service := NewPaymentService(f.caller, f.peers)

	_, err := service.UniqueStarGift(context.Background(), "rose-12")

	assert.True(t, domain.IsMalformed(err))
}
