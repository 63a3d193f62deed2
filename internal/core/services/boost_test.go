package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/pagination"
)

func rawBoost(id string, userID int64) domain.RawVariant {
	return rv("boost", "id", id, "date", t0, "expires", t0+86400, "user_id", userID)
}

func boostsPage(next string, boosts ...any) domain.RawVariant {
	return rv("premium.boostsList",
		"count", int64(3),
		"boosts", anyList(boosts...),
		"next_offset", next,
		"users", anyList(rawUser(1, "Ann"), rawUser(2, "Bob"), rawUser(3, "Cid")),
	)
}

func TestBoostService_List_FollowsCursor(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"":     boostsPage("next", rawBoost("b1", 1), rawBoost("b2", 2)),
		"next": boostsPage("", rawBoost("b3", 3)),
	}))
	service := NewBoostService(f.caller, f.peers)

	boosts, err := pagination.Collect(service.List(context.Background(), "@news", domain.BoostListOptions{}))

	require.NoError(t, err)
	require.Len(t, boosts, 3)
	assert.Equal(t, "b1", boosts[0].ID)
	assert.Equal(t, "Ann", boosts[0].User.FirstName)
	assert.Equal(t, "Cid", boosts[2].User.FirstName)

	calls := f.transport.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "premium.getBoostsList", calls[0].Method)
	assert.Equal(t, newsInputPeer(), calls[0].Params["peer"])
	assert.Equal(t, int64(100), calls[0].Params["limit"])
	assert.Equal(t, "", calls[0].Params["offset"])
	assert.Equal(t, "next", calls[1].Params["offset"])
	assert.NotContains(t, calls[0].Params, "gifts")
	assert.NotEqual(t, calls[0].ID, calls[1].ID)
	assert.Equal(t, []int{2, 1}, f.observer.pages)
}

func TestBoostService_List_LimitAndGifts(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": boostsPage("next", rawBoost("b1", 1), rawBoost("b2", 2)),
	}))
	service := NewBoostService(f.caller, f.peers)

	opts := domain.BoostListOptions{Gifts: true}
	opts.Limit = 2
	boosts, err := pagination.Collect(service.List(context.Background(), "news", opts))

	require.NoError(t, err)
	assert.Len(t, boosts, 2)
	calls := f.transport.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, true, calls[0].Params["gifts"])
	assert.Equal(t, int64(2), calls[0].Params["limit"])
}

func TestBoostService_List_RecordsPeers(t *testing.T) {
	f := newFixture(t, pagesByOffset(map[string]domain.RawVariant{
		"": boostsPage("", rawBoost("b1", 1)),
	}))
	service := NewBoostService(f.caller, f.peers)

	_, err := pagination.Collect(service.List(context.Background(), "@news", domain.BoostListOptions{}))
	require.NoError(t, err)

	rec, err := f.store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1003), rec.AccessHash)
	assert.Equal(t, "Cid", rec.Name)
}

func TestBoostService_List_UnknownChat(t *testing.T) {
	f := newFixture(t, pagesByOffset(nil))
	service := NewBoostService(f.caller, f.peers)

	_, err := pagination.Collect(service.List(context.Background(), "@nobody", domain.BoostListOptions{}))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.transport.calls())
}

func TestBoostService_List_TransportErrorUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	calls := 0
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		items := make([]any, 100)
		for i := range items {
			items[i] = rawBoost(fmt.Sprintf("b%d", i), 1)
		}
		return domain.NewEnvelope(boostsPage("more", items...)), nil
	})
	service := NewBoostService(f.caller, f.peers)

	var got int
	var gotErr error
	for _, err := range service.List(context.Background(), "@news", domain.BoostListOptions{}) {
		if err != nil {
			gotErr = err
			continue
		}
		got++
	}

	assert.Equal(t, 100, got)
	assert.Same(t, boom, gotErr)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, f.observer.failures)
}

func TestBoostService_MyBoosts(t *testing.T) {
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		require.Equal(t, "premium.getMyBoosts", req.Method)
		return domain.NewEnvelope(rv("premium.myBoosts",
			"my_boosts", anyList(
				rv("myBoost", "slot", int64(1), "date", t0, "expires", t0+86400,
					"peer", rv("peerChannel", "channel_id", int64(123))),
				rv("myBoostFromTheFuture", "slot", int64(2)),
			),
			"chats", anyList(rv("channel", "id", int64(123), "title", "News", "access_hash", newsHash)),
		)), nil
	})
	service := NewBoostService(f.caller, f.peers)

	boosts, err := service.MyBoosts(context.Background())

	require.NoError(t, err)
	require.Len(t, boosts, 1)
	assert.Equal(t, "News", boosts[0].Chat.Title)
	assert.Equal(t, []string{"MyBoost/myBoostFromTheFuture"}, f.observer.dropped)
}

func TestBoostService_Status(t *testing.T) {
	f := newFixture(t, func(req domain.Request) (*domain.RawEnvelope, error) {
		assert.Equal(t, newsInputPeer(), req.Params["peer"])
		return domain.NewEnvelope(rv("premium.boostsStatus",
			"level", int64(2),
			"current_level_boosts", int64(10),
			"boosts", int64(12),
			"boost_url", "https://t.me/boost/news",
		)), nil
	})
	service := NewBoostService(f.caller, f.peers)

	status, err := service.Status(context.Background(), "@news")

	require.NoError(t, err)
	assert.Equal(t, 2, status.Level)
	assert.Equal(t, "https://t.me/boost/news", status.BoostURL)
}
