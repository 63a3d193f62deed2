package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Decode == nil {
		ports.Decode = &mockDecodeService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleListBoosts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns boosts", func(t *testing.T) {
		boosts := &mockBoostService{boosts: []domain.Boost{
			{ID: "b1", User: &domain.User{ID: 42, FirstName: "Alice"}, Date: t0, ExpireDate: t0.Add(24 * time.Hour), Source: domain.BoostSourceRegular, Multiplier: 2},
			{ID: "b2", Source: domain.BoostSourceGiveaway, Stars: 500},
		}}
		server := newTestServer(t, &Ports{Boost: boosts})

		_, output, err := server.handleListBoosts(ctx, nil, BoostsInput{Chat: "@news", Gifts: true})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "@news", boosts.lastChat)
		assert.True(t, boosts.lastOpts.Gifts)
		assert.Equal(t, defaultLimit, boosts.lastOpts.Limit)

		assert.Equal(t, BoostOutput{
			ID:         "b1",
			UserID:     42,
			UserName:   "Alice",
			Source:     "regular",
			Date:       "2025-03-01T12:00:00Z",
			ExpireDate: "2025-03-02T12:00:00Z",
			Multiplier: 2,
		}, output.Boosts[0])
		assert.Equal(t, int64(500), output.Boosts[1].Stars)
		assert.Empty(t, output.Boosts[1].ExpireDate)
	})

	t.Run("passes limit", func(t *testing.T) {
		boosts := &mockBoostService{}
		server := newTestServer(t, &Ports{Boost: boosts})

		_, output, err := server.handleListBoosts(ctx, nil, BoostsInput{Chat: "@news", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 5, boosts.lastOpts.Limit)
		assert.NotNil(t, output.Boosts)
		assert.Zero(t, output.Count)
	})

	t.Run("returns error mid stream", func(t *testing.T) {
		boosts := &mockBoostService{
			boosts: []domain.Boost{{ID: "b1"}},
			err:    domain.ErrRateLimited,
		}
		server := newTestServer(t, &Ports{Boost: boosts})

		_, _, err := server.handleListBoosts(ctx, nil, BoostsInput{Chat: "@news"})

		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})

	t.Run("service not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleListBoosts(ctx, nil, BoostsInput{Chat: "@news"})

		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestServer_handleListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("returns transactions", func(t *testing.T) {
		payments := &mockPaymentService{transactions: []domain.StarsTransaction{
			{
				ID:     "tx1",
				Amount: domain.StarsAmount{Amount: -25},
				Date:   t0,
				Peer:   domain.TransactionPeer{Type: domain.TransactionPeerChat, Chat: &domain.Chat{ID: 42, FirstName: "Alice"}},
				Title:  "Gift",
				State:  domain.TransactionCompleted,
			},
			{ID: "tx2", Amount: domain.StarsAmount{Amount: 100}, Peer: domain.TransactionPeer{Type: domain.TransactionPeerFragment}},
		}}
		server := newTestServer(t, &Ports{Payment: payments})

		_, output, err := server.handleListTransactions(ctx, nil, TransactionsInput{Outbound: true, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.True(t, payments.lastOpts.Outbound)
		assert.Equal(t, 10, payments.lastOpts.Limit)
		assert.Empty(t, payments.lastPeer)

		assert.Equal(t, "tx1", output.Transactions[0].ID)
		assert.Equal(t, "-25", output.Transactions[0].Amount)
		assert.Equal(t, "Alice", output.Transactions[0].PeerName)
		assert.Equal(t, "peer", output.Transactions[0].PeerType)
		assert.Equal(t, "fragment", output.Transactions[1].PeerType)
		assert.Empty(t, output.Transactions[1].PeerName)
	})

	t.Run("inbound and outbound are exclusive", func(t *testing.T) {
		server := newTestServer(t, &Ports{Payment: &mockPaymentService{}})

		_, _, err := server.handleListTransactions(ctx, nil, TransactionsInput{Inbound: true, Outbound: true})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("service not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleListTransactions(ctx, nil, TransactionsInput{})

		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestServer_handleListSavedGifts(t *testing.T) {
	ctx := context.Background()

	t.Run("returns saved gifts", func(t *testing.T) {
		payments := &mockPaymentService{saved: []domain.SavedStarGift{
			{
				Gift: &domain.StarGift{ID: 5, Title: "Rose", Stars: 25},
				From: &domain.Chat{ID: 42, FirstName: "Alice"},
				Date: t0,
			},
			{Gift: &domain.UniqueStarGift{GiftID: 5, Title: "Rose", Slug: "rose-12"}},
			{Gift: domain.Unsupported{Family: domain.FamilyStarGift, Tag: "starGiftFromTheFuture"}},
		}}
		server := newTestServer(t, &Ports{Payment: payments})

		_, output, err := server.handleListSavedGifts(ctx, nil, SavedGiftsInput{Peer: "@alice"})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
		assert.Equal(t, "@alice", payments.lastPeer)

		assert.Equal(t, "gift", output.Gifts[0].Kind)
		assert.Equal(t, int64(25), output.Gifts[0].Stars)
		assert.Equal(t, "Alice", output.Gifts[0].FromName)
		assert.Equal(t, "collectible", output.Gifts[1].Kind)
		assert.Equal(t, "rose-12", output.Gifts[1].Slug)
		assert.Empty(t, output.Gifts[1].FromName)
		assert.Equal(t, "unsupported", output.Gifts[2].Kind)
		assert.Equal(t, "starGiftFromTheFuture", output.Gifts[2].Tag)
	})

	t.Run("service not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleListSavedGifts(ctx, nil, SavedGiftsInput{})

		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestServer_handleListStoryViews(t *testing.T) {
	ctx := context.Background()

	stories := &mockStoryService{viewers: []domain.StoryViewer{
		domain.StoryView{
			Peer:     &domain.Chat{ID: 42, FirstName: "Alice"},
			Date:     t0,
			Reaction: &domain.Reaction{Type: domain.ReactionTypeEmoji, Emoji: "👍"},
		},
		domain.StoryForwardView{Message: &domain.Message{ID: 9, Date: t0, Chat: &domain.Chat{ID: -1000000000123, Title: "News"}}},
		domain.StoryRepostView{Chat: &domain.Chat{ID: -1000000000456, Title: "Other"}, Story: &domain.Story{ID: 3, Date: t0}},
		domain.Unsupported{Family: domain.FamilyStoryView, Tag: "storyViewFuture"},
	}}
	server := newTestServer(t, &Ports{Story: stories})

	_, output, err := server.handleListStoryViews(ctx, nil, StoryViewsInput{StoryID: 7, Query: "ali", JustContacts: true})

	require.NoError(t, err)
	assert.Equal(t, int64(7), stories.lastStoryID)
	assert.Equal(t, "ali", stories.lastOpts.Query)
	assert.True(t, stories.lastOpts.JustContacts)

	require.Equal(t, 4, output.Count)
	assert.Equal(t, ViewerOutput{Kind: "view", PeerID: 42, Name: "Alice", Date: "2025-03-01T12:00:00Z", Reaction: "👍"}, output.Viewers[0])
	assert.Equal(t, ViewerOutput{Kind: "forward", PeerID: -1000000000123, Name: "News", Date: "2025-03-01T12:00:00Z"}, output.Viewers[1])
	assert.Equal(t, ViewerOutput{Kind: "repost", PeerID: -1000000000456, Name: "Other", Date: "2025-03-01T12:00:00Z"}, output.Viewers[2])
	assert.Equal(t, ViewerOutput{Kind: "unsupported", Tag: "storyViewFuture"}, output.Viewers[3])
}

func TestReactionText(t *testing.T) {
	tests := []struct {
		name     string
		reaction domain.Reaction
		expected string
	}{
		{"emoji", domain.Reaction{Type: domain.ReactionTypeEmoji, Emoji: "🔥"}, "🔥"},
		{"custom emoji", domain.Reaction{Type: domain.ReactionTypeCustomEmoji, CustomEmojiID: 12}, "custom:12"},
		{"paid", domain.Reaction{Type: domain.ReactionTypePaid}, "paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, reactionText(tt.reaction))
		})
	}
}

func TestServer_handleDecodeEnvelope(t *testing.T) {
	ctx := context.Background()

	t.Run("returns value and dropped variants", func(t *testing.T) {
		decode := &mockDecodeService{result: &driving.DecodeResult{
			Value:   &domain.BoostsStatus{Level: 3},
			Dropped: []domain.Unsupported{{Family: domain.FamilyPrepaidGiveaway, Tag: "prepaidFuture"}},
		}}
		server := newTestServer(t, &Ports{Decode: decode})

		_, output, err := server.handleDecodeEnvelope(ctx, nil, DecodeInput{
			Family:   "premium.BoostsStatus",
			Envelope: `{"_":"premium.boostsStatus"}`,
			Policy:   "surface",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.FamilyBoostsStatus, decode.lastFamily)
		assert.Equal(t, domain.PolicySurface, decode.lastPolicy)
		assert.Equal(t, &domain.BoostsStatus{Level: 3}, output.Value)
		assert.Equal(t, []UnsupportedOutput{{Family: "PrepaidGiveaway", Tag: "prepaidFuture"}}, output.Dropped)
	})

	t.Run("empty policy uses configured default", func(t *testing.T) {
		decode := &mockDecodeService{result: &driving.DecodeResult{}}
		server := newTestServer(t, &Ports{Decode: decode})

		_, output, err := server.handleDecodeEnvelope(ctx, nil, DecodeInput{Family: "premium.BoostsStatus", Envelope: "{}"})

		require.NoError(t, err)
		assert.Empty(t, decode.lastPolicy)
		assert.NotNil(t, output.Dropped)
	})

	t.Run("invalid policy", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleDecodeEnvelope(ctx, nil, DecodeInput{Family: "x", Envelope: "{}", Policy: "ignore"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("decode failure", func(t *testing.T) {
		decode := &mockDecodeService{err: domain.ErrMalformedVariant}
		server := newTestServer(t, &Ports{Decode: decode})

		_, _, err := server.handleDecodeEnvelope(ctx, nil, DecodeInput{Family: "x", Envelope: "{}"})

		assert.ErrorIs(t, err, domain.ErrMalformedVariant)
	})

	t.Run("service not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})
		server.ports.Decode = nil

		_, _, err := server.handleDecodeEnvelope(ctx, nil, DecodeInput{Family: "x", Envelope: "{}"})

		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestServer_handleResolvePeer(t *testing.T) {
	ctx := context.Background()
	peers := &mockPeerService{peers: []domain.PeerRecord{
		{ID: -1000000000123, Type: domain.ChatTypeChannel, AccessHash: -555, Username: "news", Name: "News"},
	}}

	t.Run("resolves", func(t *testing.T) {
		server := newTestServer(t, &Ports{Peer: peers})

		_, output, err := server.handleResolvePeer(ctx, nil, ResolvePeerInput{Ref: "@news"})

		require.NoError(t, err)
		assert.Equal(t, PeerOutput{
			ID:         -1000000000123,
			Type:       "channel",
			AccessHash: "-555",
			Username:   "news",
			Name:       "News",
		}, output)
	})

	t.Run("not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Peer: peers})

		_, _, err := server.handleResolvePeer(ctx, nil, ResolvePeerInput{Ref: "@nobody"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Peer: &mockPeerService{err: errors.New("disk full")}})

		_, _, err := server.handleResolvePeer(ctx, nil, ResolvePeerInput{Ref: "@news"})

		assert.EqualError(t, err, "disk full")
	})

	t.Run("service not configured", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleResolvePeer(ctx, nil, ResolvePeerInput{Ref: "@news"})

		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}
