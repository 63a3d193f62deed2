package mcp

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

// seqOf yields items and then err, if set.
func seqOf[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// mockBoostService is a mock implementation of driving.BoostService.
type mockBoostService struct {
	boosts   []domain.Boost
	err      error
	lastChat string
	lastOpts domain.BoostListOptions
}

func (m *mockBoostService) List(_ context.Context, chat string, opts domain.BoostListOptions) iter.Seq2[domain.Boost, error] {
	m.lastChat = chat
	m.lastOpts = opts
	return seqOf(m.boosts, m.err)
}

func (m *mockBoostService) MyBoosts(_ context.Context) ([]domain.MyBoost, error) {
	return nil, m.err
}

func (m *mockBoostService) Status(_ context.Context, _ string) (*domain.BoostsStatus, error) {
	return &domain.BoostsStatus{}, m.err
}

// mockPaymentService is a mock implementation of driving.PaymentService.
type mockPaymentService struct {
	transactions []domain.StarsTransaction
	saved        []domain.SavedStarGift
	err          error
	lastPeer     string
	lastOpts     domain.TransactionListOptions
}

func (m *mockPaymentService) Transactions(_ context.Context, peer string, opts domain.TransactionListOptions) iter.Seq2[domain.StarsTransaction, error] {
	m.lastPeer = peer
	m.lastOpts = opts
	return seqOf(m.transactions, m.err)
}

func (m *mockPaymentService) Subscriptions(_ context.Context, _ string, _ domain.ListOptions) iter.Seq2[domain.StarsSubscription, error] {
	return seqOf[domain.StarsSubscription](nil, m.err)
}

func (m *mockPaymentService) Status(_ context.Context, _ string) (*domain.StarsStatus, error) {
	return &domain.StarsStatus{}, m.err
}

func (m *mockPaymentService) AuctionState(_ context.Context, _ int64, _ int) (*domain.AuctionSnapshot, error) {
	return &domain.AuctionSnapshot{}, m.err
}

func (m *mockPaymentService) StarGifts(_ context.Context) (*domain.StarGifts, error) {
	return &domain.StarGifts{}, m.err
}

func (m *mockPaymentService) SavedStarGifts(_ context.Context, peer string, _ domain.ListOptions) iter.Seq2[domain.SavedStarGift, error] {
	m.lastPeer = peer
	return seqOf(m.saved, m.err)
}

func (m *mockPaymentService) UniqueStarGift(_ context.Context, _ string) (*domain.UniqueStarGift, error) {
	return &domain.UniqueStarGift{}, m.err
}

// mockStoryService is a mock implementation of driving.StoryService.
type mockStoryService struct {
	viewers     []domain.StoryViewer
	err         error
	lastStoryID int64
	lastOpts    domain.StoryViewsOptions
}

func (m *mockStoryService) Views(_ context.Context, _ string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error] {
	m.lastStoryID = storyID
	m.lastOpts = opts
	return seqOf(m.viewers, m.err)
}

func (m *mockStoryService) Reactions(_ context.Context, _ string, _ int64, _ domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error] {
	return seqOf(m.viewers, m.err)
}

func (m *mockStoryService) PublicForwards(_ context.Context, _ string, _ int64, _ domain.ListOptions) iter.Seq2[domain.PublicForward, error] {
	return seqOf[domain.PublicForward](nil, m.err)
}

func (m *mockStoryService) PeerStories(_ context.Context, _ string) (*domain.PeerStories, error) {
	return &domain.PeerStories{}, m.err
}

func (m *mockStoryService) AllStories(_ context.Context, _ domain.AllStoriesOptions) (*domain.AllStories, error) {
	return &domain.AllStories{}, m.err
}

// mockDecodeService is a mock implementation of driving.DecodeService.
type mockDecodeService struct {
	result     *driving.DecodeResult
	err        error
	tags       map[domain.Family][]string
	lastFamily domain.Family
	lastPolicy domain.UnsupportedPolicy
}

func (m *mockDecodeService) DecodeEnvelope(_ context.Context, family domain.Family, _ []byte, policy domain.UnsupportedPolicy) (*driving.DecodeResult, error) {
	m.lastFamily = family
	m.lastPolicy = policy
	return m.result, m.err
}

func (m *mockDecodeService) Families() []domain.Family {
	families := make([]domain.Family, 0, len(m.tags))
	for f := range m.tags {
		families = append(families, f)
	}
	return families
}

func (m *mockDecodeService) Tags(family domain.Family) []string {
	return m.tags[family]
}

// mockPeerService is a mock implementation of driving.PeerService.
type mockPeerService struct {
	peers []domain.PeerRecord
	err   error
}

func (m *mockPeerService) Record(_ context.Context, _ domain.Entities) error {
	return m.err
}

func (m *mockPeerService) Resolve(_ context.Context, ref string) (*domain.PeerRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.peers {
		if "@"+m.peers[i].Username == ref {
			return &m.peers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPeerService) InputPeer(_ context.Context, _ string) (domain.RawVariant, error) {
	return domain.RawVariant{}, m.err
}

func (m *mockPeerService) List(_ context.Context) ([]domain.PeerRecord, error) {
	return m.peers, m.err
}
