package cli

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

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

type mockBoostService struct {
	boosts   []domain.Boost
	mine     []domain.MyBoost
	status   *domain.BoostsStatus
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
	return m.mine, m.err
}

func (m *mockBoostService) Status(_ context.Context, chat string) (*domain.BoostsStatus, error) {
	m.lastChat = chat
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

type mockPaymentService struct {
	transactions []domain.StarsTransaction
	subs         []domain.StarsSubscription
	status       *domain.StarsStatus
	auction      *domain.AuctionSnapshot
	catalog      *domain.StarGifts
	saved        []domain.SavedStarGift
	unique       *domain.UniqueStarGift
	err          error
	lastPeer     string
	lastOpts     domain.TransactionListOptions
	lastListOpts domain.ListOptions
	lastGiftID   int64
	lastVersion  int
	lastSlug     string
}

func (m *mockPaymentService) Transactions(_ context.Context, peer string, opts domain.TransactionListOptions) iter.Seq2[domain.StarsTransaction, error] {
	m.lastPeer = peer
	m.lastOpts = opts
	return seqOf(m.transactions, m.err)
}

func (m *mockPaymentService) Subscriptions(_ context.Context, peer string, _ domain.ListOptions) iter.Seq2[domain.StarsSubscription, error] {
	m.lastPeer = peer
	return seqOf(m.subs, m.err)
}

func (m *mockPaymentService) Status(_ context.Context, peer string) (*domain.StarsStatus, error) {
	m.lastPeer = peer
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

func (m *mockPaymentService) AuctionState(_ context.Context, giftID int64, version int) (*domain.AuctionSnapshot, error) {
	m.lastGiftID = giftID
	m.lastVersion = version
	if m.err != nil {
		return nil, m.err
	}
	return m.auction, nil
}

func (m *mockPaymentService) StarGifts(_ context.Context) (*domain.StarGifts, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func (m *mockPaymentService) SavedStarGifts(_ context.Context, peer string, opts domain.ListOptions) iter.Seq2[domain.SavedStarGift, error] {
	m.lastPeer = peer
	m.lastListOpts = opts
	return seqOf(m.saved, m.err)
}

func (m *mockPaymentService) UniqueStarGift(_ context.Context, slug string) (*domain.UniqueStarGift, error) {
	m.lastSlug = slug
	if m.err != nil {
		return nil, m.err
	}
	return m.unique, nil
}

type mockStoryService struct {
	viewers     []domain.StoryViewer
	forwards    []domain.PublicForward
	peerStories *domain.PeerStories
	all         *domain.AllStories
	err         error
	lastPeer    string
	lastStoryID int64
	lastOpts    domain.StoryViewsOptions
	lastAllOpts domain.AllStoriesOptions
}

func (m *mockStoryService) Views(_ context.Context, peer string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error] {
	m.lastPeer = peer
	m.lastStoryID = storyID
	m.lastOpts = opts
	return seqOf(m.viewers, m.err)
}

func (m *mockStoryService) Reactions(_ context.Context, peer string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error] {
	m.lastPeer = peer
	m.lastStoryID = storyID
	m.lastOpts = opts
	return seqOf(m.viewers, m.err)
}

func (m *mockStoryService) PublicForwards(_ context.Context, peer string, storyID int64, _ domain.ListOptions) iter.Seq2[domain.PublicForward, error] {
	m.lastPeer = peer
	m.lastStoryID = storyID
	return seqOf(m.forwards, m.err)
}

func (m *mockStoryService) PeerStories(_ context.Context, peer string) (*domain.PeerStories, error) {
	m.lastPeer = peer
	if m.err != nil {
		return nil, m.err
	}
	return m.peerStories, nil
}

func (m *mockStoryService) AllStories(_ context.Context, opts domain.AllStoriesOptions) (*domain.AllStories, error) {
	m.lastAllOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.all, nil
}

type mockDialogService struct {
	dialogs  []domain.SavedDialog
	tags     []domain.SavedReactionTag
	err      error
	lastOpts domain.SavedDialogsOptions
	lastPeer string
}

func (m *mockDialogService) SavedDialogs(_ context.Context, opts domain.SavedDialogsOptions) iter.Seq2[domain.SavedDialog, error] {
	m.lastOpts = opts
	return seqOf(m.dialogs, m.err)
}

func (m *mockDialogService) SavedReactionTags(_ context.Context, peer string) ([]domain.SavedReactionTag, error) {
	m.lastPeer = peer
	return m.tags, m.err
}

type mockGroupCallService struct {
	participants []domain.GroupCallParticipant
	err          error
	lastCall     domain.GroupCallRef
}

func (m *mockGroupCallService) Participants(_ context.Context, call domain.GroupCallRef, _ domain.ListOptions) iter.Seq2[domain.GroupCallParticipant, error] {
	m.lastCall = call
	return seqOf(m.participants, m.err)
}

type mockPeerService struct {
	peers   []domain.PeerRecord
	err     error
	lastRef string
}

func (m *mockPeerService) Record(_ context.Context, _ domain.Entities) error {
	return m.err
}

func (m *mockPeerService) Resolve(_ context.Context, ref string) (*domain.PeerRecord, error) {
	m.lastRef = ref
	if m.err != nil {
		return nil, m.err
	}
	if len(m.peers) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.peers[0], nil
}

func (m *mockPeerService) InputPeer(_ context.Context, _ string) (domain.RawVariant, error) {
	return domain.RawVariant{}, m.err
}

func (m *mockPeerService) List(_ context.Context) ([]domain.PeerRecord, error) {
	return m.peers, m.err
}

type mockDecodeService struct {
	result     *driving.DecodeResult
	err        error
	tags       map[domain.Family][]string
	lastFamily domain.Family
	lastData   []byte
	lastPolicy domain.UnsupportedPolicy
}

func (m *mockDecodeService) DecodeEnvelope(_ context.Context, family domain.Family, data []byte, policy domain.UnsupportedPolicy) (*driving.DecodeResult, error) {
	m.lastFamily = family
	m.lastData = data
	m.lastPolicy = policy
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockDecodeService) Families() []domain.Family {
	return []domain.Family{domain.FamilyBoost, domain.FamilyStoryView}
}

func (m *mockDecodeService) Tags(family domain.Family) []string {
	return m.tags[family]
}

type mockSettingsService struct {
	settings   domain.AppSettings
	validErr   error
	setErr     error
	lastKey    string
	lastValue  string
	lastPolicy domain.UnsupportedPolicy
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.lastKey = key
	m.lastValue = value
	return m.setErr
}

func (m *mockSettingsService) SetPolicy(p domain.UnsupportedPolicy) error {
	if !p.IsValid() {
		return errors.New("invalid policy")
	}
	m.lastPolicy = p
	m.settings.Decode.Policy = p
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validErr
}

func (m *mockSettingsService) Keys() []string {
	return []string{"decode.policy", "transport.cassette"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupTestServices installs s for the duration of the test.
func setupTestServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns what it wrote.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
