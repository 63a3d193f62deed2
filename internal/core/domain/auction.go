package domain

import "time"

// AuctionState is the state of a star gift auction.
// Implementations are AuctionActive, AuctionFinished, AuctionNotModified
// and Unsupported.
type AuctionState interface {
	isAuctionState()
}

// AuctionBidLevel is a bid position on the auction ladder.
type AuctionBidLevel struct {
	Position int
	Amount   int64
	Date     time.Time
}

// AuctionRound is one round of an auction.
type AuctionRound struct {
	Number   int
	Duration time.Duration
}

// AuctionActive is an auction that is still taking bids.
type AuctionActive struct {
	Version      int
	StartDate    time.Time
	EndDate      time.Time
	MinBidAmount int64
	BidLevels    []AuctionBidLevel

	// TopBidders are resolved from the envelope's users.
	TopBidders []*User

	NextRoundAt  time.Time
	LastGiftNum  int
	GiftsLeft    int
	CurrentRound int
	TotalRounds  int
	Rounds       []AuctionRound
}

// AuctionFinished is an auction that has ended.
type AuctionFinished struct {
	StartDate           time.Time
	EndDate             time.Time
	AveragePrice        int64
	ListedCount         int
	FragmentListedCount int
	FragmentListedURL   string
}

// AuctionNotModified reports that the caller's known version is current.
type AuctionNotModified struct{}

func (AuctionActive) isAuctionState()      {}
func (AuctionFinished) isAuctionState()    {}
func (AuctionNotModified) isAuctionState() {}

// AuctionUserState is the current user's position in an auction.
type AuctionUserState struct {
	BidAmount    int64
	BidDate      time.Time
	MinBidAmount int64

	// BidPeer is the peer the bid was placed on behalf of, if any.
	BidPeer *Chat

	AcquiredCount int
	Returned      bool
}

// AuctionSnapshot is the full answer to an auction state query.
type AuctionSnapshot struct {
	GiftID    int64
	State     AuctionState
	UserState *AuctionUserState
	Timeout   time.Duration
}
