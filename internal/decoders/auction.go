package decoders

import (
	"time"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerAuctions(r *Registry) {
	r.Register(domain.FamilyAuctionState, "starGiftAuctionState", decodeAuctionActive)
	r.Register(domain.FamilyAuctionState, "starGiftAuctionStateFinished", decodeAuctionFinished)
	r.Register(domain.FamilyAuctionState, "starGiftAuctionStateNotModified", decodeAuctionNotModified)
	r.Register(domain.FamilyAuctionBidLevel, "auctionBidLevel", decodeAuctionBidLevel)
	r.Register(domain.FamilyAuctionRound, "starGiftAuctionRound", decodeAuctionRound)
	r.Register(domain.FamilyAuctionUserState, "starGiftAuctionUserState", decodeAuctionUserState)
	r.Register(domain.FamilyAuctionStateResult, "payments.starGiftAuctionState", decodeAuctionSnapshot)
}

func decodeAuctionActive(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAuctionState, v)
	st := domain.AuctionActive{
		Version:      int(f.Int("version")),
		StartDate:    f.Time("start_date"),
		EndDate:      f.Time("end_date"),
		MinBidAmount: f.Int("min_bid_amount"),
		NextRoundAt:  f.OptTime("next_round_at"),
		LastGiftNum:  int(f.OptInt("last_gift_num")),
		GiftsLeft:    int(f.OptInt("gifts_left")),
		CurrentRound: int(f.OptInt("current_round")),
		TotalRounds:  int(f.OptInt("total_rounds")),
	}
	levels := f.Variants("bid_levels")
	rounds := f.Variants("rounds")
	bidders := f.Ints("top_bidders")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if st.BidLevels, err = many[domain.AuctionBidLevel](s, domain.FamilyAuctionBidLevel, levels); err != nil {
		return nil, err
	}
	if st.Rounds, err = many[domain.AuctionRound](s, domain.FamilyAuctionRound, rounds); err != nil {
		return nil, err
	}
	if st.TopBidders, err = s.users(bidders); err != nil {
		return nil, err
	}
	return st, nil
}

func decodeAuctionFinished(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAuctionState, v)
	st := domain.AuctionFinished{
		StartDate:           f.Time("start_date"),
		EndDate:             f.Time("end_date"),
		AveragePrice:        f.Int("average_price"),
		ListedCount:         int(f.OptInt("listed_count")),
		FragmentListedCount: int(f.OptInt("fragment_listed_count")),
		FragmentListedURL:   f.OptString("fragment_listed_url"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func decodeAuctionNotModified(_ *Session, _ domain.RawVariant) (any, error) {
	return domain.AuctionNotModified{}, nil
}

func decodeAuctionBidLevel(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAuctionBidLevel, v)
	l := domain.AuctionBidLevel{
		Position: int(f.Int("pos")),
		Amount:   f.Int("amount"),
		Date:     f.Time("date"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

func decodeAuctionRound(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAuctionRound, v)
	r := domain.AuctionRound{
		Number:   int(f.Int("num")),
		Duration: time.Duration(f.Int("duration")) * time.Second,
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeAuctionUserState(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAuctionUserState, v)
	st := &domain.AuctionUserState{
		BidAmount:     f.OptInt("bid_amount"),
		BidDate:       f.OptTime("bid_date"),
		MinBidAmount:  f.OptInt("min_bid_amount"),
		AcquiredCount: int(f.OptInt("acquired_count")),
		Returned:      f.Flag("returned"),
	}
	peer, err := s.optPeer(f, "bid_peer")
	if err != nil {
		return nil, err
	}
	st.BidPeer = peer
	return st, nil
}

func decodeAuctionSnapshot(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAuctionStateResult, v)
	snap := &domain.AuctionSnapshot{
		Timeout: f.Seconds("timeout"),
	}
	if gift, ok := f.OptVariant("gift"); ok {
		gf := read(domain.FamilyAuctionStateResult, gift)
		snap.GiftID = gf.OptInt("id")
		if err := gf.Err(); err != nil {
			return nil, err
		}
	}
	stateRaw := f.Variant("state")
	userRaw, hasUser := f.OptVariant("user_state")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if snap.State, err = one[domain.AuctionState](s, domain.FamilyAuctionState, stateRaw, true); err != nil {
		return nil, err
	}
	if hasUser {
		if snap.UserState, err = one[*domain.AuctionUserState](s, domain.FamilyAuctionUserState, userRaw, false); err != nil {
			return nil, err
		}
	}
	return snap, nil
}
