package domain

import "time"

// BoostSource describes how a boost was obtained. The wire carries it as
// the separate gift, giveaway and unclaimed flags.
type BoostSource string

// Boost sources.
const (
	BoostSourceRegular   BoostSource = "regular"
	BoostSourceGift      BoostSource = "gift"
	BoostSourceGiveaway  BoostSource = "giveaway"
	BoostSourceUnclaimed BoostSource = "unclaimed"
)

// String returns the string representation.
func (s BoostSource) String() string {
	return string(s)
}

// Boost is one boost applied to a channel.
type Boost struct {
	ID string

	// User is nil for unclaimed giveaway boosts.
	User *User

	Date              time.Time
	ExpireDate        time.Time
	GiveawayMessageID int64
	Source            BoostSource
	Multiplier        int

	// Stars is set for boosts that came from a stars giveaway.
	Stars int64
}

// MyBoost is one of the current user's boost slots.
type MyBoost struct {
	Slot int

	// Chat is nil when the slot is free.
	Chat *Chat

	Date              time.Time
	ExpireDate        time.Time
	CooldownUntilDate time.Time
}

// PrepaidGiveaway is a giveaway paid for in advance.
type PrepaidGiveaway struct {
	ID       int64
	Quantity int
	Months   int
	Stars    int64
	Boosts   int
	Date     time.Time
}

// IsStars returns true for a stars giveaway.
func (g PrepaidGiveaway) IsStars() bool {
	return g.Stars != 0
}

// BoostsStatus is a channel's boost level and progress.
type BoostsStatus struct {
	Level              int
	CurrentLevelBoosts int
	Boosts             int
	GiftBoosts         int
	NextLevelBoosts    int

	// PremiumAudience is the share of premium subscribers, if known.
	PremiumAudience *PercentValue

	BoostURL         string
	PrepaidGiveaways []PrepaidGiveaway
	MyBoost          bool
	MyBoostSlots     []int
}

// PercentValue is a part of a total.
type PercentValue struct {
	Part  float64
	Total float64
}

// Percent returns Part as a percentage of Total.
func (p PercentValue) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return p.Part / p.Total * 100
}
