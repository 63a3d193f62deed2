package domain

import "time"

// Gift is a star gift.
// Implementations are *StarGift, *UniqueStarGift and Unsupported.
type Gift interface {
	isGift()
}

// StarGift is a gift type that can be bought with stars.
type StarGift struct {
	ID    int64
	Title string

	Stars        int64
	ConvertStars int64

	// UpgradeStars is the price of upgrading the gift to a collectible.
	UpgradeStars int64

	Limited        bool
	SoldOut        bool
	Birthday       bool
	CanUpgrade     bool
	RequirePremium bool

	// AvailabilityRemains and AvailabilityTotal are set for limited gifts.
	AvailabilityRemains int64
	AvailabilityTotal   int64

	// FirstSaleDate and LastSaleDate are set for sold out gifts.
	FirstSaleDate time.Time
	LastSaleDate  time.Time
}

// UniqueStarGift is a collectible upgraded from a star gift.
type UniqueStarGift struct {
	ID     int64
	GiftID int64
	Title  string
	Slug   string
	Num    int64

	AvailabilityIssued int64
	AvailabilityTotal  int64

	RequirePremium bool
	Burned         bool
	Crafted        bool

	// Owner is nil when the owner is only known by name or address.
	Owner        *Chat
	OwnerName    string
	OwnerAddress string
	GiftAddress  string
}

func (*StarGift) isGift()       {}
func (*UniqueStarGift) isGift() {}

// SavedStarGift is a gift kept on a profile.
type SavedStarGift struct {
	Gift Gift

	// From is nil for anonymous gifts.
	From      *Chat
	Date      time.Time
	MessageID int64
	SavedID   int64

	ConvertStars int64
	UpgradeStars int64

	NameHidden bool
	Unsaved    bool
	Refunded   bool
	CanUpgrade bool
}

// StarGifts is the catalogue of gifts that can be bought.
type StarGifts struct {
	// Modified is false when the server reported no change since Hash.
	Modified bool
	Hash     int64
	Gifts    []Gift
}

// SavedReactionTag is a reaction used to tag saved messages.
type SavedReactionTag struct {
	Reaction Reaction
	Title    string
	Count    int
}
