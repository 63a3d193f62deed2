package domain

import (
	"strings"
	"time"
)

// UserStatus is a user's last seen presence.
type UserStatus string

// User statuses.
const (
	UserStatusOnline    UserStatus = "online"
	UserStatusOffline   UserStatus = "offline"
	UserStatusRecently  UserStatus = "recently"
	UserStatusLastWeek  UserStatus = "last_week"
	UserStatusLastMonth UserStatus = "last_month"
	UserStatusLongAgo   UserStatus = "long_ago"
)

// String returns the string representation.
func (s UserStatus) String() string {
	return string(s)
}

// PeerColor is the accent colour set of a user or channel.
type PeerColor struct {
	// Color is the accent colour index, or the RGB accent for collectibles.
	Color int

	// BackgroundEmojiID is the custom emoji used as reply background.
	BackgroundEmojiID int64

	// CollectibleID is set when the colour comes from a collectible gift.
	CollectibleID int64

	// GiftEmojiID is the emoji of the collectible gift.
	GiftEmojiID int64

	// Colors are the RGB colours of a collectible palette.
	Colors []int
}

// IsCollectible returns true if the colour comes from a collectible gift.
func (c PeerColor) IsCollectible() bool {
	return c.CollectibleID != 0
}

// User is a Telegram user or bot.
type User struct {
	ID int64

	IsSelf          bool
	IsContact       bool
	IsMutualContact bool
	IsDeleted       bool
	IsBot           bool
	IsVerified      bool
	IsRestricted    bool
	IsScam          bool
	IsFake          bool
	IsSupport       bool
	IsPremium       bool

	FirstName    string
	LastName     string
	Username     string
	Phone        string
	LanguageCode string

	// Status is empty for bots, which have no presence.
	Status          UserStatus
	LastOnlineDate  time.Time
	NextOfflineDate time.Time

	Color        *PeerColor
	ProfileColor *PeerColor

	// Unresolved marks an identifier-only stand-in for a user that was
	// referenced but not included in the envelope.
	Unresolved bool
}

// UnresolvedUser returns the placeholder used for a referenced user that
// could not be resolved. Only ID is set.
func UnresolvedUser(id int64) *User {
	return &User{ID: id, Unresolved: true}
}

// FullName joins the first and last names.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Mention returns @username when set, else the full name.
func (u *User) Mention() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if name := u.FullName(); name != "" {
		return name
	}
	return ""
}
