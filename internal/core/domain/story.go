package domain

import "time"

// StoryPrivacy is the audience a story was posted to. The wire carries it
// as the public, close_friends, contacts and selected_contacts flags.
type StoryPrivacy string

// Story privacy levels.
const (
	StoryPrivacyPublic           StoryPrivacy = "public"
	StoryPrivacyCloseFriends     StoryPrivacy = "close_friends"
	StoryPrivacyContacts         StoryPrivacy = "contacts"
	StoryPrivacySelectedContacts StoryPrivacy = "selected_contacts"
	StoryPrivacyPrivate          StoryPrivacy = "private"
)

// String returns the string representation.
func (p StoryPrivacy) String() string {
	return string(p)
}

// Story is a single story item.
type Story struct {
	ID int64

	// Chat is the peer whose story list contains the story, when known.
	Chat *Chat

	// From is the actual poster for stories posted on behalf of a channel.
	From *Chat

	Date       time.Time
	ExpireDate time.Time
	Caption    string
	Media      *StoryMedia
	MediaAreas []MediaArea
	Privacy    StoryPrivacy

	Pinned    bool
	Edited    bool
	Outgoing  bool
	Protected bool

	Views         *StoryViews
	ForwardHeader *StoryForwardHeader
	SentReaction  *Reaction

	// Deleted and Skipped mark stories the server only reported by ID.
	Deleted bool
	Skipped bool
}

// StoryForwardHeader describes where a reposted story came from.
type StoryForwardHeader struct {
	// From is nil when the original poster is hidden; FromName is set instead.
	From     *Chat
	FromName string
	StoryID  int64
	Modified bool
}

// MediaType is the kind of media attached to a story.
type MediaType string

// Media types.
const (
	MediaTypePhoto       MediaType = "photo"
	MediaTypeVideo       MediaType = "video"
	MediaTypeDocument    MediaType = "document"
	MediaTypeUnsupported MediaType = "unsupported"
)

// StoryMedia is the media of a story.
type StoryMedia struct {
	Type     MediaType
	ID       int64
	MimeType string
	Spoiler  bool
}

// MediaAreaType is the kind of interactive area placed on a story.
type MediaAreaType string

// Media area types.
const (
	MediaAreaGeoPoint          MediaAreaType = "geo_point"
	MediaAreaVenue             MediaAreaType = "venue"
	MediaAreaSuggestedReaction MediaAreaType = "suggested_reaction"
	MediaAreaChannelPost       MediaAreaType = "channel_post"
	MediaAreaURL               MediaAreaType = "url"
	MediaAreaWeather           MediaAreaType = "weather"
	MediaAreaStarGift          MediaAreaType = "star_gift"
)

// MediaAreaCoordinates places an area on the story, in percent of its size.
type MediaAreaCoordinates struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	Radius   float64
}

// MediaArea is an interactive area placed on a story.
// Which fields are set depends on Type.
type MediaArea struct {
	Type        MediaAreaType
	Coordinates MediaAreaCoordinates

	// Geo point and venue.
	Latitude  float64
	Longitude float64
	Title     string
	Address   string

	// Suggested reaction.
	Reaction  *Reaction
	IsDark    bool
	IsFlipped bool

	// Channel post.
	Chat      *Chat
	MessageID int64

	// URL.
	URL string

	// Weather.
	Emoji        string
	TemperatureC float64
	Color        int

	// Star gift.
	Slug string
}

// ReactionType is the kind of a reaction.
type ReactionType string

// Reaction types.
const (
	ReactionTypeEmoji       ReactionType = "emoji"
	ReactionTypeCustomEmoji ReactionType = "custom_emoji"
	ReactionTypePaid        ReactionType = "paid"
)

// Reaction is an emoji, custom emoji or paid reaction.
type Reaction struct {
	Type          ReactionType
	Emoji         string
	CustomEmojiID int64
}

// ReactionCount is how many times a reaction was given.
type ReactionCount struct {
	Reaction Reaction
	Count    int
}

// StoryViews holds aggregate view statistics of a story.
type StoryViews struct {
	ViewsCount     int
	ForwardsCount  int
	ReactionsCount int
	HasViewers     bool
	Reactions      []ReactionCount
	RecentViewers  []*User
}

// StoryViewer is one entry of a story's viewers or reactions list.
// Implementations are StoryView, StoryForwardView, StoryRepostView and
// Unsupported.
type StoryViewer interface {
	isStoryViewer()
}

// StoryView is a peer that viewed or reacted to a story.
type StoryView struct {
	Peer                 *Chat
	Date                 time.Time
	Reaction             *Reaction
	IsBlocked            bool
	IsBlockedFromStories bool
}

// StoryForwardView is a story forwarded to a chat as a message.
type StoryForwardView struct {
	Message              *Message
	IsBlocked            bool
	IsBlockedFromStories bool
}

// StoryRepostView is a story reposted by a peer as its own story.
type StoryRepostView struct {
	Chat                 *Chat
	Story                *Story
	IsBlocked            bool
	IsBlockedFromStories bool
}

func (StoryView) isStoryViewer()        {}
func (StoryForwardView) isStoryViewer() {}
func (StoryRepostView) isStoryViewer()  {}

// StoryViewsList is the header of one page of a story's viewers.
type StoryViewsList struct {
	Count          int
	ViewsCount     int
	ForwardsCount  int
	ReactionsCount int
	Viewers        []StoryViewer
	NextOffset     string
}

// PeerStories is a peer's active stories.
type PeerStories struct {
	Chat      *Chat
	Stories   []Story
	MaxReadID int64
}

// AllStories is the active story list of all followed peers.
type AllStories struct {
	// Modified is false when the server reported no change since State.
	Modified bool
	HasMore  bool
	Count    int
	State    string
	Peers    []PeerStories

	StealthMode StealthMode
}

// StealthMode hides the account's story views from their authors.
// Both times are zero when stealth mode was never used.
type StealthMode struct {
	// ActiveUntil is set while stealth mode is on.
	ActiveUntil time.Time

	// CooldownUntil is when stealth mode can be turned on again.
	CooldownUntil time.Time
}

// IsActive returns true if stealth mode is on at now.
func (m StealthMode) IsActive(now time.Time) bool {
	return now.Before(m.ActiveUntil)
}

// PublicForward is a public repost of a message or story.
// Implementations are PublicForwardMessage, PublicForwardStory and Unsupported.
type PublicForward interface {
	isPublicForward()
}

// PublicForwardMessage is a public channel post that forwarded the content.
type PublicForwardMessage struct {
	Message *Message
}

// PublicForwardStory is a public story that reposted the content.
type PublicForwardStory struct {
	Chat  *Chat
	Story *Story
}

func (PublicForwardMessage) isPublicForward() {}
func (PublicForwardStory) isPublicForward()   {}
