package domain

// Family names the set of mutually exclusive variants that may occupy one
// logical position on the wire, such as every kind of peer. The family of a
// variant is fixed by where it appears, not by the variant itself.
type Family string

// Variant families known to the decoder.
const (
	FamilyUser                 Family = "User"
	FamilyUserStatus           Family = "UserStatus"
	FamilyPeerColor            Family = "PeerColor"
	FamilyChat                 Family = "Chat"
	FamilyPeer                 Family = "Peer"
	FamilyMessage              Family = "Message"
	FamilyBoost                Family = "Boost"
	FamilyBoostsList           Family = "premium.BoostsList"
	FamilyMyBoost              Family = "MyBoost"
	FamilyMyBoosts             Family = "premium.MyBoosts"
	FamilyBoostsStatus         Family = "premium.BoostsStatus"
	FamilyPrepaidGiveaway      Family = "PrepaidGiveaway"
	FamilyStoryItem            Family = "StoryItem"
	FamilyStoryFwdHeader       Family = "StoryFwdHeader"
	FamilyMessageMedia         Family = "MessageMedia"
	FamilyMediaArea            Family = "MediaArea"
	FamilyReaction             Family = "Reaction"
	FamilyStoryViews           Family = "StoryViews"
	FamilyStoryView            Family = "StoryView"
	FamilyStoryViewsList       Family = "stories.StoryViewsList"
	FamilyStoryReaction        Family = "StoryReaction"
	FamilyStoryReactionsList   Family = "stories.StoryReactionsList"
	FamilyPeerStories          Family = "PeerStories"
	FamilyPeerStoriesResult    Family = "stories.PeerStories"
	FamilyAllStories           Family = "stories.AllStories"
	FamilyPublicForward        Family = "PublicForward"
	FamilyPublicForwards       Family = "stats.PublicForwards"
	FamilyStarsAmount          Family = "StarsAmount"
	FamilyStarsTransactionPeer Family = "StarsTransactionPeer"
	FamilyStarsTransaction     Family = "StarsTransaction"
	FamilyStarsSubscription    Family = "StarsSubscription"
	FamilyStarsPricing         Family = "StarsSubscriptionPricing"
	FamilyStarsStatus          Family = "payments.StarsStatus"
	FamilyAuctionState         Family = "StarGiftAuctionState"
	FamilyAuctionBidLevel      Family = "AuctionBidLevel"
	FamilyAuctionRound         Family = "StarGiftAuctionRound"
	FamilyAuctionUserState     Family = "StarGiftAuctionUserState"
	FamilyAuctionStateResult   Family = "payments.StarGiftAuctionState"
	FamilySavedDialog          Family = "SavedDialog"
	FamilySavedDialogs         Family = "messages.SavedDialogs"
	FamilyGroupCallParticipant Family = "GroupCallParticipant"
	FamilyGroupParticipants    Family = "phone.GroupParticipants"
	FamilyStarGift             Family = "StarGift"
	FamilyStarGifts            Family = "payments.StarGifts"
	FamilySavedStarGift        Family = "SavedStarGift"
	FamilyUniqueStarGift       Family = "payments.UniqueStarGift"
	FamilyStealthMode          Family = "StoriesStealthMode"
	FamilySavedReactionTag     Family = "SavedReactionTag"
	FamilySavedReactionTags    Family = "messages.SavedReactionTags"
)

// String returns the string representation.
func (f Family) String() string {
	return string(f)
}

// Unsupported stands in for a variant whose tag the decoder does not know.
// It is only produced when the caller asks for unsupported variants to be
// surfaced rather than dropped or escalated.
type Unsupported struct {
	Family Family
	Tag    string
}

func (Unsupported) isStoryViewer()   {}
func (Unsupported) isPublicForward() {}
func (Unsupported) isAuctionState()  {}
func (Unsupported) isGift()          {}
