package domain

// ListOptions configures a paginated list operation.
type ListOptions struct {
	// Limit is the maximum number of items to return. Zero means all.
	Limit int

	// PageSize overrides the configured page size.
	PageSize int

	// Offset resumes a previous listing from a server cursor.
	Offset string

	// Policy overrides the configured unsupported variant policy.
	Policy UnsupportedPolicy
}

// BoostListOptions filters a channel's boosts.
type BoostListOptions struct {
	ListOptions

	// Gifts lists only boosts obtained from gifts and giveaways.
	Gifts bool
}

// StoryViewsOptions filters a story's viewers.
type StoryViewsOptions struct {
	ListOptions

	Query          string
	JustContacts   bool
	ReactionsFirst bool
	ForwardsFirst  bool
}

// TransactionListOptions filters a stars balance history.
type TransactionListOptions struct {
	ListOptions

	Inbound        bool
	Outbound       bool
	Ascending      bool
	SubscriptionID string
}

// SavedDialogsOptions filters the saved messages dialogs.
type SavedDialogsOptions struct {
	ListOptions
	ExcludePinned bool
}

// AllStoriesOptions selects the active stories of followed peers.
type AllStoriesOptions struct {
	// State continues from a previous result. With Next unset the server
	// only reports whether anything changed since State.
	State string
	Next  bool

	// Hidden lists the stories of peers hidden from the main list.
	Hidden bool

	Policy UnsupportedPolicy
}
