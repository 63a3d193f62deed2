package domain

import (
	"fmt"
	"time"
)

// StarsAmount is an amount of Telegram Stars with nanostar precision.
type StarsAmount struct {
	Amount int64
	Nanos  int32
}

// IsNegative returns true for outgoing amounts.
func (a StarsAmount) IsNegative() bool {
	return a.Amount < 0 || (a.Amount == 0 && a.Nanos < 0)
}

// String formats the amount, e.g. "-12.5".
func (a StarsAmount) String() string {
	if a.Nanos == 0 {
		return fmt.Sprintf("%d", a.Amount)
	}
	nanos := a.Nanos
	sign := ""
	if nanos < 0 {
		nanos = -nanos
		if a.Amount == 0 {
			sign = "-"
		}
	}
	frac := fmt.Sprintf("%09d", nanos)
	for len(frac) > 0 && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	return fmt.Sprintf("%s%d.%s", sign, a.Amount, frac)
}

// TransactionPeerType is the counterparty kind of a stars transaction.
type TransactionPeerType string

// Transaction peer types.
const (
	TransactionPeerChat        TransactionPeerType = "peer"
	TransactionPeerAppStore    TransactionPeerType = "app_store"
	TransactionPeerPlayMarket  TransactionPeerType = "play_market"
	TransactionPeerFragment    TransactionPeerType = "fragment"
	TransactionPeerPremiumBot  TransactionPeerType = "premium_bot"
	TransactionPeerAds         TransactionPeerType = "ads"
	TransactionPeerAPI         TransactionPeerType = "api"
	TransactionPeerUnsupported TransactionPeerType = "unsupported"
)

// TransactionPeer is the counterparty of a stars transaction.
type TransactionPeer struct {
	Type TransactionPeerType

	// Chat is set when Type is TransactionPeerChat.
	Chat *Chat
}

// TransactionState is the settlement state of a stars transaction. The
// wire carries it as the refund, pending and failed flags.
type TransactionState string

// Transaction states.
const (
	TransactionCompleted TransactionState = "completed"
	TransactionRefunded  TransactionState = "refunded"
	TransactionPending   TransactionState = "pending"
	TransactionFailed    TransactionState = "failed"
)

// String returns the string representation.
func (s TransactionState) String() string {
	return string(s)
}

// StarsTransaction is one entry of the stars balance history.
type StarsTransaction struct {
	ID          string
	Amount      StarsAmount
	Date        time.Time
	Peer        TransactionPeer
	Title       string
	Description string
	State       TransactionState

	IsGift     bool
	IsReaction bool

	// SubscriptionPeriod is set for subscription payments.
	SubscriptionPeriod time.Duration

	// TransactionDate and TransactionURL are set for withdrawals.
	TransactionDate time.Time
	TransactionURL  string

	MessageID int64
}

// IsOutgoing returns true if stars left the balance.
func (t StarsTransaction) IsOutgoing() bool {
	return t.Amount.IsNegative()
}

// SubscriptionPricing is the price of a stars subscription per period.
type SubscriptionPricing struct {
	Period time.Duration
	Amount int64
}

// StarsSubscription is a recurring stars payment.
type StarsSubscription struct {
	ID        string
	Chat      *Chat
	UntilDate time.Time
	Pricing   SubscriptionPricing
	Title     string

	IsCanceled       bool
	CanRefulfill     bool
	IsMissingBalance bool
	IsBotCanceled    bool

	ChatInviteHash string
	InvoiceSlug    string
}

// StarsStatus is a stars balance with the first page of history and
// subscriptions.
type StarsStatus struct {
	Balance StarsAmount

	Subscriptions               []StarsSubscription
	SubscriptionsNextOffset     string
	SubscriptionsMissingBalance int64

	History    []StarsTransaction
	NextOffset string
}
