package decoders

import (
	"time"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerStars(r *Registry) {
	r.Register(domain.FamilyStarsAmount, "starsAmount", decodeStarsAmount)

	for tag, peerType := range transactionPeerTypes {
		r.Register(domain.FamilyStarsTransactionPeer, tag, transactionPeerDecoder(peerType))
	}
	r.Register(domain.FamilyStarsTransactionPeer, "starsTransactionPeer", decodeTransactionPeer)

	r.Register(domain.FamilyStarsTransaction, "starsTransaction", decodeStarsTransaction)
	r.Register(domain.FamilyStarsSubscription, "starsSubscription", decodeStarsSubscription)
	r.Register(domain.FamilyStarsPricing, "starsSubscriptionPricing", decodeSubscriptionPricing)
	r.Register(domain.FamilyStarsStatus, "payments.starsStatus", decodeStarsStatus)
}

var transactionPeerTypes = map[string]domain.TransactionPeerType{
	"starsTransactionPeerAppStore":    domain.TransactionPeerAppStore,
	"starsTransactionPeerPlayMarket":  domain.TransactionPeerPlayMarket,
	"starsTransactionPeerFragment":    domain.TransactionPeerFragment,
	"starsTransactionPeerPremiumBot":  domain.TransactionPeerPremiumBot,
	"starsTransactionPeerAds":         domain.TransactionPeerAds,
	"starsTransactionPeerAPI":         domain.TransactionPeerAPI,
	"starsTransactionPeerUnsupported": domain.TransactionPeerUnsupported,
}

func transactionPeerDecoder(t domain.TransactionPeerType) Decoder {
	return func(_ *Session, _ domain.RawVariant) (any, error) {
		return domain.TransactionPeer{Type: t}, nil
	}
}

func decodeTransactionPeer(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarsTransactionPeer, v)
	raw := f.Variant("peer")
	if err := f.Err(); err != nil {
		return nil, err
	}
	chat, err := s.peer(raw, true)
	if err != nil {
		return nil, err
	}
	return domain.TransactionPeer{Type: domain.TransactionPeerChat, Chat: chat}, nil
}

func decodeStarsAmount(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarsAmount, v)
	a := domain.StarsAmount{
		Amount: f.Int("amount"),
		Nanos:  int32(f.OptInt("nanos")),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// starsAmount reads a field that older layers send as a bare integer and
// newer layers as a starsAmount object.
func (s *Session) starsAmount(f *fields, name string) (domain.StarsAmount, error) {
	if n, ok := toInt64(f.v.Fields[name]); ok {
		return domain.StarsAmount{Amount: n}, nil
	}
	raw := f.Variant(name)
	if err := f.Err(); err != nil {
		return domain.StarsAmount{}, err
	}
	return one[domain.StarsAmount](s, domain.FamilyStarsAmount, raw, true)
}

// transactionState collapses the refund, pending and failed flags.
func transactionState(refund, pending, failed bool) domain.TransactionState {
	switch {
	case failed:
		return domain.TransactionFailed
	case pending:
		return domain.TransactionPending
	case refund:
		return domain.TransactionRefunded
	default:
		return domain.TransactionCompleted
	}
}

func decodeStarsTransaction(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarsTransaction, v)
	tx := domain.StarsTransaction{
		ID:                 f.String("id"),
		Date:               f.Time("date"),
		Title:              f.OptString("title"),
		Description:        f.OptString("description"),
		State:              transactionState(f.Flag("refund"), f.Flag("pending"), f.Flag("failed")),
		IsGift:             f.Flag("gift"),
		IsReaction:         f.Flag("reaction"),
		SubscriptionPeriod: f.Seconds("subscription_period"),
		TransactionDate:    f.OptTime("transaction_date"),
		TransactionURL:     f.OptString("transaction_url"),
		MessageID:          f.OptInt("msg_id"),
	}
	peerRaw := f.Variant("peer")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if tx.Amount, err = s.starsAmount(f, "amount"); err != nil {
		return nil, err
	}

	// Unknown counterparty kinds decode as TransactionPeerUnsupported.
	peer, err := one[domain.TransactionPeer](s, domain.FamilyStarsTransactionPeer, peerRaw, false)
	if err != nil {
		return nil, err
	}
	if peer.Type == "" {
		peer.Type = domain.TransactionPeerUnsupported
	}
	tx.Peer = peer
	return tx, nil
}

func decodeSubscriptionPricing(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarsPricing, v)
	p := domain.SubscriptionPricing{
		Period: time.Duration(f.Int("period")) * time.Second,
		Amount: f.Int("amount"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeStarsSubscription(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarsSubscription, v)
	sub := domain.StarsSubscription{
		ID:               f.String("id"),
		UntilDate:        f.Time("until_date"),
		Title:            f.OptString("title"),
		IsCanceled:       f.Flag("canceled"),
		CanRefulfill:     f.Flag("can_refulfill"),
		IsMissingBalance: f.Flag("missing_balance"),
		IsBotCanceled:    f.Flag("bot_canceled"),
		ChatInviteHash:   f.OptString("chat_invite_hash"),
		InvoiceSlug:      f.OptString("invoice_slug"),
	}
	peerRaw := f.Variant("peer")
	pricingRaw := f.Variant("pricing")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if sub.Chat, err = s.peer(peerRaw, true); err != nil {
		return nil, err
	}
	if sub.Pricing, err = one[domain.SubscriptionPricing](s, domain.FamilyStarsPricing, pricingRaw, true); err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeStarsStatus(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarsStatus, v)
	st := &domain.StarsStatus{
		SubscriptionsNextOffset:     f.OptString("subscriptions_next_offset"),
		SubscriptionsMissingBalance: f.OptInt("subscriptions_missing_balance"),
		NextOffset:                  f.OptString("next_offset"),
	}
	subs := f.Variants("subscriptions")
	history := f.Variants("history")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if st.Balance, err = s.starsAmount(f, "balance"); err != nil {
		return nil, err
	}
	if st.Subscriptions, err = many[domain.StarsSubscription](s, domain.FamilyStarsSubscription, subs); err != nil {
		return nil, err
	}
	if st.History, err = many[domain.StarsTransaction](s, domain.FamilyStarsTransaction, history); err != nil {
		return nil, err
	}
	return st, nil
}
