package decoders

import (
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerBoosts(r *Registry) {
	r.Register(domain.FamilyBoost, "boost", decodeBoost)
	r.Register(domain.FamilyMyBoost, "myBoost", decodeMyBoost)
	r.Register(domain.FamilyMyBoosts, "premium.myBoosts", decodeMyBoosts)
	r.Register(domain.FamilyBoostsStatus, "premium.boostsStatus", decodeBoostsStatus)
	r.Register(domain.FamilyPrepaidGiveaway, "prepaidGiveaway", decodePrepaidGiveaway)
	r.Register(domain.FamilyPrepaidGiveaway, "prepaidStarsGiveaway", decodePrepaidGiveaway)
}

// boostSource collapses the gift, giveaway and unclaimed flags.
// Unclaimed boosts always come from a giveaway, so it wins.
func boostSource(gift, giveaway, unclaimed bool) domain.BoostSource {
	switch {
	case unclaimed:
		return domain.BoostSourceUnclaimed
	case giveaway:
		return domain.BoostSourceGiveaway
	case gift:
		return domain.BoostSourceGift
	default:
		return domain.BoostSourceRegular
	}
}

func decodeBoost(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyBoost, v)
	b := domain.Boost{
		ID:                f.String("id"),
		Date:              f.Time("date"),
		ExpireDate:        f.Time("expires"),
		GiveawayMessageID: f.OptInt("giveaway_msg_id"),
		Stars:             f.OptInt("stars"),
		Multiplier:        int(f.OptInt("multiplier")),
		Source:            boostSource(f.Flag("gift"), f.Flag("giveaway"), f.Flag("unclaimed")),
	}
	userID := f.OptInt("user_id")
	if err := f.Err(); err != nil {
		return nil, err
	}
	if b.Multiplier == 0 {
		b.Multiplier = 1
	}

	user, err := s.user(userID)
	if err != nil {
		return nil, err
	}
	b.User = user
	return b, nil
}

func decodeMyBoost(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyMyBoost, v)
	b := domain.MyBoost{
		Slot:              int(f.Int("slot")),
		Date:              f.Time("date"),
		ExpireDate:        f.Time("expires"),
		CooldownUntilDate: f.OptTime("cooldown_until_date"),
	}
	chat, err := s.optPeer(f, "peer")
	if err != nil {
		return nil, err
	}
	b.Chat = chat
	return b, nil
}

func decodeMyBoosts(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyMyBoosts, v)
	items := f.Variants("my_boosts")
	if err := f.Err(); err != nil {
		return nil, err
	}
	boosts, err := many[domain.MyBoost](s, domain.FamilyMyBoost, items)
	if err != nil {
		return nil, err
	}
	if boosts == nil {
		boosts = []domain.MyBoost{}
	}
	return boosts, nil
}

func decodePrepaidGiveaway(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPrepaidGiveaway, v)
	g := domain.PrepaidGiveaway{
		ID:       f.ID("id"),
		Quantity: int(f.Int("quantity")),
		Date:     f.Time("date"),
	}
	if v.Tag == "prepaidStarsGiveaway" {
		g.Stars = f.Int("stars")
		g.Boosts = int(f.Int("boosts"))
	} else {
		g.Months = int(f.Int("months"))
		g.Boosts = g.Quantity
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeBoostsStatus(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyBoostsStatus, v)
	st := &domain.BoostsStatus{
		Level:              int(f.Int("level")),
		CurrentLevelBoosts: int(f.Int("current_level_boosts")),
		Boosts:             int(f.Int("boosts")),
		GiftBoosts:         int(f.OptInt("gift_boosts")),
		NextLevelBoosts:    int(f.OptInt("next_level_boosts")),
		BoostURL:           f.String("boost_url"),
		MyBoost:            f.Flag("my_boost"),
	}
	for _, slot := range f.Ints("my_boost_slots") {
		st.MyBoostSlots = append(st.MyBoostSlots, int(slot))
	}
	if audience, ok := f.OptVariant("premium_audience"); ok {
		pf := read(domain.FamilyBoostsStatus, audience)
		st.PremiumAudience = &domain.PercentValue{
			Part:  pf.Float("part"),
			Total: pf.Float("total"),
		}
		if err := pf.Err(); err != nil {
			return nil, err
		}
	}
	giveaways := f.Variants("prepaid_giveaways")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if st.PrepaidGiveaways, err = many[domain.PrepaidGiveaway](s, domain.FamilyPrepaidGiveaway, giveaways); err != nil {
		return nil, err
	}
	return st, nil
}
