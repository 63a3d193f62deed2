package decoders

import (
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerGifts(r *Registry) {
	r.Register(domain.FamilyStarGift, "starGift", decodeStarGift)
	r.Register(domain.FamilyStarGift, "starGiftUnique", decodeUniqueStarGift)
	r.Register(domain.FamilyStarGifts, "payments.starGifts", decodeStarGifts)
	r.Register(domain.FamilyStarGifts, "payments.starGiftsNotModified", decodeStarGifts)
	r.Register(domain.FamilySavedStarGift, "savedStarGift", decodeSavedStarGift)
	r.Register(domain.FamilyUniqueStarGift, "payments.uniqueStarGift", decodeUniqueStarGiftResult)
}

func decodeStarGift(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarGift, v)
	g := &domain.StarGift{
		ID:                  f.ID("id"),
		Title:               f.OptString("title"),
		Stars:               f.Int("stars"),
		ConvertStars:        f.OptInt("convert_stars"),
		UpgradeStars:        f.OptInt("upgrade_stars"),
		Limited:             f.Flag("limited"),
		SoldOut:             f.Flag("sold_out"),
		Birthday:            f.Flag("birthday"),
		CanUpgrade:          f.Flag("can_upgrade"),
		RequirePremium:      f.Flag("require_premium"),
		AvailabilityRemains: f.OptInt("availability_remains"),
		AvailabilityTotal:   f.OptInt("availability_total"),
		FirstSaleDate:       f.OptTime("first_sale_date"),
		LastSaleDate:        f.OptTime("last_sale_date"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeUniqueStarGift(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarGift, v)
	g := &domain.UniqueStarGift{
		ID:                 f.ID("id"),
		GiftID:             f.OptInt("gift_id"),
		Title:              f.String("title"),
		Slug:               f.String("slug"),
		Num:                f.Int("num"),
		AvailabilityIssued: f.OptInt("availability_issued"),
		AvailabilityTotal:  f.OptInt("availability_total"),
		RequirePremium:     f.Flag("require_premium"),
		Burned:             f.Flag("burned"),
		Crafted:            f.Flag("crafted"),
		OwnerName:          f.OptString("owner_name"),
		OwnerAddress:       f.OptString("owner_address"),
		GiftAddress:        f.OptString("gift_address"),
	}
	owner, err := s.optPeer(f, "owner_id")
	if err != nil {
		return nil, err
	}
	g.Owner = owner
	return g, nil
}

func decodeStarGifts(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStarGifts, v)
	if v.Tag == "payments.starGiftsNotModified" {
		return &domain.StarGifts{Gifts: []domain.Gift{}}, nil
	}

	out := &domain.StarGifts{Modified: true, Hash: f.OptInt("hash")}
	items := f.Variants("gifts")
	if err := f.Err(); err != nil {
		return nil, err
	}
	gifts, err := many[domain.Gift](s, domain.FamilyStarGift, items)
	if err != nil {
		return nil, err
	}
	if gifts == nil {
		gifts = []domain.Gift{}
	}
	out.Gifts = gifts
	return out, nil
}

// decodeSavedStarGift skips the saved gift when its gift kind is unknown
// and the session drops unsupported variants.
func decodeSavedStarGift(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilySavedStarGift, v)
	saved := domain.SavedStarGift{
		Date:         f.Time("date"),
		MessageID:    f.OptInt("msg_id"),
		SavedID:      f.OptInt("saved_id"),
		ConvertStars: f.OptInt("convert_stars"),
		UpgradeStars: f.OptInt("upgrade_stars"),
		NameHidden:   f.Flag("name_hidden"),
		Unsaved:      f.Flag("unsaved"),
		Refunded:     f.Flag("refunded"),
		CanUpgrade:   f.Flag("can_upgrade"),
	}
	giftRaw := f.Variant("gift")
	if err := f.Err(); err != nil {
		return nil, err
	}

	gift, err := one[domain.Gift](s, domain.FamilyStarGift, giftRaw, false)
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, nil
	}
	saved.Gift = gift

	if saved.From, err = s.optPeer(f, "from_id"); err != nil {
		return nil, err
	}
	return saved, nil
}

func decodeUniqueStarGiftResult(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyUniqueStarGift, v)
	giftRaw := f.Variant("gift")
	if err := f.Err(); err != nil {
		return nil, err
	}

	gift, err := one[domain.Gift](s, domain.FamilyStarGift, giftRaw, true)
	if err != nil {
		return nil, err
	}
	if u, ok := gift.(domain.Unsupported); ok {
		return nil, &domain.UnsupportedVariantError{Family: u.Family, Tag: u.Tag}
	}
	unique, ok := gift.(*domain.UniqueStarGift)
	if !ok {
		return nil, &domain.MalformedVariantError{
			Family: domain.FamilyUniqueStarGift,
			Tag:    v.Tag,
			Field:  "gift",
			Reason: "is not a collectible",
		}
	}
	return unique, nil
}
