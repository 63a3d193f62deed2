package decoders

import (
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerDialogs(r *Registry) {
	r.Register(domain.FamilySavedDialog, "savedDialog", decodeSavedDialog)
	r.Register(domain.FamilySavedDialogs, "messages.savedDialogs", decodeSavedDialogs)
	r.Register(domain.FamilySavedDialogs, "messages.savedDialogsSlice", decodeSavedDialogs)
	r.Register(domain.FamilySavedDialogs, "messages.savedDialogsNotModified", decodeSavedDialogs)
	r.Register(domain.FamilyGroupCallParticipant, "groupCallParticipant", decodeGroupCallParticipant)
	r.Register(domain.FamilySavedReactionTag, "savedReactionTag", decodeSavedReactionTag)
	r.Register(domain.FamilySavedReactionTags, "messages.savedReactionTags", decodeSavedReactionTags)
	r.Register(domain.FamilySavedReactionTags, "messages.savedReactionTagsNotModified", decodeSavedReactionTags)
}

func decodeSavedDialog(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilySavedDialog, v)
	d := domain.SavedDialog{Pinned: f.Flag("pinned")}
	peerRaw := f.Variant("peer")
	top := f.OptInt("top_message")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if d.Chat, err = s.peer(peerRaw, true); err != nil {
		return nil, err
	}
	if d.TopMessage, err = s.message(top); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeSavedDialogs(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilySavedDialogs, v)
	count := int(f.OptInt("count"))
	hasCount := f.Has("count")
	items := f.Variants("dialogs")
	if err := f.Err(); err != nil {
		return nil, err
	}

	dialogs, err := many[domain.SavedDialog](s, domain.FamilySavedDialog, items)
	if err != nil {
		return nil, err
	}
	if dialogs == nil {
		dialogs = []domain.SavedDialog{}
	}
	if !hasCount {
		count = len(dialogs)
	}
	return &domain.SavedDialogs{Count: count, Dialogs: dialogs}, nil
}

// decodeSavedReactionTag skips tags whose reaction is empty or unknown.
func decodeSavedReactionTag(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilySavedReactionTag, v)
	tag := domain.SavedReactionTag{
		Title: f.OptString("title"),
		Count: int(f.Int("count")),
	}
	reactionRaw := f.Variant("reaction")
	if err := f.Err(); err != nil {
		return nil, err
	}

	r, err := one[*domain.Reaction](s, domain.FamilyReaction, reactionRaw, false)
	if err != nil || r == nil {
		return nil, err
	}
	tag.Reaction = *r
	return tag, nil
}

func decodeSavedReactionTags(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilySavedReactionTags, v)
	items := f.Variants("tags")
	if err := f.Err(); err != nil {
		return nil, err
	}
	tags, err := many[domain.SavedReactionTag](s, domain.FamilySavedReactionTag, items)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []domain.SavedReactionTag{}
	}
	return tags, nil
}

// muteState collapses the muted and can_self_unmute flags.
func muteState(muted, canSelfUnmute bool) domain.MuteState {
	switch {
	case muted && canSelfUnmute:
		return domain.MuteStateSelfMuted
	case muted:
		return domain.MuteStateForceMuted
	default:
		return domain.MuteStateUnmuted
	}
}

func decodeGroupCallParticipant(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyGroupCallParticipant, v)
	p := domain.GroupCallParticipant{
		Date:            f.Time("date"),
		Source:          f.Int("source"),
		Volume:          int(f.OptInt("volume")),
		Mute:            muteState(f.Flag("muted"), f.Flag("can_self_unmute")),
		MutedByYou:      f.Flag("muted_by_you"),
		Left:            f.Flag("left"),
		JustJoined:      f.Flag("just_joined"),
		Versioned:       f.Flag("versioned"),
		Self:            f.Flag("self"),
		HasVideo:        f.Has("video"),
		HasPresentation: f.Has("presentation"),
		RaiseHandRating: f.OptInt("raise_hand_rating"),
		About:           f.OptString("about"),
	}
	peerRaw := f.Variant("peer")
	if err := f.Err(); err != nil {
		return nil, err
	}

	if peerRaw.Tag == "peerUser" {
		pf := read(domain.FamilyPeer, peerRaw)
		userID := pf.ID("user_id")
		if err := pf.Err(); err != nil {
			return nil, err
		}
		user, err := s.user(userID)
		if err != nil {
			return nil, err
		}
		p.User = user
		p.Chat = domain.ChatFromUser(user)
		return p, nil
	}

	chat, err := s.peer(peerRaw, true)
	if err != nil {
		return nil, err
	}
	p.Chat = chat
	return p, nil
}
