package decoders

import (
	"strings"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerStories(r *Registry) {
	r.Register(domain.FamilyStoryItem, "storyItem", decodeStoryItem)
	r.Register(domain.FamilyStoryItem, "storyItemDeleted", decodeStoryItemStub)
	r.Register(domain.FamilyStoryItem, "storyItemSkipped", decodeStoryItemStub)

	r.Register(domain.FamilyStoryFwdHeader, "storyFwdHeader", decodeStoryFwdHeader)

	r.Register(domain.FamilyMessageMedia, "messageMediaPhoto", decodeStoryMedia)
	r.Register(domain.FamilyMessageMedia, "messageMediaDocument", decodeStoryMedia)
	r.Register(domain.FamilyMessageMedia, "messageMediaUnsupported", decodeStoryMedia)

	for _, tag := range []string{
		"mediaAreaGeoPoint",
		"mediaAreaVenue",
		"mediaAreaSuggestedReaction",
		"mediaAreaChannelPost",
		"mediaAreaUrl",
		"mediaAreaWeather",
		"mediaAreaStarGift",
	} {
		r.Register(domain.FamilyMediaArea, tag, decodeMediaArea)
	}

	r.Register(domain.FamilyReaction, "reactionEmoji", decodeReaction)
	r.Register(domain.FamilyReaction, "reactionCustomEmoji", decodeReaction)
	r.Register(domain.FamilyReaction, "reactionPaid", decodeReaction)
	r.Register(domain.FamilyReaction, "reactionEmpty", decodeReaction)

	r.Register(domain.FamilyStoryViews, "storyViews", decodeStoryViews)

	r.Register(domain.FamilyStoryView, "storyView", decodeStoryView)
	r.Register(domain.FamilyStoryView, "storyViewPublicForward", decodeStoryForwardView)
	r.Register(domain.FamilyStoryView, "storyViewPublicRepost", decodeStoryRepostView)
	r.Register(domain.FamilyStoryViewsList, "stories.storyViewsList", decodeStoryViewsList)

	r.Register(domain.FamilyStoryReaction, "storyReaction", decodeStoryView)
	r.Register(domain.FamilyStoryReaction, "storyReactionPublicForward", decodeStoryForwardView)
	r.Register(domain.FamilyStoryReaction, "storyReactionPublicRepost", decodeStoryRepostView)

	r.Register(domain.FamilyPeerStories, "peerStories", decodePeerStories)
	r.Register(domain.FamilyPeerStoriesResult, "stories.peerStories", decodePeerStoriesResult)
	r.Register(domain.FamilyAllStories, "stories.allStories", decodeAllStories)
	r.Register(domain.FamilyAllStories, "stories.allStoriesNotModified", decodeAllStories)
	r.Register(domain.FamilyStealthMode, "storiesStealthMode", decodeStealthMode)

	r.Register(domain.FamilyPublicForward, "publicForwardMessage", decodePublicForwardMessage)
	r.Register(domain.FamilyPublicForward, "publicForwardStory", decodePublicForwardStory)
}

// storyPrivacy collapses the audience flags. The narrowest audience wins.
func storyPrivacy(public, closeFriends, contacts, selected bool) domain.StoryPrivacy {
	switch {
	case closeFriends:
		return domain.StoryPrivacyCloseFriends
	case selected:
		return domain.StoryPrivacySelectedContacts
	case contacts:
		return domain.StoryPrivacyContacts
	case public:
		return domain.StoryPrivacyPublic
	default:
		return domain.StoryPrivacyPrivate
	}
}

// ==================== Story items ====================

func decodeStoryItem(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryItem, v)
	st := &domain.Story{
		ID:         f.ID("id"),
		Date:       f.Time("date"),
		ExpireDate: f.Time("expire_date"),
		Caption:    f.OptString("caption"),
		Pinned:     f.Flag("pinned"),
		Edited:     f.Flag("edited"),
		Outgoing:   f.Flag("out"),
		Protected:  f.Flag("noforwards"),
		Privacy: storyPrivacy(
			f.Flag("public"),
			f.Flag("close_friends"),
			f.Flag("contacts"),
			f.Flag("selected_contacts"),
		),
	}
	mediaRaw, hasMedia := f.OptVariant("media")
	fwdRaw, hasFwd := f.OptVariant("fwd_from")
	viewsRaw, hasViews := f.OptVariant("views")
	reactionRaw, hasReaction := f.OptVariant("sent_reaction")
	areas := f.Variants("media_areas")

	from, err := s.optPeer(f, "from_id")
	if err != nil {
		return nil, err
	}
	st.From = from
	if s.ctx.SelfID != 0 && from != nil && from.ID == domain.UserPeerID(s.ctx.SelfID) {
		st.Outgoing = true
	}

	if hasMedia {
		if st.Media, err = one[*domain.StoryMedia](s, domain.FamilyMessageMedia, mediaRaw, false); err != nil {
			return nil, err
		}
	}
	if hasFwd {
		if st.ForwardHeader, err = one[*domain.StoryForwardHeader](s, domain.FamilyStoryFwdHeader, fwdRaw, false); err != nil {
			return nil, err
		}
	}
	if hasViews {
		if st.Views, err = one[*domain.StoryViews](s, domain.FamilyStoryViews, viewsRaw, false); err != nil {
			return nil, err
		}
	}
	if hasReaction {
		if st.SentReaction, err = one[*domain.Reaction](s, domain.FamilyReaction, reactionRaw, false); err != nil {
			return nil, err
		}
	}
	if st.MediaAreas, err = many[domain.MediaArea](s, domain.FamilyMediaArea, areas); err != nil {
		return nil, err
	}
	return st, nil
}

func decodeStoryItemStub(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryItem, v)
	st := &domain.Story{
		ID:         f.ID("id"),
		Date:       f.OptTime("date"),
		ExpireDate: f.OptTime("expire_date"),
		Deleted:    v.Tag == "storyItemDeleted",
		Skipped:    v.Tag == "storyItemSkipped",
	}
	if f.Flag("close_friends") {
		st.Privacy = domain.StoryPrivacyCloseFriends
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func decodeStoryFwdHeader(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryFwdHeader, v)
	h := &domain.StoryForwardHeader{
		FromName: f.OptString("from_name"),
		StoryID:  f.OptInt("story_id"),
		Modified: f.Flag("modified"),
	}
	from, err := s.optPeer(f, "from")
	if err != nil {
		return nil, err
	}
	h.From = from
	return h, nil
}

func decodeStoryMedia(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyMessageMedia, v)
	m := &domain.StoryMedia{Spoiler: f.Flag("spoiler")}

	switch v.Tag {
	case "messageMediaPhoto":
		m.Type = domain.MediaTypePhoto
		if photo, ok := f.OptVariant("photo"); ok {
			pf := read(domain.FamilyMessageMedia, photo)
			m.ID = pf.OptInt("id")
			if err := pf.Err(); err != nil {
				return nil, err
			}
		}
	case "messageMediaDocument":
		m.Type = domain.MediaTypeDocument
		if doc, ok := f.OptVariant("document"); ok {
			df := read(domain.FamilyMessageMedia, doc)
			m.ID = df.OptInt("id")
			m.MimeType = df.OptString("mime_type")
			if err := df.Err(); err != nil {
				return nil, err
			}
		}
		if f.Flag("video") || strings.HasPrefix(m.MimeType, "video/") {
			m.Type = domain.MediaTypeVideo
		}
	default:
		m.Type = domain.MediaTypeUnsupported
	}

	if err := f.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ==================== Media areas ====================

func readCoordinates(f *fields) domain.MediaAreaCoordinates {
	raw := f.Variant("coordinates")
	if f.Err() != nil {
		return domain.MediaAreaCoordinates{}
	}
	cf := read(f.family, raw)
	c := domain.MediaAreaCoordinates{
		X:        cf.Float("x"),
		Y:        cf.Float("y"),
		Width:    cf.Float("w"),
		Height:   cf.Float("h"),
		Rotation: cf.OptFloat("rotation"),
		Radius:   cf.OptFloat("radius"),
	}
	if err := cf.Err(); err != nil {
		f.err = err
	}
	return c
}

func readGeo(f *fields, area *domain.MediaArea) {
	raw := f.Variant("geo")
	if f.Err() != nil {
		return
	}
	gf := read(f.family, raw)
	area.Latitude = gf.OptFloat("lat")
	area.Longitude = gf.OptFloat("long")
	if err := gf.Err(); err != nil {
		f.err = err
	}
}

func joinAddress(f *fields) string {
	raw, ok := f.OptVariant("address")
	if !ok {
		return ""
	}
	af := read(f.family, raw)
	parts := make([]string, 0, 4)
	for _, name := range []string{"street", "city", "state", "country_iso2"} {
		if part := af.OptString(name); part != "" {
			parts = append(parts, part)
		}
	}
	if err := af.Err(); err != nil {
		f.err = err
	}
	return strings.Join(parts, ", ")
}

func decodeMediaArea(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyMediaArea, v)
	area := domain.MediaArea{Coordinates: readCoordinates(f)}

	switch v.Tag {
	case "mediaAreaGeoPoint":
		area.Type = domain.MediaAreaGeoPoint
		readGeo(f, &area)
		area.Address = joinAddress(f)
	case "mediaAreaVenue":
		area.Type = domain.MediaAreaVenue
		readGeo(f, &area)
		area.Title = f.String("title")
		area.Address = f.OptString("address")
	case "mediaAreaSuggestedReaction":
		area.Type = domain.MediaAreaSuggestedReaction
		area.IsDark = f.Flag("dark")
		area.IsFlipped = f.Flag("flipped")
		reaction := f.Variant("reaction")
		if err := f.Err(); err != nil {
			return nil, err
		}
		r, err := one[*domain.Reaction](s, domain.FamilyReaction, reaction, true)
		if err != nil {
			return nil, err
		}
		area.Reaction = r
	case "mediaAreaChannelPost":
		area.Type = domain.MediaAreaChannelPost
		channelID := f.ID("channel_id")
		area.MessageID = f.Int("msg_id")
		if err := f.Err(); err != nil {
			return nil, err
		}
		chat, err := s.channel(channelID)
		if err != nil {
			return nil, err
		}
		area.Chat = chat
	case "mediaAreaUrl":
		area.Type = domain.MediaAreaURL
		area.URL = f.String("url")
	case "mediaAreaWeather":
		area.Type = domain.MediaAreaWeather
		area.Emoji = f.String("emoji")
		area.TemperatureC = f.Float("temperature_c")
		area.Color = int(f.OptInt("color"))
	case "mediaAreaStarGift":
		area.Type = domain.MediaAreaStarGift
		area.Slug = f.String("slug")
	}

	if err := f.Err(); err != nil {
		return nil, err
	}
	return area, nil
}

// ==================== Reactions and views ====================

func decodeReaction(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyReaction, v)
	var r *domain.Reaction
	switch v.Tag {
	case "reactionEmoji":
		r = &domain.Reaction{Type: domain.ReactionTypeEmoji, Emoji: f.String("emoticon")}
	case "reactionCustomEmoji":
		r = &domain.Reaction{Type: domain.ReactionTypeCustomEmoji, CustomEmojiID: f.ID("document_id")}
	case "reactionPaid":
		r = &domain.Reaction{Type: domain.ReactionTypePaid}
	default:
		return nil, nil
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodeStoryViews(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryViews, v)
	views := &domain.StoryViews{
		ViewsCount:     int(f.Int("views_count")),
		ForwardsCount:  int(f.OptInt("forwards_count")),
		ReactionsCount: int(f.OptInt("reactions_count")),
		HasViewers:     f.Flag("has_viewers"),
	}
	counts := f.Variants("reactions")
	recent := f.Ints("recent_viewers")
	if err := f.Err(); err != nil {
		return nil, err
	}

	for _, raw := range counts {
		cf := read(domain.FamilyStoryViews, raw)
		count := int(cf.Int("count"))
		reactionRaw := cf.Variant("reaction")
		if err := cf.Err(); err != nil {
			return nil, err
		}
		r, err := one[*domain.Reaction](s, domain.FamilyReaction, reactionRaw, false)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}
		views.Reactions = append(views.Reactions, domain.ReactionCount{Reaction: *r, Count: count})
	}

	var err error
	if views.RecentViewers, err = s.users(recent); err != nil {
		return nil, err
	}
	return views, nil
}

func decodeStoryView(s *Session, v domain.RawVariant) (any, error) {
	family := domain.FamilyStoryView
	if v.Tag == "storyReaction" {
		family = domain.FamilyStoryReaction
	}
	f := read(family, v)
	view := domain.StoryView{
		Date:                 f.Time("date"),
		IsBlocked:            f.Flag("blocked"),
		IsBlockedFromStories: f.Flag("blocked_my_stories_from"),
	}
	reactionRaw, hasReaction := f.OptVariant("reaction")

	var err error
	if v.Tag == "storyReaction" {
		peerRaw := f.Variant("peer_id")
		if err := f.Err(); err != nil {
			return nil, err
		}
		if view.Peer, err = s.peer(peerRaw, true); err != nil {
			return nil, err
		}
	} else {
		userID := f.ID("user_id")
		if err := f.Err(); err != nil {
			return nil, err
		}
		if view.Peer, err = s.userChat(userID); err != nil {
			return nil, err
		}
	}

	if hasReaction {
		if view.Reaction, err = one[*domain.Reaction](s, domain.FamilyReaction, reactionRaw, false); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func decodeStoryForwardView(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryView, v)
	view := domain.StoryForwardView{
		IsBlocked:            f.Flag("blocked"),
		IsBlockedFromStories: f.Flag("blocked_my_stories_from"),
	}
	msgRaw := f.Variant("message")
	if err := f.Err(); err != nil {
		return nil, err
	}
	msg, err := one[*domain.Message](s, domain.FamilyMessage, msgRaw, true)
	if err != nil {
		return nil, err
	}
	view.Message = msg
	return view, nil
}

func decodeStoryRepostView(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryView, v)
	view := domain.StoryRepostView{
		IsBlocked:            f.Flag("blocked"),
		IsBlockedFromStories: f.Flag("blocked_my_stories_from"),
	}
	peerRaw := f.Variant("peer_id")
	storyRaw := f.Variant("story")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if view.Chat, err = s.peer(peerRaw, true); err != nil {
		return nil, err
	}
	if view.Story, err = s.ownedStory(storyRaw, view.Chat); err != nil {
		return nil, err
	}
	return view, nil
}

// ownedStory decodes a required story item and attaches its owner.
func (s *Session) ownedStory(raw domain.RawVariant, owner *domain.Chat) (*domain.Story, error) {
	st, err := one[*domain.Story](s, domain.FamilyStoryItem, raw, true)
	if err != nil || st == nil {
		return st, err
	}
	st.Chat = owner
	return st, nil
}

func decodeStoryViewsList(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStoryViewsList, v)
	list := &domain.StoryViewsList{
		Count:          int(f.Int("count")),
		ViewsCount:     int(f.Int("views_count")),
		ForwardsCount:  int(f.OptInt("forwards_count")),
		ReactionsCount: int(f.OptInt("reactions_count")),
		NextOffset:     f.OptString("next_offset"),
	}
	items := f.Variants("views")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if list.Viewers, err = many[domain.StoryViewer](s, domain.FamilyStoryView, items); err != nil {
		return nil, err
	}
	return list, nil
}

// ==================== Peer stories ====================

func decodePeerStories(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeerStories, v)
	ps := &domain.PeerStories{MaxReadID: f.OptInt("max_read_id")}
	peerRaw := f.Variant("peer")
	items := f.Variants("stories")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if ps.Chat, err = s.peer(peerRaw, true); err != nil {
		return nil, err
	}
	stories, err := many[*domain.Story](s, domain.FamilyStoryItem, items)
	if err != nil {
		return nil, err
	}
	ps.Stories = make([]domain.Story, 0, len(stories))
	for _, st := range stories {
		st.Chat = ps.Chat
		ps.Stories = append(ps.Stories, *st)
	}
	return ps, nil
}

func decodePeerStoriesResult(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeerStoriesResult, v)
	raw := f.Variant("stories")
	if err := f.Err(); err != nil {
		return nil, err
	}
	return one[*domain.PeerStories](s, domain.FamilyPeerStories, raw, true)
}

func decodeAllStories(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyAllStories, v)
	all := &domain.AllStories{
		State: f.String("state"),
	}
	stealthRaw, hasStealth := f.OptVariant("stealth_mode")
	if err := f.Err(); err != nil {
		return nil, err
	}
	if hasStealth {
		var err error
		if all.StealthMode, err = one[domain.StealthMode](s, domain.FamilyStealthMode, stealthRaw, false); err != nil {
			return nil, err
		}
	}
	if v.Tag == "stories.allStoriesNotModified" {
		all.Peers = []domain.PeerStories{}
		return all, nil
	}

	all.Modified = true
	all.HasMore = f.Flag("has_more")
	all.Count = int(f.Int("count"))
	items := f.Variants("peer_stories")
	if err := f.Err(); err != nil {
		return nil, err
	}

	peers, err := many[*domain.PeerStories](s, domain.FamilyPeerStories, items)
	if err != nil {
		return nil, err
	}
	all.Peers = make([]domain.PeerStories, 0, len(peers))
	for _, ps := range peers {
		all.Peers = append(all.Peers, *ps)
	}
	return all, nil
}

func decodeStealthMode(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyStealthMode, v)
	m := domain.StealthMode{
		ActiveUntil:   f.OptTime("active_until_date"),
		CooldownUntil: f.OptTime("cooldown_until_date"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ==================== Public forwards ====================

func decodePublicForwardMessage(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPublicForward, v)
	raw := f.Variant("message")
	if err := f.Err(); err != nil {
		return nil, err
	}
	msg, err := one[*domain.Message](s, domain.FamilyMessage, raw, true)
	if err != nil {
		return nil, err
	}
	return domain.PublicForwardMessage{Message: msg}, nil
}

func decodePublicForwardStory(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPublicForward, v)
	peerRaw := f.Variant("peer")
	storyRaw := f.Variant("story")
	if err := f.Err(); err != nil {
		return nil, err
	}
	chat, err := s.peer(peerRaw, true)
	if err != nil {
		return nil, err
	}
	story, err := s.ownedStory(storyRaw, chat)
	if err != nil {
		return nil, err
	}
	return domain.PublicForwardStory{Chat: chat, Story: story}, nil
}
