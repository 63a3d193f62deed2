package decoders

import (
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func registerPeers(r *Registry) {
	r.Register(domain.FamilyUser, "user", decodeUser)
	r.Register(domain.FamilyUser, "userEmpty", decodeUserEmpty)

	r.Register(domain.FamilyUserStatus, "userStatusOnline", decodeUserStatus)
	r.Register(domain.FamilyUserStatus, "userStatusOffline", decodeUserStatus)
	r.Register(domain.FamilyUserStatus, "userStatusRecently", decodeUserStatus)
	r.Register(domain.FamilyUserStatus, "userStatusLastWeek", decodeUserStatus)
	r.Register(domain.FamilyUserStatus, "userStatusLastMonth", decodeUserStatus)
	r.Register(domain.FamilyUserStatus, "userStatusEmpty", decodeUserStatus)

	r.Register(domain.FamilyPeerColor, "peerColor", decodePeerColor)
	r.Register(domain.FamilyPeerColor, "peerColorCollectible", decodePeerColorCollectible)

	r.Register(domain.FamilyChat, "chat", decodeChat)
	r.Register(domain.FamilyChat, "chatForbidden", decodeChat)
	r.Register(domain.FamilyChat, "chatEmpty", decodeChat)
	r.Register(domain.FamilyChat, "channel", decodeChannel)
	r.Register(domain.FamilyChat, "channelForbidden", decodeChannel)

	r.Register(domain.FamilyPeer, "peerUser", decodePeerUser)
	r.Register(domain.FamilyPeer, "peerChat", decodePeerChat)
	r.Register(domain.FamilyPeer, "peerChannel", decodePeerChannel)

	r.Register(domain.FamilyMessage, "message", decodeMessage)
	r.Register(domain.FamilyMessage, "messageService", decodeMessage)
	r.Register(domain.FamilyMessage, "messageEmpty", decodeMessageEmpty)
}

// ==================== Entity resolution ====================

// user resolves a user ID against the table. Zero means no user; an ID the
// envelope does not carry becomes an identifier-only placeholder.
func (s *Session) user(id int64) (*domain.User, error) {
	if id == 0 {
		return nil, nil
	}
	raw, ok := s.table.Resolve(domain.KindUser, id)
	if !ok {
		return domain.UnresolvedUser(id), nil
	}
	u, err := one[*domain.User](s, domain.FamilyUser, raw, false)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return domain.UnresolvedUser(id), nil
	}
	return u, nil
}

func (s *Session) users(ids []int64) ([]*domain.User, error) {
	if ids == nil {
		return nil, nil
	}
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.user(id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Session) userChat(id int64) (*domain.Chat, error) {
	u, err := s.user(id)
	if err != nil || u == nil {
		return nil, err
	}
	return domain.ChatFromUser(u), nil
}

// chat resolves a basic group or channel by bare ID. fallback is the peer
// ID and type used for the placeholder when the chat is missing.
func (s *Session) chat(id, fallbackPeerID int64, fallbackType domain.ChatType) (*domain.Chat, error) {
	if id == 0 {
		return nil, nil
	}
	raw, ok := s.table.Resolve(domain.KindChat, id)
	if !ok {
		return domain.UnresolvedChat(fallbackPeerID, fallbackType), nil
	}
	c, err := one[*domain.Chat](s, domain.FamilyChat, raw, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return domain.UnresolvedChat(fallbackPeerID, fallbackType), nil
	}
	return c, nil
}

func (s *Session) channel(id int64) (*domain.Chat, error) {
	return s.chat(id, domain.ChannelPeerID(id), domain.ChatTypeChannel)
}

// peer decodes a Peer variant into the chat it names.
func (s *Session) peer(v domain.RawVariant, required bool) (*domain.Chat, error) {
	return one[*domain.Chat](s, domain.FamilyPeer, v, required)
}

// optPeer decodes an optional Peer field.
func (s *Session) optPeer(f *fields, name string) (*domain.Chat, error) {
	v, ok := f.OptVariant(name)
	if err := f.Err(); err != nil || !ok {
		return nil, err
	}
	return s.peer(v, false)
}

// message resolves a message ID. Lazy sessions and missing messages yield
// an identifier-only placeholder.
func (s *Session) message(id int64) (*domain.Message, error) {
	if id == 0 {
		return nil, nil
	}
	if !s.ctx.eager() {
		return domain.UnresolvedMessage(id), nil
	}
	raw, ok := s.table.Resolve(domain.KindMessage, id)
	if !ok {
		return domain.UnresolvedMessage(id), nil
	}
	m, err := one[*domain.Message](s, domain.FamilyMessage, raw, false)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return domain.UnresolvedMessage(id), nil
	}
	return m, nil
}

// ==================== Users ====================

type userStatus struct {
	status      domain.UserStatus
	lastOnline  int64
	nextOffline int64
}

func decodeUser(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyUser, v)
	u := &domain.User{
		ID:              f.ID("id"),
		IsSelf:          f.Flag("self"),
		IsContact:       f.Flag("contact"),
		IsMutualContact: f.Flag("mutual_contact"),
		IsDeleted:       f.Flag("deleted"),
		IsBot:           f.Flag("bot"),
		IsVerified:      f.Flag("verified"),
		IsRestricted:    f.Flag("restricted"),
		IsScam:          f.Flag("scam"),
		IsFake:          f.Flag("fake"),
		IsSupport:       f.Flag("support"),
		IsPremium:       f.Flag("premium"),
		FirstName:       f.OptString("first_name"),
		LastName:        f.OptString("last_name"),
		Username:        f.OptString("username"),
		Phone:           f.OptString("phone"),
		LanguageCode:    f.OptString("lang_code"),
	}
	statusRaw, hasStatus := f.OptVariant("status")
	colorRaw, hasColor := f.OptVariant("color")
	profileRaw, hasProfile := f.OptVariant("profile_color")
	if err := f.Err(); err != nil {
		return nil, err
	}

	if s.ctx.SelfID != 0 && u.ID == s.ctx.SelfID {
		u.IsSelf = true
	}

	if hasStatus && !u.IsBot {
		st, err := one[userStatus](s, domain.FamilyUserStatus, statusRaw, false)
		if err != nil {
			return nil, err
		}
		u.Status = st.status
		u.LastOnlineDate = epoch(st.lastOnline)
		u.NextOfflineDate = epoch(st.nextOffline)
	}

	var err error
	if hasColor {
		if u.Color, err = one[*domain.PeerColor](s, domain.FamilyPeerColor, colorRaw, false); err != nil {
			return nil, err
		}
	}
	if hasProfile {
		if u.ProfileColor, err = one[*domain.PeerColor](s, domain.FamilyPeerColor, profileRaw, false); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func decodeUserEmpty(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyUser, v)
	id := f.ID("id")
	if err := f.Err(); err != nil {
		return nil, err
	}
	return domain.UnresolvedUser(id), nil
}

func decodeUserStatus(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyUserStatus, v)
	var st userStatus
	switch v.Tag {
	case "userStatusOnline":
		st = userStatus{status: domain.UserStatusOnline, nextOffline: f.Int("expires")}
	case "userStatusOffline":
		st = userStatus{status: domain.UserStatusOffline, lastOnline: f.Int("was_online")}
	case "userStatusRecently":
		st = userStatus{status: domain.UserStatusRecently}
	case "userStatusLastWeek":
		st = userStatus{status: domain.UserStatusLastWeek}
	case "userStatusLastMonth":
		st = userStatus{status: domain.UserStatusLastMonth}
	default:
		st = userStatus{status: domain.UserStatusLongAgo}
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func decodePeerColor(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeerColor, v)
	c := &domain.PeerColor{
		Color:             int(f.OptInt("color")),
		BackgroundEmojiID: f.OptInt("background_emoji_id"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodePeerColorCollectible(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeerColor, v)
	c := &domain.PeerColor{
		Color:             int(f.Int("accent_color")),
		CollectibleID:     f.ID("collectible_id"),
		GiftEmojiID:       f.OptInt("gift_emoji_id"),
		BackgroundEmojiID: f.OptInt("background_emoji_id"),
	}
	for _, rgb := range f.Ints("colors") {
		c.Colors = append(c.Colors, int(rgb))
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ==================== Chats ====================

func decodeChat(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyChat, v)
	id := f.ID("id")
	c := &domain.Chat{
		ID:           domain.ChatPeerID(id),
		Type:         domain.ChatTypeGroup,
		Title:        f.OptString("title"),
		IsCreator:    f.Flag("creator"),
		MembersCount: int(f.OptInt("participants_count")),
		IsForbidden:  v.Tag == "chatForbidden",
		Unresolved:   v.Tag == "chatEmpty",

		HasProtectedContent: f.Flag("noforwards"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeChannel(_ *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyChat, v)
	id := f.ID("id")
	c := &domain.Chat{
		ID:           domain.ChannelPeerID(id),
		Type:         domain.ChatTypeChannel,
		Title:        f.OptString("title"),
		Username:     f.OptString("username"),
		IsVerified:   f.Flag("verified"),
		IsRestricted: f.Flag("restricted"),
		IsScam:       f.Flag("scam"),
		IsFake:       f.Flag("fake"),
		IsForum:      f.Flag("forum"),
		IsCreator:    f.Flag("creator"),
		IsForbidden:  v.Tag == "channelForbidden",
		MembersCount: int(f.OptInt("participants_count")),
		Until:        f.OptTime("until_date"),

		HasProtectedContent: f.Flag("noforwards"),
	}
	if f.Flag("megagroup") {
		c.Type = domain.ChatTypeSupergroup
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// ==================== Peers ====================

func decodePeerUser(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeer, v)
	id := f.ID("user_id")
	if err := f.Err(); err != nil {
		return nil, err
	}
	return s.userChat(id)
}

func decodePeerChat(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeer, v)
	id := f.ID("chat_id")
	if err := f.Err(); err != nil {
		return nil, err
	}
	return s.chat(id, domain.ChatPeerID(id), domain.ChatTypeGroup)
}

func decodePeerChannel(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyPeer, v)
	id := f.ID("channel_id")
	if err := f.Err(); err != nil {
		return nil, err
	}
	return s.channel(id)
}

// ==================== Messages ====================

func decodeMessage(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyMessage, v)
	m := &domain.Message{
		ID:        f.ID("id"),
		Date:      f.Time("date"),
		EditDate:  f.OptTime("edit_date"),
		Text:      f.OptString("message"),
		Outgoing:  f.Flag("out"),
		Pinned:    f.Flag("pinned"),
		Silent:    f.Flag("silent"),
		IsService: v.Tag == "messageService",
		Views:     int(f.OptInt("views")),
		Forwards:  int(f.OptInt("forwards")),
	}
	peerRaw := f.Variant("peer_id")
	if err := f.Err(); err != nil {
		return nil, err
	}

	var err error
	if m.Chat, err = s.peer(peerRaw, true); err != nil {
		return nil, err
	}
	if m.From, err = s.optPeer(f, "from_id"); err != nil {
		return nil, err
	}
	if m.From == nil && m.Chat != nil && m.Chat.Type.IsUser() && !m.Outgoing {
		m.From = m.Chat
	}
	if s.ctx.SelfID != 0 && m.From != nil && m.From.ID == domain.UserPeerID(s.ctx.SelfID) {
		m.Outgoing = true
	}
	return m, nil
}

func decodeMessageEmpty(s *Session, v domain.RawVariant) (any, error) {
	f := read(domain.FamilyMessage, v)
	m := &domain.Message{ID: f.Int("id"), Empty: true}
	chat, err := s.optPeer(f, "peer_id")
	if err != nil {
		return nil, err
	}
	m.Chat = chat
	return m, nil
}
