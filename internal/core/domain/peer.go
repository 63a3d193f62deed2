package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Peer ID ranges. Basic groups are stored negated and channels are shifted
// below channelIDOffset so that a single int64 identifies any peer.
const (
	channelIDOffset int64 = -1000000000000
	maxUserID       int64 = 1<<40 - 1
)

// ChatType describes what kind of peer a chat is.
type ChatType string

// Chat types.
const (
	// ChatTypePrivate is a one-to-one chat with a user.
	ChatTypePrivate ChatType = "private"

	// ChatTypeBot is a one-to-one chat with a bot.
	ChatTypeBot ChatType = "bot"

	// ChatTypeGroup is a basic group.
	ChatTypeGroup ChatType = "group"

	// ChatTypeSupergroup is a channel in megagroup mode.
	ChatTypeSupergroup ChatType = "supergroup"

	// ChatTypeChannel is a broadcast channel.
	ChatTypeChannel ChatType = "channel"
)

// IsValid returns true if the chat type is recognised.
func (t ChatType) IsValid() bool {
	switch t {
	case ChatTypePrivate, ChatTypeBot, ChatTypeGroup, ChatTypeSupergroup, ChatTypeChannel:
		return true
	default:
		return false
	}
}

// IsUser returns true for private and bot chats.
func (t ChatType) IsUser() bool {
	return t == ChatTypePrivate || t == ChatTypeBot
}

// IsChannel returns true for channels and supergroups.
func (t ChatType) IsChannel() bool {
	return t == ChatTypeChannel || t == ChatTypeSupergroup
}

// String returns the string representation.
func (t ChatType) String() string {
	return string(t)
}

// UserPeerID returns the peer ID of a user.
func UserPeerID(userID int64) int64 {
	return userID
}

// ChatPeerID returns the peer ID of a basic group.
func ChatPeerID(chatID int64) int64 {
	return -chatID
}

// ChannelPeerID returns the peer ID of a channel or supergroup.
func ChannelPeerID(channelID int64) int64 {
	return channelIDOffset - channelID
}

// PeerKind reports which entity kind and bare ID a peer ID refers to.
// Channels and basic groups both live in KindChat.
func PeerKind(peerID int64) (EntityKind, int64, error) {
	switch {
	case peerID > 0 && peerID <= maxUserID:
		return KindUser, peerID, nil
	case peerID < 0 && peerID > channelIDOffset:
		return KindChat, -peerID, nil
	case peerID < channelIDOffset:
		return KindChat, channelIDOffset - peerID, nil
	default:
		return "", 0, fmt.Errorf("peer id %d: %w", peerID, ErrInvalidPeer)
	}
}

// IsChannelPeerID returns true if the peer ID is in the channel range.
func IsChannelPeerID(peerID int64) bool {
	return peerID < channelIDOffset
}

// PeerRecord is the persisted knowledge about a peer needed to address it
// in future requests. It is not a cache of entity data.
type PeerRecord struct {
	// ID is the normalised peer ID.
	ID int64

	// Type is the chat type of the peer.
	Type ChatType

	// AccessHash authorises requests that reference the peer.
	AccessHash int64

	// Username is the public username without the leading "@".
	Username string

	// Phone is the phone number for users, if known.
	Phone string

	// Name is a display name used in listings.
	Name string

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}

// InputPeer builds the wire variant used to reference this peer in a request.
// selfID lets the current account be addressed as inputPeerSelf.
func (r PeerRecord) InputPeer(selfID int64) (RawVariant, error) {
	kind, bareID, err := PeerKind(r.ID)
	if err != nil {
		return RawVariant{}, err
	}

	switch {
	case kind == KindUser && selfID != 0 && r.ID == selfID:
		return NewVariant("inputPeerSelf", nil), nil
	case kind == KindUser:
		return NewVariant("inputPeerUser", map[string]any{
			"user_id":     bareID,
			"access_hash": r.AccessHash,
		}), nil
	case IsChannelPeerID(r.ID):
		return NewVariant("inputPeerChannel", map[string]any{
			"channel_id":  bareID,
			"access_hash": r.AccessHash,
		}), nil
	default:
		return NewVariant("inputPeerChat", map[string]any{
			"chat_id": bareID,
		}), nil
	}
}

// ParsePeerRef classifies a user supplied peer reference.
// It returns exactly one of a numeric ID, a username or a phone number.
// The literal "me" and "self" map to selfRef true.
func ParsePeerRef(ref string) (id int64, username, phone string, selfRef bool, err error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return 0, "", "", false, fmt.Errorf("empty peer reference: %w", ErrInvalidPeer)
	case strings.EqualFold(ref, "me"), strings.EqualFold(ref, "self"):
		return 0, "", "", true, nil
	case strings.HasPrefix(ref, "+"):
		return 0, "", strings.TrimPrefix(ref, "+"), false, nil
	case strings.HasPrefix(ref, "@"):
		return 0, strings.ToLower(strings.TrimPrefix(ref, "@")), "", false, nil
	}

	if n, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		return n, "", "", false, nil
	}

	ref = strings.TrimPrefix(ref, "https://t.me/")
	ref = strings.TrimPrefix(ref, "t.me/")
	return 0, strings.ToLower(ref), "", false, nil
}
