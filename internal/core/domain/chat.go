package domain

import (
	"strconv"
	"time"
)

// Chat is any peer a conversation can happen with: a user, a bot, a basic
// group, a supergroup or a channel.
type Chat struct {
	// ID is the normalised peer ID.
	ID   int64
	Type ChatType

	Title     string
	Username  string
	FirstName string
	LastName  string

	IsVerified          bool
	IsRestricted        bool
	IsScam              bool
	IsFake              bool
	IsForum             bool
	IsCreator           bool
	IsForbidden         bool
	HasProtectedContent bool

	MembersCount int

	// Until is when a forbidden chat's restriction ends, if temporary.
	Until time.Time

	// Unresolved marks an identifier-only stand-in for a peer that was
	// referenced but not included in the envelope.
	Unresolved bool
}

// UnresolvedChat returns the placeholder used for a referenced peer that
// could not be resolved. Only ID and Type are set.
func UnresolvedChat(peerID int64, chatType ChatType) *Chat {
	return &Chat{ID: peerID, Type: chatType, Unresolved: true}
}

// ChatFromUser builds the private or bot chat for a user.
func ChatFromUser(u *User) *Chat {
	if u == nil {
		return nil
	}
	t := ChatTypePrivate
	if u.IsBot {
		t = ChatTypeBot
	}
	return &Chat{
		ID:           UserPeerID(u.ID),
		Type:         t,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsVerified:   u.IsVerified,
		IsRestricted: u.IsRestricted,
		IsScam:       u.IsScam,
		IsFake:       u.IsFake,
		Unresolved:   u.Unresolved,
	}
}

// DisplayName returns the title, the user's name, the username or the ID,
// whichever is available first.
func (c *Chat) DisplayName() string {
	switch {
	case c.Title != "":
		return c.Title
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	case c.Username != "":
		return "@" + c.Username
	default:
		return strconv.FormatInt(c.ID, 10)
	}
}

// Message is a chat message. Only the fields needed by the operations in
// this client are decoded.
type Message struct {
	ID   int64
	Chat *Chat

	// From is the sender: a user chat or, for channel posts, the channel.
	From *Chat

	Date     time.Time
	EditDate time.Time
	Text     string

	Outgoing  bool
	Pinned    bool
	Silent    bool
	IsService bool
	Empty     bool

	Views    int
	Forwards int

	// Unresolved marks an identifier-only stand-in.
	Unresolved bool
}

// UnresolvedMessage returns the placeholder used for a referenced message
// that could not be resolved. Only ID is set.
func UnresolvedMessage(id int64) *Message {
	return &Message{ID: id, Unresolved: true}
}
