package domain

import "time"

// SavedDialog is a chat with messages in the Saved Messages collection.
type SavedDialog struct {
	Chat       *Chat
	TopMessage *Message
	Pinned     bool
}

// SavedDialogs is a page of saved dialogs.
type SavedDialogs struct {
	// Count is the total number of dialogs; it equals len(Dialogs) when the
	// server sent the complete list.
	Count   int
	Dialogs []SavedDialog
}

// MuteState is a participant's microphone state. The wire carries it as
// the muted, can_self_unmute and muted_by_you flags.
type MuteState string

// Mute states.
const (
	// MuteStateUnmuted means the participant is speaking or may speak.
	MuteStateUnmuted MuteState = "unmuted"

	// MuteStateSelfMuted means the participant muted themselves and may unmute.
	MuteStateSelfMuted MuteState = "self_muted"

	// MuteStateForceMuted means an admin muted the participant.
	MuteStateForceMuted MuteState = "force_muted"
)

// String returns the string representation.
func (s MuteState) String() string {
	return string(s)
}

// GroupCallParticipant is a member of a voice or video chat.
type GroupCallParticipant struct {
	// Chat is the participant peer. It is a user chat for users.
	Chat *Chat

	// User is set when the participant is a user.
	User *User

	Date   time.Time
	Source int64

	// Volume is in hundredths of a percent; zero means the default.
	Volume int

	Mute       MuteState
	MutedByYou bool
	Left       bool
	JustJoined bool
	Versioned  bool
	Self       bool

	HasVideo        bool
	HasPresentation bool

	RaiseHandRating int64
	About           string
}

// GroupCallRef identifies a group call.
type GroupCallRef struct {
	ID         int64
	AccessHash int64
}
