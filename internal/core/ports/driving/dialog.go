package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// DialogService reads the saved messages dialogs.
type DialogService interface {
	// SavedDialogs iterates over the saved messages dialogs.
	SavedDialogs(ctx context.Context, opts domain.SavedDialogsOptions) iter.Seq2[domain.SavedDialog, error]

	// SavedReactionTags returns the reactions used to tag saved messages.
	// An empty peer covers every saved messages dialog.
	SavedReactionTags(ctx context.Context, peer string) ([]domain.SavedReactionTag, error)
}

// GroupCallService reads group calls.
type GroupCallService interface {
	// Participants iterates over the participants of a group call.
	Participants(ctx context.Context, call domain.GroupCallRef, opts domain.ListOptions) iter.Seq2[domain.GroupCallParticipant, error]
}
