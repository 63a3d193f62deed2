package driving

import (
	"context"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// PeerService tracks the peers seen in responses and resolves references
// to them.
type PeerService interface {
	// Record stores every user and chat of an envelope's entities.
	Record(ctx context.Context, entities domain.Entities) error

	// Resolve finds a stored peer by reference: a numeric peer ID,
	// "@username", a t.me link, "+phone" or "me".
	Resolve(ctx context.Context, ref string) (*domain.PeerRecord, error)

	// InputPeer builds the request form of a referenced peer.
	InputPeer(ctx context.Context, ref string) (domain.RawVariant, error)

	// List returns all stored peers.
	List(ctx context.Context) ([]domain.PeerRecord, error)
}
