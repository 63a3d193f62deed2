package driven

import (
	"context"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// PeerStore persists the peers seen in responses so later requests can be
// addressed to them. Backed by SQLite, or memory for ephemeral runs.
type PeerStore interface {
	// Save stores or updates peer records. A record without an access hash
	// or phone keeps the value already stored for that peer.
	Save(ctx context.Context, records []domain.PeerRecord) error

	// Get retrieves a peer by its peer ID.
	Get(ctx context.Context, id int64) (*domain.PeerRecord, error)

	// GetByUsername retrieves a peer by username, case-insensitively.
	GetByUsername(ctx context.Context, username string) (*domain.PeerRecord, error)

	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.PeerRecord, error)

	// List returns all stored peers ordered by ID.
	List(ctx context.Context) ([]domain.PeerRecord, error)
}
