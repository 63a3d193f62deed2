package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
	"github.com/custodia-labs/tgcore/internal/decoders"
	"github.com/custodia-labs/tgcore/internal/logger"
)

// Ensure PeerService implements the interface.
var _ driving.PeerService = (*PeerService)(nil)

// PeerService records peers from responses and resolves references to them.
type PeerService struct {
	store  driven.PeerStore
	selfID int64
	now    func() time.Time
}

// NewPeerService creates a new peer service. selfID may be zero when the
// current account is unknown.
func NewPeerService(store driven.PeerStore, selfID int64) *PeerService {
	return &PeerService{store: store, selfID: selfID, now: time.Now}
}

// Record stores every user and chat of an envelope's entities.
// Entities that do not decode are skipped.
func (s *PeerService) Record(ctx context.Context, e domain.Entities) error {
	records := make([]domain.PeerRecord, 0, len(e.Users)+len(e.Chats))
	now := s.now().UTC()

	for _, raw := range e.Users {
		u, err := decoders.Decode[*domain.User](domain.FamilyUser, raw, nil, decoders.Context{})
		if err != nil || u.ID == 0 {
			logger.Debug("skip user entity %s: %v", raw.Tag, err)
			continue
		}
		chat := domain.ChatFromUser(u)
		records = append(records, domain.PeerRecord{
			ID:         chat.ID,
			Type:       chat.Type,
			AccessHash: accessHash(raw),
			Username:   u.Username,
			Phone:      u.Phone,
			Name:       chat.DisplayName(),
			UpdatedAt:  now,
		})
	}

	for _, raw := range e.Chats {
		c, err := decoders.Decode[*domain.Chat](domain.FamilyChat, raw, nil, decoders.Context{})
		if err != nil {
			logger.Debug("skip chat entity %s: %v", raw.Tag, err)
			continue
		}
		records = append(records, domain.PeerRecord{
			ID:         c.ID,
			Type:       c.Type,
			AccessHash: accessHash(raw),
			Username:   c.Username,
			Name:       c.DisplayName(),
			UpdatedAt:  now,
		})
	}

	if len(records) == 0 {
		return nil
	}
	if err := s.store.Save(ctx, records); err != nil {
		return fmt.Errorf("save peers: %w", err)
	}
	return nil
}

func accessHash(raw domain.RawVariant) int64 {
	hash, _ := raw.Fields["access_hash"].(int64)
	return hash
}

// Resolve finds a stored peer by reference.
func (s *PeerService) Resolve(ctx context.Context, ref string) (*domain.PeerRecord, error) {
	id, username, phone, self, err := domain.ParsePeerRef(ref)
	if err != nil {
		return nil, err
	}

	var rec *domain.PeerRecord
	switch {
	case self:
		if s.selfID == 0 {
			return nil, fmt.Errorf("resolve %q: current account id not configured: %w", ref, domain.ErrInvalidPeer)
		}
		rec, err = s.store.Get(ctx, s.selfID)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.PeerRecord{ID: s.selfID, Type: domain.ChatTypePrivate}, nil
		}
	case username != "":
		rec, err = s.store.GetByUsername(ctx, username)
	case phone != "":
		rec, err = s.store.GetByPhone(ctx, phone)
	default:
		rec, err = s.resolveID(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}
	return rec, nil
}

// resolveID looks up a numeric peer ID. Basic groups need no access hash
// and resolve without a stored record.
func (s *PeerService) resolveID(ctx context.Context, id int64) (*domain.PeerRecord, error) {
	kind, _, err := domain.PeerKind(id)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) && kind == domain.KindChat && !domain.IsChannelPeerID(id) {
		return &domain.PeerRecord{ID: id, Type: domain.ChatTypeGroup}, nil
	}
	return rec, err
}

// InputPeer builds the request form of a referenced peer.
func (s *PeerService) InputPeer(ctx context.Context, ref string) (domain.RawVariant, error) {
	rec, err := s.Resolve(ctx, ref)
	if err != nil {
		return domain.RawVariant{}, err
	}
	return rec.InputPeer(s.selfID)
}

// inputPeerOrSelf builds the request form of ref. The empty reference is
// the current account.
func inputPeerOrSelf(ctx context.Context, peers driving.PeerService, ref string) (domain.RawVariant, error) {
	if ref == "" {
		return domain.NewVariant("inputPeerSelf", nil), nil
	}
	return peers.InputPeer(ctx, ref)
}

// List returns all stored peers.
func (s *PeerService) List(ctx context.Context) ([]domain.PeerRecord, error) {
	return s.store.List(ctx)
}
