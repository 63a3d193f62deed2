package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
)

// Ensure PeerStore implements the interface.
var _ driven.PeerStore = (*PeerStore)(nil)

// PeerStore is an in-memory implementation of driven.PeerStore.
type PeerStore struct {
	mu    sync.RWMutex
	peers map[int64]domain.PeerRecord
}

// NewPeerStore creates a new in-memory peer store.
func NewPeerStore() *PeerStore {
	return &PeerStore{
		peers: make(map[int64]domain.PeerRecord),
	}
}

// Save stores or updates peer records.
func (s *PeerStore) Save(_ context.Context, records []domain.PeerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		if rec.AccessHash == 0 {
			if old, ok := s.peers[rec.ID]; ok {
				rec.AccessHash = old.AccessHash
			}
		}
		if rec.Phone == "" {
			if old, ok := s.peers[rec.ID]; ok {
				rec.Phone = old.Phone
			}
		}
		s.peers[rec.ID] = rec
	}
	return nil
}

// Get retrieves a peer by ID.
func (s *PeerStore) Get(_ context.Context, id int64) (*domain.PeerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.peers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// GetByUsername retrieves a peer by username.
func (s *PeerStore) GetByUsername(_ context.Context, username string) (*domain.PeerRecord, error) {
	return s.find(func(rec domain.PeerRecord) bool {
		return rec.Username != "" && strings.EqualFold(rec.Username, username)
	})
}

// GetByPhone retrieves a user by phone number.
func (s *PeerStore) GetByPhone(_ context.Context, phone string) (*domain.PeerRecord, error) {
	return s.find(func(rec domain.PeerRecord) bool {
		return rec.Phone != "" && rec.Phone == phone
	})
}

// find returns the lowest-ID peer matching fn.
func (s *PeerStore) find(fn func(domain.PeerRecord) bool) (*domain.PeerRecord, error) {
	peers, _ := s.List(context.Background())
	for _, rec := range peers {
		if fn(rec) {
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all stored peers ordered by ID.
func (s *PeerStore) List(_ context.Context) ([]domain.PeerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PeerRecord, 0, len(s.peers))
	for _, rec := range s.peers {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
