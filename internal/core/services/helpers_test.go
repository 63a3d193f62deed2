package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// mockTransport answers requests with a handler and records them.
type mockTransport struct {
	mu       sync.Mutex
	handler  func(req domain.Request) (*domain.RawEnvelope, error)
	requests []domain.Request
}

func (m *mockTransport) Invoke(_ context.Context, req domain.Request) (*domain.RawEnvelope, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.handler(req)
}

func (m *mockTransport) calls() []domain.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Request(nil), m.requests...)
}

// mockObserver counts observations.
type mockObserver struct {
	mu       sync.Mutex
	requests []string
	failures int
	pages    []int
	dropped  []string
}

func (m *mockObserver) ObserveRequest(method string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, method)
	if err != nil {
		m.failures++
	}
}

func (m *mockObserver) ObservePage(_ string, items int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, items)
}

func (m *mockObserver) ObserveDropped(family, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped = append(m.dropped, family+"/"+tag)
}

// rv builds a raw variant from alternating field names and values.
func rv(tag string, kv ...any) domain.RawVariant {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	return domain.NewVariant(tag, fields)
}

func anyList(items ...any) []any {
	return items
}

const (
	selfID    int64 = 7
	newsID    int64 = -1000000000123
	newsHash  int64 = 555
	aliceID   int64 = 42
	aliceHash int64 = 99
	t0        int64 = 1700000000
)

func rawUser(id int64, first string) domain.RawVariant {
	return rv("user", "id", id, "first_name", first, "access_hash", int64(1000+id))
}

// fixture wires services around a mock transport and a seeded memory store.
type fixture struct {
	transport *mockTransport
	observer  *mockObserver
	store     *memory.PeerStore
	peers     *PeerService
	caller    *Caller
}

func newFixture(t *testing.T, handler func(req domain.Request) (*domain.RawEnvelope, error)) *fixture {
	t.Helper()
	store := memory.NewPeerStore()
	require.NoError(t, store.Save(context.Background(), []domain.PeerRecord{
		{ID: newsID, Type: domain.ChatTypeChannel, AccessHash: newsHash, Username: "news", Name: "News"},
		{ID: aliceID, Type: domain.ChatTypePrivate, AccessHash: aliceHash, Username: "alice", Phone: "4915"},
	}))

	f := &fixture{
		transport: &mockTransport{handler: handler},
		observer:  &mockObserver{},
		store:     store,
		peers:     NewPeerService(store, selfID),
	}
	f.caller = NewCaller(f.transport, f.peers, f.observer, Options{
		SelfID:     selfID,
		Policy:     domain.PolicyDrop,
		Resolution: domain.ResolveEager,
		PageSize:   100,
	})
	return f
}

func newsInputPeer() domain.RawVariant {
	return rv("inputPeerChannel", "channel_id", int64(123), "access_hash", newsHash)
}

// pagesByOffset serves one envelope per request offset.
func pagesByOffset(pages map[string]domain.RawVariant) func(req domain.Request) (*domain.RawEnvelope, error) {
	return func(req domain.Request) (*domain.RawEnvelope, error) {
		offset, _ := req.Params["offset"].(string)
		payload, ok := pages[offset]
		if !ok {
			return nil, domain.ErrServerRejected
		}
		return domain.NewEnvelope(payload), nil
	}
}
