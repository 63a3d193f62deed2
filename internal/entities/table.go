// Package entities provides the per-envelope entity lookup table.
//
// A Table indexes the auxiliary users, chats and messages of one response
// envelope by (kind, id). It is built once per envelope, never shared across
// requests and never persisted: the same numeric ID may describe different
// data in a later response.
package entities

import (
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

type key struct {
	kind domain.EntityKind
	id   int64
}

// Table is an immutable (kind, id) index over an envelope's entities.
// A nil *Table behaves as an empty table.
type Table struct {
	entries map[key]domain.RawVariant
}

// Build indexes the auxiliary collections. Later entries for the same key
// overwrite earlier ones. Entities without an integer "id" are skipped.
func Build(e domain.Entities) *Table {
	t := &Table{entries: make(map[key]domain.RawVariant, e.Len())}
	t.add(domain.KindUser, e.Users)
	t.add(domain.KindChat, e.Chats)
	t.add(domain.KindMessage, e.Messages)
	return t
}

// FromEnvelope builds a table from an envelope's auxiliary collections.
func FromEnvelope(env *domain.RawEnvelope) *Table {
	if env == nil {
		return Build(domain.Entities{})
	}
	return Build(env.Entities)
}

func (t *Table) add(kind domain.EntityKind, items []domain.RawVariant) {
	for _, item := range items {
		id, ok := item.Fields["id"].(int64)
		if !ok {
			continue
		}
		t.entries[key{kind: kind, id: id}] = item
	}
}

// Resolve looks up an entity. The boolean is false when the ID is absent,
// which is a normal outcome rather than an error.
func (t *Table) Resolve(kind domain.EntityKind, id int64) (domain.RawVariant, bool) {
	if t == nil {
		return domain.RawVariant{}, false
	}
	v, ok := t.entries[key{kind: kind, id: id}]
	return v, ok
}

// Has reports whether an entity is present.
func (t *Table) Has(kind domain.EntityKind, id int64) bool {
	_, ok := t.Resolve(kind, id)
	return ok
}

// Len returns the number of indexed entities.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
