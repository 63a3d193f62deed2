package decoders

import (
	"time"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/entities"
)

// rv builds a raw variant from alternating field names and values.
func rv(tag string, kv ...any) domain.RawVariant {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	return domain.NewVariant(tag, fields)
}

func list(items ...any) []any {
	return items
}

func rawUser(id int64, first string) domain.RawVariant {
	return rv("user", "id", id, "first_name", first, "access_hash", int64(99))
}

func peerUser(id int64) domain.RawVariant {
	return rv("peerUser", "user_id", id)
}

func peerChannel(id int64) domain.RawVariant {
	return rv("peerChannel", "channel_id", id)
}

func table(users []domain.RawVariant, chats []domain.RawVariant, messages ...domain.RawVariant) *entities.Table {
	return entities.Build(domain.Entities{Users: users, Chats: chats, Messages: messages})
}

func ts(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

const (
	t0 int64 = 1700000000
	t1 int64 = 1700086400
)
