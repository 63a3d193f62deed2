package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	v := NewVariant("peerUser", nil)

	assert.Equal(t, "peerUser", v.Tag)
	assert.NotNil(t, v.Fields)
	assert.False(t, v.IsZero())
	assert.True(t, RawVariant{}.IsZero())
}

func TestRawVariant_Get(t *testing.T) {
	v := NewVariant("boost", map[string]any{"id": "b1", "multiplier": int64(2)})

	id, ok := v.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "b1", id)

	_, ok = v.Get("stars")
	assert.False(t, ok)
}

func TestNewEnvelope_CollectsEntities(t *testing.T) {
	user := NewVariant("user", map[string]any{"id": int64(1)})
	channel := NewVariant("channel", map[string]any{"id": int64(2)})
	message := NewVariant("message", map[string]any{"id": int64(3)})

	payload := NewVariant("premium.boostsList", map[string]any{
		"count":    int64(1),
		"users":    []any{user, "not a variant"},
		"chats":    []any{channel},
		"messages": []any{message},
	})

	env := NewEnvelope(payload)

	require.NotNil(t, env)
	assert.Equal(t, payload, env.Payload)
	assert.Equal(t, []RawVariant{user}, env.Entities.Users)
	assert.Equal(t, []RawVariant{channel}, env.Entities.Chats)
	assert.Equal(t, []RawVariant{message}, env.Entities.Messages)
	assert.Equal(t, 3, env.Entities.Len())
}

func TestNewEnvelope_NoEntities(t *testing.T) {
	env := NewEnvelope(NewVariant("boolTrue", nil))

	assert.Empty(t, env.Entities.Users)
	assert.Empty(t, env.Entities.Chats)
	assert.Empty(t, env.Entities.Messages)
	assert.Zero(t, env.Entities.Len())
}

func TestEntityKind_String(t *testing.T) {
	assert.Equal(t, "user", KindUser.String())
	assert.Equal(t, "chat", KindChat.String())
	assert.Equal(t, "message", KindMessage.String())
}
