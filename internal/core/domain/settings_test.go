package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedPolicy_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		policy   UnsupportedPolicy
		expected bool
	}{
		{name: "drop is valid", policy: PolicyDrop, expected: true},
		{name: "surface is valid", policy: PolicySurface, expected: true},
		{name: "escalate is valid", policy: PolicyEscalate, expected: true},
		{name: "empty string is invalid", policy: UnsupportedPolicy(""), expected: false},
		{name: "unknown is invalid", policy: UnsupportedPolicy("ignore"), expected: false},
		{name: "case sensitive", policy: UnsupportedPolicy("Drop"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.IsValid())
		})
	}
}

func TestUnsupportedPolicy_Description(t *testing.T) {
	for _, p := range AllPolicies() {
		assert.NotEqual(t, unknownDescription, p.Description(), p.String())
	}
	assert.Equal(t, unknownDescription, UnsupportedPolicy("nope").Description())
}

func TestAllPolicies(t *testing.T) {
	assert.Equal(t, []UnsupportedPolicy{PolicyDrop, PolicySurface, PolicyEscalate}, AllPolicies())
}

func TestResolutionMode_IsValid(t *testing.T) {
	assert.True(t, ResolveEager.IsValid())
	assert.True(t, ResolveLazy.IsValid())
	assert.False(t, ResolutionMode("").IsValid())
	assert.Equal(t, "lazy", ResolveLazy.String())
}

func TestStorageBackend_IsValid(t *testing.T) {
	assert.True(t, StorageSQLite.IsValid())
	assert.True(t, StorageMemory.IsValid())
	assert.False(t, StorageBackend("postgres").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Empty(t, settings.Transport.Cassette)
	assert.Zero(t, settings.Transport.Rate)
	assert.Equal(t, 1, settings.Transport.Burst)
	assert.False(t, settings.Transport.Watch)
	assert.Equal(t, PolicyDrop, settings.Decode.Policy)
	assert.Equal(t, ResolveEager, settings.Decode.Resolution)
	assert.Zero(t, settings.Decode.SelfID)
	assert.Equal(t, 100, settings.Pagination.PageSize)
	assert.Equal(t, StorageSQLite, settings.Storage.Backend)
	assert.Equal(t, "warn", settings.Log.Level)
}
