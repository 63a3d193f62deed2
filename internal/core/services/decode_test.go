package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

const storyViewsJSON = `{
	"_": "stories.storyViewsList",
	"count": 3,
	"views_count": 3,
	"views": [
		{"_": "storyView", "user_id": 1, "date": 1700000000},
		{"_": "storyViewFromTheFuture", "user_id": 2, "date": 1700000000},
		{"_": "storyView", "user_id": 3, "date": 1700000000}
	],
	"users": [
		{"_": "user", "id": 1, "first_name": "Ann"}
	]
}`

func TestDecodeService_DecodeEnvelope(t *testing.T) {
	service := NewDecodeService(Options{Policy: domain.PolicyDrop})

	result, err := service.DecodeEnvelope(context.Background(), domain.FamilyStoryViewsList, []byte(storyViewsJSON), "")

	require.NoError(t, err)
	views, ok := result.Value.(*domain.StoryViewsList)
	require.True(t, ok)
	require.Len(t, views.Viewers, 2)
	first := views.Viewers[0].(domain.StoryView)
	assert.Equal(t, "Ann", first.Peer.FirstName)
	second := views.Viewers[1].(domain.StoryView)
	assert.True(t, second.Peer.Unresolved)
	assert.Equal(t, []domain.Unsupported{{Family: domain.FamilyStoryView, Tag: "storyViewFromTheFuture"}}, result.Dropped)
}

func TestDecodeService_DecodeEnvelope_Policies(t *testing.T) {
	service := NewDecodeService(Options{Policy: domain.PolicyDrop})
	ctx := context.Background()

	t.Run("surface", func(t *testing.T) {
		result, err := service.DecodeEnvelope(ctx, domain.FamilyStoryViewsList, []byte(storyViewsJSON), domain.PolicySurface)
		require.NoError(t, err)
		views := result.Value.(*domain.StoryViewsList)
		require.Len(t, views.Viewers, 3)
		assert.IsType(t, domain.Unsupported{}, views.Viewers[1])
		assert.Empty(t, result.Dropped)
		assert.NotNil(t, result.Dropped)
	})

	t.Run("escalate", func(t *testing.T) {
		_, err := service.DecodeEnvelope(ctx, domain.FamilyStoryViewsList, []byte(storyViewsJSON), domain.PolicyEscalate)
		assert.ErrorIs(t, err, domain.ErrUnsupportedVariant)
	})
}

func TestDecodeService_DecodeEnvelope_Errors(t *testing.T) {
	service := NewDecodeService(Options{})
	ctx := context.Background()

	tests := []struct {
		name    string
		family  domain.Family
		data    string
		wantErr error
	}{
		{"unknown family", domain.Family("Nope"), `{"_": "x"}`, domain.ErrInvalidInput},
		{"invalid json", domain.FamilyBoost, `{`, domain.ErrInvalidInput},
		{"wrong payload", domain.FamilyBoost, `{"_": "boost", "id": "b1"}`, domain.ErrMalformedVariant},
		{"unknown payload", domain.FamilyBoost, `{"_": "boostV2"}`, domain.ErrUnsupportedVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.DecodeEnvelope(ctx, tt.family, []byte(tt.data), "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeService_DecodeEnvelope_Canceled(t *testing.T) {
	service := NewDecodeService(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.DecodeEnvelope(ctx, domain.FamilyBoost, []byte(`{}`), "")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeService_FamiliesAndTags(t *testing.T) {
	service := NewDecodeService(Options{})

	assert.Contains(t, service.Families(), domain.FamilyStoryView)
	assert.Equal(t, []string{"storyView", "storyViewPublicForward", "storyViewPublicRepost"}, service.Tags(domain.FamilyStoryView))
	assert.Empty(t, service.Tags(domain.Family("Nope")))
}
