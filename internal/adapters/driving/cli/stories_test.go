package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func TestStoriesViewsCmd(t *testing.T) {
	date := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	svc := &mockStoryService{
		viewers: []domain.StoryViewer{
			domain.StoryView{
				Peer:     &domain.Chat{ID: 1, FirstName: "Alice"},
				Date:     date,
				Reaction: &domain.Reaction{Type: domain.ReactionTypeEmoji, Emoji: "👍"},
			},
			domain.StoryForwardView{
				Message: &domain.Message{ID: 5, Chat: &domain.Chat{ID: -1003, Title: "Digest"}, Date: date},
			},
			domain.StoryRepostView{
				Chat:  &domain.Chat{ID: 2, Username: "carol"},
				Story: &domain.Story{ID: 3, Date: date},
			},
			domain.Unsupported{Family: domain.FamilyStoryView, Tag: "storyViewFuture"},
		},
	}
	setupTestServices(t, &Services{Story: svc})

	out, err := executeCommand(t, "stories", "views", "@me", "42",
		"-q", "ali", "--contacts", "--reactions-first", "-n", "20")

	require.NoError(t, err)
	assert.Equal(t, "@me", svc.lastPeer)
	assert.Equal(t, int64(42), svc.lastStoryID)
	assert.Equal(t, "ali", svc.lastOpts.Query)
	assert.True(t, svc.lastOpts.JustContacts)
	assert.True(t, svc.lastOpts.ReactionsFirst)
	assert.False(t, svc.lastOpts.ForwardsFirst)
	assert.Equal(t, 20, svc.lastOpts.Limit)

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "👍")
	assert.Contains(t, out, "Digest")
	assert.Contains(t, out, "@carol")
	assert.Contains(t, out, "storyViewFuture")
	assert.Contains(t, out, "2024-07-01 08:00")
}

func TestStoriesReactionsCmd(t *testing.T) {
	svc := &mockStoryService{}
	setupTestServices(t, &Services{Story: svc})

	out, err := executeCommand(t, "stories", "reactions", "@me", "7", "--forwards-first")

	require.NoError(t, err)
	assert.Equal(t, int64(7), svc.lastStoryID)
	assert.True(t, svc.lastOpts.ForwardsFirst)
	assert.Contains(t, out, "No viewers found.")
}

func TestStoriesCmd_InvalidStoryID(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "views not a number", args: []string{"stories", "views", "@me", "x"}},
		{name: "views zero", args: []string{"stories", "views", "@me", "0"}},
		{name: "reactions trailing junk", args: []string{"stories", "reactions", "@me", "9x"}},
		{name: "forwards", args: []string{"stories", "forwards", "@me", "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t, &Services{Story: &mockStoryService{}})

			_, err := executeCommand(t, tt.args...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestStoriesForwardsCmd(t *testing.T) {
	svc := &mockStoryService{
		forwards: []domain.PublicForward{
			domain.PublicForwardMessage{Message: &domain.Message{Chat: &domain.Chat{Title: "Repost Channel"}}},
			domain.PublicForwardStory{Chat: &domain.Chat{FirstName: "Dana"}, Story: &domain.Story{ID: 1}},
			domain.Unsupported{Family: domain.FamilyPublicForward, Tag: "publicForwardFuture"},
		},
	}
	setupTestServices(t, &Services{Story: svc})

	out, err := executeCommand(t, "stories", "forwards", "@channel", "11")

	require.NoError(t, err)
	assert.Equal(t, int64(11), svc.lastStoryID)
	assert.Contains(t, out, "Repost Channel")
	assert.Contains(t, out, "Dana")
	assert.Contains(t, out, "publicForwardFuture")
}

func TestStoriesPeerCmd(t *testing.T) {
	svc := &mockStoryService{
		peerStories: &domain.PeerStories{
			Chat: &domain.Chat{ID: 1, FirstName: "Alice"},
			Stories: []domain.Story{
				{ID: 8, Chat: &domain.Chat{ID: 1, FirstName: "Alice"}, Privacy: domain.StoryPrivacyPublic, Views: &domain.StoryViews{ViewsCount: 31}},
			},
		},
	}
	setupTestServices(t, &Services{Story: svc})

	out, err := executeCommand(t, "stories", "peer", "@alice")

	require.NoError(t, err)
	assert.Equal(t, "@alice", svc.lastPeer)
	assert.Contains(t, out, "public")
	assert.Contains(t, out, "31")
}

func TestStoriesAllCmd(t *testing.T) {
	t.Run("modified with more", func(t *testing.T) {
		svc := &mockStoryService{
			all: &domain.AllStories{
				Modified: true,
				HasMore:  true,
				State:    "st2",
				Peers: []domain.PeerStories{
					{Stories: []domain.Story{{ID: 1, Chat: &domain.Chat{Title: "News"}}}},
				},
			},
		}
		setupTestServices(t, &Services{Story: svc})

		out, err := executeCommand(t, "stories", "all", "--state", "st1", "--hidden")

		require.NoError(t, err)
		assert.Equal(t, "st1", svc.lastAllOpts.State)
		assert.True(t, svc.lastAllOpts.Next)
		assert.True(t, svc.lastAllOpts.Hidden)
		assert.Contains(t, out, "News")
		assert.Contains(t, out, "More available: --state st2")
	})

	t.Run("not modified", func(t *testing.T) {
		svc := &mockStoryService{all: &domain.AllStories{State: "st1"}}
		setupTestServices(t, &Services{Story: svc})

		out, err := executeCommand(t, "stories", "all")

		require.NoError(t, err)
		assert.False(t, svc.lastAllOpts.Next)
		assert.Contains(t, out, "Not modified (state st1)")
	})
}

func TestViewerRow(t *testing.T) {
	tests := []struct {
		name   string
		viewer domain.StoryViewer
		want   []string
	}{
		{
			name:   "view without reaction",
			viewer: domain.StoryView{Peer: &domain.Chat{ID: 5}},
			want:   []string{"view", "5", "-", "-"},
		},
		{
			name:   "forward without message",
			viewer: domain.StoryForwardView{},
			want:   []string{"forward", "-", "-", "-"},
		},
		{
			name:   "repost without story",
			viewer: domain.StoryRepostView{Chat: &domain.Chat{Title: "T"}},
			want:   []string{"repost", "T", "-", "-"},
		},
		{
			name:   "unsupported",
			viewer: domain.Unsupported{Tag: "x"},
			want:   []string{"unsupported", "x", "-", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, viewerRow(tt.viewer))
		})
	}
}
