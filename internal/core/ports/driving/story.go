package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// StoryService reads stories and their audience.
type StoryService interface {
	// Views iterates over the viewers of one of the current user's stories.
	Views(ctx context.Context, peer string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error]

	// Reactions iterates over the reactions and reposts of a story.
	Reactions(ctx context.Context, peer string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error]

	// PublicForwards iterates over public reposts of a story.
	PublicForwards(ctx context.Context, peer string, storyID int64, opts domain.ListOptions) iter.Seq2[domain.PublicForward, error]

	// PeerStories returns a peer's active stories.
	PeerStories(ctx context.Context, peer string) (*domain.PeerStories, error)

	// AllStories returns the active stories of followed peers.
	AllStories(ctx context.Context, opts domain.AllStoriesOptions) (*domain.AllStories, error)
}
