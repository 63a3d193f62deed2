package services

import (
	"context"
	"iter"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

// Ensure StoryService implements the interface.
var _ driving.StoryService = (*StoryService)(nil)

// StoryService lists stories and the interactions with them.
type StoryService struct {
	caller *Caller
	peers  driving.PeerService
}

// NewStoryService creates a new story service.
func NewStoryService(caller *Caller, peers driving.PeerService) *StoryService {
	return &StoryService{caller: caller, peers: peers}
}

// storyParams builds the parameters common to per-story list methods.
func (s *StoryService) storyParams(ctx context.Context, peer string, storyID int64, cursor string, pageSize int) (map[string]any, error) {
	input, err := inputPeerOrSelf(ctx, s.peers, peer)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"peer":   input,
		"id":     storyID,
		"offset": cursor,
		"limit":  int64(pageSize),
	}, nil
}

// Views returns the viewers of one of the current account's stories.
func (s *StoryService) Views(ctx context.Context, peer string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error] {
	call := listCall{
		method: "stories.getStoryViewsList",
		family: domain.FamilyStoryView,
		items:  "views",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			params, err := s.storyParams(ctx, peer, storyID, cursor, pageSize)
			if err != nil {
				return nil, err
			}
			if opts.Query != "" {
				params["q"] = opts.Query
			}
			setFlag(params, "just_contacts", opts.JustContacts)
			setFlag(params, "reactions_first", opts.ReactionsFirst)
			setFlag(params, "forwards_first", opts.ForwardsFirst)
			return params, nil
		},
	}
	return list[domain.StoryViewer](ctx, s.caller, call, opts.ListOptions)
}

// Reactions returns the reactions to a story, including public reposts.
func (s *StoryService) Reactions(ctx context.Context, peer string, storyID int64, opts domain.StoryViewsOptions) iter.Seq2[domain.StoryViewer, error] {
	call := listCall{
		method: "stories.getStoryReactionsList",
		family: domain.FamilyStoryReaction,
		items:  "reactions",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			params, err := s.storyParams(ctx, peer, storyID, cursor, pageSize)
			if err != nil {
				return nil, err
			}
			setFlag(params, "forwards_first", opts.ForwardsFirst)
			return params, nil
		},
	}
	return list[domain.StoryViewer](ctx, s.caller, call, opts.ListOptions)
}

// PublicForwards returns the public reposts of a story.
func (s *StoryService) PublicForwards(ctx context.Context, peer string, storyID int64, opts domain.ListOptions) iter.Seq2[domain.PublicForward, error] {
	call := listCall{
		method: "stats.getStoryPublicForwards",
		family: domain.FamilyPublicForward,
		items:  "forwards",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			return s.storyParams(ctx, peer, storyID, cursor, pageSize)
		},
	}
	return list[domain.PublicForward](ctx, s.caller, call, opts)
}

// PeerStories returns a peer's active stories.
func (s *StoryService) PeerStories(ctx context.Context, peer string) (*domain.PeerStories, error) {
	input, err := inputPeerOrSelf(ctx, s.peers, peer)
	if err != nil {
		return nil, err
	}
	params := map[string]any{"peer": input}
	return query[*domain.PeerStories](ctx, s.caller, "stories.getPeerStories", params, domain.FamilyPeerStoriesResult, "")
}

// AllStories returns the active stories of every followed peer.
func (s *StoryService) AllStories(ctx context.Context, opts domain.AllStoriesOptions) (*domain.AllStories, error) {
	params := map[string]any{}
	if opts.State != "" {
		params["state"] = opts.State
	}
	setFlag(params, "next", opts.Next)
	setFlag(params, "hidden", opts.Hidden)
	return query[*domain.AllStories](ctx, s.caller, "stories.getAllStories", params, domain.FamilyAllStories, opts.Policy)
}

// setFlag sets a boolean parameter only when it is true, matching how
// flags travel on the wire.
func setFlag(params map[string]any, name string, value bool) {
	if value {
		params[name] = true
	}
}
