package mcp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// defaultLimit caps list tools when the caller sets no limit.
const defaultLimit = 50

// BoostsInput is the input schema for the list_boosts tool.
type BoostsInput struct {
	Chat  string `json:"chat" jsonschema:"the channel: @username, peer ID or t.me link"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of boosts to return (default 50)"`
	Gifts bool   `json:"gifts,omitempty" jsonschema:"only boosts obtained from gifts and giveaways"`
}

// BoostsOutput is the output schema for the list_boosts tool.
type BoostsOutput struct {
	Boosts []BoostOutput `json:"boosts"`
	Count  int           `json:"count"`
}

// BoostOutput represents a single boost.
type BoostOutput struct {
	ID         string `json:"id"`
	UserID     int64  `json:"user_id,omitempty"`
	UserName   string `json:"user_name,omitempty"`
	Source     string `json:"source"`
	Date       string `json:"date"`
	ExpireDate string `json:"expire_date"`
	Multiplier int    `json:"multiplier,omitempty"`
	Stars      int64  `json:"stars,omitempty"`
}

// TransactionsInput is the input schema for the list_stars_transactions tool.
type TransactionsInput struct {
	Peer     string `json:"peer,omitempty" jsonschema:"the balance owner; empty for the current account"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of transactions to return (default 50)"`
	Inbound  bool   `json:"inbound,omitempty" jsonschema:"only incoming transactions"`
	Outbound bool   `json:"outbound,omitempty" jsonschema:"only outgoing transactions"`
}

// TransactionsOutput is the output schema for the list_stars_transactions tool.
type TransactionsOutput struct {
	Transactions []TransactionOutput `json:"transactions"`
	Count        int                 `json:"count"`
}

// TransactionOutput represents a single stars transaction.
type TransactionOutput struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	PeerType string `json:"peer_type"`
	PeerName string `json:"peer_name,omitempty"`
	Title    string `json:"title,omitempty"`
	State    string `json:"state"`
}

// SavedGiftsInput is the input schema for the list_saved_gifts tool.
type SavedGiftsInput struct {
	Peer  string `json:"peer,omitempty" jsonschema:"the profile owner; empty for the current account"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of gifts to return (default 50)"`
}

// SavedGiftsOutput is the output schema for the list_saved_gifts tool.
type SavedGiftsOutput struct {
	Gifts []SavedGiftOutput `json:"gifts"`
	Count int               `json:"count"`
}

// SavedGiftOutput represents a single saved gift.
type SavedGiftOutput struct {
	Kind     string `json:"kind"`
	GiftID   int64  `json:"gift_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Stars    int64  `json:"stars,omitempty"`
	Date     string `json:"date"`
	FromID   int64  `json:"from_id,omitempty"`
	FromName string `json:"from_name,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// StoryViewsInput is the input schema for the list_story_views tool.
type StoryViewsInput struct {
	Peer         string `json:"peer,omitempty" jsonschema:"the story owner; empty for the current account"`
	StoryID      int64  `json:"story_id" jsonschema:"the story ID"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of viewers to return (default 50)"`
	Query        string `json:"query,omitempty" jsonschema:"filter viewers by name"`
	JustContacts bool   `json:"just_contacts,omitempty" jsonschema:"only viewers in the contact list"`
}

// StoryViewsOutput is the output schema for the list_story_views tool.
type StoryViewsOutput struct {
	Viewers []ViewerOutput `json:"viewers"`
	Count   int            `json:"count"`
}

// ViewerOutput represents a single story viewer. Kind is one of "view",
// "forward", "repost" or "unsupported".
type ViewerOutput struct {
	Kind     string `json:"kind"`
	PeerID   int64  `json:"peer_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Date     string `json:"date,omitempty"`
	Reaction string `json:"reaction,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// DecodeInput is the input schema for the decode_envelope tool.
type DecodeInput struct {
	Family   string `json:"family" jsonschema:"the payload's variant family, e.g. stories.StoryViewsList"`
	Envelope string `json:"envelope" jsonschema:"the JSON envelope; objects carry their tag in the _ field"`
	Policy   string `json:"policy,omitempty" jsonschema:"unsupported variant policy: drop, surface or escalate"`
}

// DecodeOutput is the output schema for the decode_envelope tool.
type DecodeOutput struct {
	Value   any                 `json:"value"`
	Dropped []UnsupportedOutput `json:"dropped"`
}

// UnsupportedOutput names a skipped variant.
type UnsupportedOutput struct {
	Family string `json:"family"`
	Tag    string `json:"tag"`
}

// ResolvePeerInput is the input schema for the resolve_peer tool.
type ResolvePeerInput struct {
	Ref string `json:"ref" jsonschema:"peer ID, @username, t.me link, +phone or me"`
}

// PeerOutput represents a stored peer.
type PeerOutput struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	AccessHash string `json:"access_hash"`
	Username   string `json:"username,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Name       string `json:"name,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_boosts",
		Description: "List the boosts applied to a channel",
	}, s.handleListBoosts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_stars_transactions",
		Description: "List the stars balance history of the current account or a bot/channel",
	}, s.handleListTransactions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_saved_gifts",
		Description: "List the star gifts kept on a profile",
	}, s.handleListSavedGifts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_story_views",
		Description: "List who viewed, forwarded or reposted a story",
	}, s.handleListStoryViews)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "decode_envelope",
		Description: "Decode a recorded JSON response envelope into domain objects",
	}, s.handleDecodeEnvelope)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_peer",
		Description: "Resolve a peer reference to a stored peer record",
	}, s.handleResolvePeer)
}

func (s *Server) handleListBoosts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BoostsInput,
) (*mcp.CallToolResult, BoostsOutput, error) {
	if s.ports.Boost == nil {
		return nil, BoostsOutput{}, ErrServiceUnavailable
	}

	opts := domain.BoostListOptions{
		ListOptions: domain.ListOptions{Limit: limitOrDefault(input.Limit)},
		Gifts:       input.Gifts,
	}

	output := BoostsOutput{Boosts: []BoostOutput{}}
	for boost, err := range s.ports.Boost.List(ctx, input.Chat, opts) {
		if err != nil {
			return nil, BoostsOutput{}, err
		}
		out := BoostOutput{
			ID:         boost.ID,
			Source:     string(boost.Source),
			Date:       formatTime(boost.Date),
			ExpireDate: formatTime(boost.ExpireDate),
			Multiplier: boost.Multiplier,
			Stars:      boost.Stars,
		}
		if boost.User != nil {
			out.UserID = boost.User.ID
			out.UserName = boost.User.FullName()
		}
		output.Boosts = append(output.Boosts, out)
	}
	output.Count = len(output.Boosts)

	return nil, output, nil
}

func (s *Server) handleListTransactions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransactionsInput,
) (*mcp.CallToolResult, TransactionsOutput, error) {
	if s.ports.Payment == nil {
		return nil, TransactionsOutput{}, ErrServiceUnavailable
	}
	if input.Inbound && input.Outbound {
		return nil, TransactionsOutput{}, fmt.Errorf("inbound and outbound are exclusive: %w", domain.ErrInvalidInput)
	}

	opts := domain.TransactionListOptions{
		ListOptions: domain.ListOptions{Limit: limitOrDefault(input.Limit)},
		Inbound:     input.Inbound,
		Outbound:    input.Outbound,
	}

	output := TransactionsOutput{Transactions: []TransactionOutput{}}
	for tx, err := range s.ports.Payment.Transactions(ctx, input.Peer, opts) {
		if err != nil {
			return nil, TransactionsOutput{}, err
		}
		out := TransactionOutput{
			ID:       tx.ID,
			Amount:   tx.Amount.String(),
			Date:     formatTime(tx.Date),
			PeerType: string(tx.Peer.Type),
			Title:    tx.Title,
			State:    tx.State.String(),
		}
		if tx.Peer.Chat != nil {
			out.PeerName = tx.Peer.Chat.DisplayName()
		}
		output.Transactions = append(output.Transactions, out)
	}
	output.Count = len(output.Transactions)

	return nil, output, nil
}

func (s *Server) handleListSavedGifts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SavedGiftsInput,
) (*mcp.CallToolResult, SavedGiftsOutput, error) {
	if s.ports.Payment == nil {
		return nil, SavedGiftsOutput{}, ErrServiceUnavailable
	}

	opts := domain.ListOptions{Limit: limitOrDefault(input.Limit)}
	output := SavedGiftsOutput{Gifts: []SavedGiftOutput{}}
	for saved, err := range s.ports.Payment.SavedStarGifts(ctx, input.Peer, opts) {
		if err != nil {
			return nil, SavedGiftsOutput{}, err
		}
		out := savedGiftOutput(saved.Gift)
		out.Date = formatTime(saved.Date)
		if saved.From != nil {
			out.FromID = saved.From.ID
			out.FromName = saved.From.DisplayName()
		}
		output.Gifts = append(output.Gifts, out)
	}
	output.Count = len(output.Gifts)

	return nil, output, nil
}

func savedGiftOutput(gift domain.Gift) SavedGiftOutput {
	switch g := gift.(type) {
	case *domain.StarGift:
		return SavedGiftOutput{Kind: "gift", GiftID: g.ID, Title: g.Title, Stars: g.Stars}
	case *domain.UniqueStarGift:
		return SavedGiftOutput{Kind: "collectible", GiftID: g.GiftID, Title: g.Title, Slug: g.Slug}
	case domain.Unsupported:
		return SavedGiftOutput{Kind: "unsupported", Tag: g.Tag}
	default:
		return SavedGiftOutput{Kind: "unsupported"}
	}
}

func (s *Server) handleListStoryViews(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StoryViewsInput,
) (*mcp.CallToolResult, StoryViewsOutput, error) {
	if s.ports.Story == nil {
		return nil, StoryViewsOutput{}, ErrServiceUnavailable
	}

	opts := domain.StoryViewsOptions{
		ListOptions:  domain.ListOptions{Limit: limitOrDefault(input.Limit)},
		Query:        input.Query,
		JustContacts: input.JustContacts,
	}

	output := StoryViewsOutput{Viewers: []ViewerOutput{}}
	for viewer, err := range s.ports.Story.Views(ctx, input.Peer, input.StoryID, opts) {
		if err != nil {
			return nil, StoryViewsOutput{}, err
		}
		output.Viewers = append(output.Viewers, viewerOutput(viewer))
	}
	output.Count = len(output.Viewers)

	return nil, output, nil
}

func (s *Server) handleDecodeEnvelope(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DecodeInput,
) (*mcp.CallToolResult, DecodeOutput, error) {
	if s.ports.Decode == nil {
		return nil, DecodeOutput{}, ErrServiceUnavailable
	}

	policy := domain.UnsupportedPolicy(input.Policy)
	if input.Policy != "" && !policy.IsValid() {
		return nil, DecodeOutput{}, fmt.Errorf("policy %q: %w", input.Policy, domain.ErrInvalidInput)
	}

	result, err := s.ports.Decode.DecodeEnvelope(ctx, domain.Family(input.Family), []byte(input.Envelope), policy)
	if err != nil {
		return nil, DecodeOutput{}, err
	}

	output := DecodeOutput{
		Value:   result.Value,
		Dropped: make([]UnsupportedOutput, len(result.Dropped)),
	}
	for i, d := range result.Dropped {
		output.Dropped[i] = UnsupportedOutput{Family: d.Family.String(), Tag: d.Tag}
	}

	return nil, output, nil
}

func (s *Server) handleResolvePeer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolvePeerInput,
) (*mcp.CallToolResult, PeerOutput, error) {
	if s.ports.Peer == nil {
		return nil, PeerOutput{}, ErrServiceUnavailable
	}

	rec, err := s.ports.Peer.Resolve(ctx, input.Ref)
	if err != nil {
		return nil, PeerOutput{}, err
	}

	return nil, peerOutput(*rec), nil
}

func viewerOutput(viewer domain.StoryViewer) ViewerOutput {
	switch v := viewer.(type) {
	case domain.StoryView:
		out := ViewerOutput{Kind: "view", Date: formatTime(v.Date)}
		if v.Peer != nil {
			out.PeerID = v.Peer.ID
			out.Name = v.Peer.DisplayName()
		}
		if v.Reaction != nil {
			out.Reaction = reactionText(*v.Reaction)
		}
		return out
	case domain.StoryForwardView:
		out := ViewerOutput{Kind: "forward"}
		if v.Message != nil {
			out.Date = formatTime(v.Message.Date)
			if v.Message.Chat != nil {
				out.PeerID = v.Message.Chat.ID
				out.Name = v.Message.Chat.DisplayName()
			}
		}
		return out
	case domain.StoryRepostView:
		out := ViewerOutput{Kind: "repost"}
		if v.Chat != nil {
			out.PeerID = v.Chat.ID
			out.Name = v.Chat.DisplayName()
		}
		if v.Story != nil {
			out.Date = formatTime(v.Story.Date)
		}
		return out
	case domain.Unsupported:
		return ViewerOutput{Kind: "unsupported", Tag: v.Tag}
	default:
		return ViewerOutput{Kind: "unsupported"}
	}
}

func reactionText(r domain.Reaction) string {
	switch r.Type {
	case domain.ReactionTypeEmoji:
		return r.Emoji
	case domain.ReactionTypeCustomEmoji:
		return "custom:" + strconv.FormatInt(r.CustomEmojiID, 10)
	case domain.ReactionTypePaid:
		return "paid"
	default:
		return string(r.Type)
	}
}

func peerOutput(rec domain.PeerRecord) PeerOutput {
	return PeerOutput{
		ID:         rec.ID,
		Type:       rec.Type.String(),
		AccessHash: strconv.FormatInt(rec.AccessHash, 10),
		Username:   rec.Username,
		Phone:      rec.Phone,
		Name:       rec.Name,
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
