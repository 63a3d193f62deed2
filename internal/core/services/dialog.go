package services

import (
	"context"
	"iter"
	"strconv"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
	"github.com/custodia-labs/tgcore/internal/pagination"
)

// Ensure the dialog services implement their interfaces.
var (
	_ driving.DialogService    = (*DialogService)(nil)
	_ driving.GroupCallService = (*GroupCallService)(nil)
)

// DialogService reads the saved messages dialogs.
type DialogService struct {
	caller *Caller
	peers  driving.PeerService
}

// NewDialogService creates a new dialog service.
func NewDialogService(caller *Caller, peers driving.PeerService) *DialogService {
	return &DialogService{caller: caller, peers: peers}
}

// SavedDialogs returns the saved messages dialogs, newest first.
// The cursor continues from the last dialog's top message.
func (s *DialogService) SavedDialogs(ctx context.Context, opts domain.SavedDialogsOptions) iter.Seq2[domain.SavedDialog, error] {
	call := listCall{
		method: "messages.getSavedDialogs",
		family: domain.FamilySavedDialog,
		items:  "dialogs",
		params: func(ctx context.Context, cursor string, pageSize int) (map[string]any, error) {
			offset, err := pagination.DecodeCursor(cursor)
			if err != nil {
				return nil, err
			}
			offsetPeer := domain.NewVariant("inputPeerEmpty", nil)
			if offset.OffsetPeer != 0 {
				if offsetPeer, err = s.peers.InputPeer(ctx, strconv.FormatInt(offset.OffsetPeer, 10)); err != nil {
					return nil, err
				}
			}
			params := map[string]any{
				"offset_date": offset.OffsetDate,
				"offset_id":   offset.OffsetID,
				"offset_peer": offsetPeer,
				"limit":       int64(pageSize),
				"hash":        int64(0),
			}
			setFlag(params, "exclude_pinned", opts.ExcludePinned)
			return params, nil
		},
		next: savedDialogsCursor,
	}
	return list[domain.SavedDialog](ctx, s.caller, call, opts.ListOptions)
}

// SavedReactionTags returns the reactions used to tag saved messages,
// optionally limited to one saved dialog.
func (s *DialogService) SavedReactionTags(ctx context.Context, peer string) ([]domain.SavedReactionTag, error) {
	params := map[string]any{"hash": int64(0)}
	if peer != "" {
		input, err := s.peers.InputPeer(ctx, peer)
		if err != nil {
			return nil, err
		}
		params["peer"] = input
	}
	return query[[]domain.SavedReactionTag](ctx, s.caller, "messages.getSavedReactionTags", params, domain.FamilySavedReactionTags, "")
}

// savedDialogsCursor builds the cursor after the last dialog of a page.
// A complete list has no next page.
func savedDialogsCursor(env *domain.RawEnvelope) (string, error) {
	if env.Payload.Tag != "messages.savedDialogsSlice" {
		return "", nil
	}
	items, err := pageItems(env.Payload, "dialogs")
	if err != nil || len(items) == 0 {
		return "", err
	}

	last := items[len(items)-1]
	peerRaw, _ := last.Fields["peer"].(domain.RawVariant)
	peerID, err := rawPeerID(peerRaw)
	if err != nil {
		return "", err
	}
	topID, _ := last.Fields["top_message"].(int64)

	var date int64
	for _, msg := range env.Entities.Messages {
		if id, _ := msg.Fields["id"].(int64); id == topID {
			date, _ = msg.Fields["date"].(int64)
			break
		}
	}
	return pagination.NewCursor(date, topID, peerID).Encode(), nil
}

// rawPeerID returns the peer ID of a peerUser, peerChat or peerChannel.
func rawPeerID(v domain.RawVariant) (int64, error) {
	var (
		field string
		toID  func(int64) int64
	)
	switch v.Tag {
	case "peerUser":
		field, toID = "user_id", domain.UserPeerID
	case "peerChat":
		field, toID = "chat_id", domain.ChatPeerID
	case "peerChannel":
		field, toID = "channel_id", domain.ChannelPeerID
	default:
		return 0, &domain.MalformedVariantError{Family: domain.FamilyPeer, Tag: v.Tag, Reason: "is not a peer"}
	}
	id, ok := v.Fields[field].(int64)
	if !ok {
		return 0, &domain.MalformedVariantError{Family: domain.FamilyPeer, Tag: v.Tag, Field: field, Reason: "is missing"}
	}
	return toID(id), nil
}

// GroupCallService reads group call participants.
type GroupCallService struct {
	caller *Caller
}

// NewGroupCallService creates a new group call service.
func NewGroupCallService(caller *Caller) *GroupCallService {
	return &GroupCallService{caller: caller}
}

// Participants returns the participants of a group call.
func (s *GroupCallService) Participants(ctx context.Context, ref domain.GroupCallRef, opts domain.ListOptions) iter.Seq2[domain.GroupCallParticipant, error] {
	call := listCall{
		method: "phone.getGroupParticipants",
		family: domain.FamilyGroupCallParticipant,
		items:  "participants",
		params: func(_ context.Context, cursor string, pageSize int) (map[string]any, error) {
			return map[string]any{
				"call": domain.NewVariant("inputGroupCall", map[string]any{
					"id":          ref.ID,
					"access_hash": ref.AccessHash,
				}),
				"ids":     []any{},
				"sources": []any{},
				"offset":  cursor,
				"limit":   int64(pageSize),
			}, nil
		},
	}
	return list[domain.GroupCallParticipant](ctx, s.caller, call, opts)
}
