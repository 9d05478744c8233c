package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"campuslink/internal/chat/repository"
	"campuslink/internal/common"
	"campuslink/internal/dbmysql"
	"campuslink/internal/realtime"
)

// ChatService defines the interface exposed to the push handlers and the
// synchronous mirror. Both surfaces share the same rules; the only
// difference is whether the sender gets a confirmation push.
type ChatService interface {
	SendMessage(ctx context.Context, senderID, conversationID, content, kind string, confirmSender bool) (*MessageView, PushResult, error)
	AcknowledgeDelivered(ctx context.Context, receiverID string, messageIDs []string) (int, error)
	DeliverPending(ctx context.Context, receiverID string) (int, error)
	AcknowledgeRead(ctx context.Context, callerID, messageID string) (PushResult, error)
	AcknowledgeConversationRead(ctx context.Context, callerID, conversationID string) (int64, bool, error)
	ListConversations(ctx context.Context, callerID string) ([]*ConversationSummary, error)
	ListMessages(ctx context.Context, callerID, conversationID string, cursor *time.Time, limit int) (*MessagePage, error)
	GetOrCreateConversation(ctx context.Context, caller common.Identity, otherUserID string) (*ConversationSummary, error)
}

const defaultPageSize = 50

type chatService struct {
	repo   repository.ChatRepository
	broker realtime.RoomBroker
	now    func() time.Time
}

// NewChatService wires the messaging channel onto its record store and the
// room broker.
func NewChatService(repo repository.ChatRepository, broker realtime.RoomBroker) ChatService {
	return &chatService{repo: repo, broker: broker, now: time.Now}
}

func (s *chatService) SendMessage(ctx context.Context, senderID, conversationID, content, kind string, confirmSender bool) (*MessageView, PushResult, error) {
	if conversationID == "" {
		return nil, PushResult{}, fmt.Errorf("%w: conversation id is required", common.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, PushResult{}, fmt.Errorf("%w: message content cannot be empty", common.ErrValidation)
	}

	msgKind, err := parseKind(kind)
	if err != nil {
		return nil, PushResult{}, err
	}

	conv, err := s.repo.ConversationByID(ctx, conversationID)
	if err != nil {
		return nil, PushResult{}, err
	}

	// The receiver is derived, never supplied: it is the other participant,
	// which doubles as the sender's membership check.
	receiverID, ok := conv.Other(senderID)
	if !ok {
		return nil, PushResult{}, fmt.Errorf("%w: %s is not a participant", common.ErrForbidden, senderID)
	}

	msg := &dbmysql.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Kind:           msgKind,
		Status:         dbmysql.StatusSent,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, PushResult{}, err
	}

	view := viewOf(msg)
	delivered := s.broker.Publish(realtime.UserRoom(receiverID), realtime.EventChatReceive, view)
	if confirmSender {
		s.broker.Publish(realtime.UserRoom(senderID), realtime.EventChatSentConfirmation, view)
	}

	return view, PushResult{Persisted: true, Notified: delivered > 0}, nil
}

func (s *chatService) AcknowledgeDelivered(ctx context.Context, receiverID string, messageIDs []string) (int, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}

	affected, err := s.repo.MarkDelivered(ctx, receiverID, messageIDs)
	if err != nil {
		return 0, err
	}
	s.notifyStatusBySender(affected, dbmysql.StatusDelivered)
	return len(affected), nil
}

// DeliverPending is the connect-time sweep: every SENT message addressed to
// the receiver flips to DELIVERED, one notification per affected sender.
func (s *chatService) DeliverPending(ctx context.Context, receiverID string) (int, error) {
	pending, err := s.repo.PendingSent(ctx, receiverID)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ids := make([]string, len(pending))
	for i, msg := range pending {
		ids[i] = msg.ID
	}

	affected, err := s.repo.MarkDelivered(ctx, receiverID, ids)
	if err != nil {
		return 0, err
	}
	s.notifyStatusBySender(affected, dbmysql.StatusDelivered)
	return len(affected), nil
}

func (s *chatService) AcknowledgeRead(ctx context.Context, callerID, messageID string) (PushResult, error) {
	msg, err := s.repo.MessageByID(ctx, messageID)
	if err != nil {
		return PushResult{}, err
	}
	if msg.ReceiverID != callerID {
		// The mirror contract folds "not the receiver" into 404.
		return PushResult{}, fmt.Errorf("%w: message %s", common.ErrNotFound, messageID)
	}
	if !msg.Status.Before(dbmysql.StatusRead) {
		return PushResult{Persisted: true}, nil
	}

	if err := s.repo.MarkRead(ctx, messageID); err != nil {
		return PushResult{}, err
	}

	delivered := s.broker.Publish(realtime.UserRoom(msg.SenderID), realtime.EventChatReadReceipt, ReadReceiptPayload{
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		Status:         string(dbmysql.StatusRead),
	})
	return PushResult{Persisted: true, Notified: delivered > 0}, nil
}

func (s *chatService) AcknowledgeConversationRead(ctx context.Context, callerID, conversationID string) (int64, bool, error) {
	conv, err := s.repo.ConversationByID(ctx, conversationID)
	if err != nil {
		return 0, false, err
	}
	other, ok := conv.Other(callerID)
	if !ok {
		return 0, false, fmt.Errorf("%w: %s is not a participant", common.ErrForbidden, callerID)
	}

	updated, err := s.repo.MarkConversationRead(ctx, conversationID, callerID)
	if err != nil {
		return 0, false, err
	}
	if updated == 0 {
		// Idempotent no-op: nothing changed, nobody is told.
		return 0, false, nil
	}

	delivered := s.broker.Publish(realtime.UserRoom(other), realtime.EventChatConversationRead, ConversationReadPayload{
		ConversationID: conversationID,
		ReceiverID:     callerID,
	})
	return updated, delivered > 0, nil
}

func (s *chatService) ListConversations(ctx context.Context, callerID string) ([]*ConversationSummary, error) {
	convs, err := s.repo.ConversationsFor(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary, err := s.summarize(ctx, conv, callerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *chatService) ListMessages(ctx context.Context, callerID, conversationID string, cursor *time.Time, limit int) (*MessagePage, error) {
	conv, err := s.repo.ConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if _, ok := conv.Other(callerID); !ok {
		return nil, fmt.Errorf("%w: %s is not a participant", common.ErrForbidden, callerID)
	}

	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}

	msgs, err := s.repo.MessagesBefore(ctx, conversationID, cursor, limit)
	if err != nil {
		return nil, err
	}

	// Fetched newest-first for the cursor, returned in chronological order.
	views := make([]*MessageView, len(msgs))
	for i, msg := range msgs {
		views[len(msgs)-1-i] = viewOf(msg)
	}

	page := &MessagePage{Data: views}
	if len(msgs) == limit {
		// Oldest item fetched; an empty next page, not a short one, is the
		// authoritative end-of-history signal.
		oldest := msgs[len(msgs)-1].CreatedAt
		page.NextCursor = &oldest
	}
	return page, nil
}

func (s *chatService) GetOrCreateConversation(ctx context.Context, caller common.Identity, otherUserID string) (*ConversationSummary, error) {
	if otherUserID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if otherUserID == caller.ID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", common.ErrBadRequest)
	}
	if _, err := s.repo.UserInTenant(ctx, caller.TenantID, otherUserID); err != nil {
		return nil, err
	}

	conv, err := s.repo.FindByParticipants(ctx, caller.TenantID, caller.ID, otherUserID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		conv = &dbmysql.Conversation{
			ID:            uuid.NewString(),
			TenantID:      caller.TenantID,
			ParticipantA:  caller.ID,
			ParticipantB:  otherUserID,
			LastMessageAt: s.now().UTC(),
		}
		if err := s.repo.CreateConversation(ctx, conv); err != nil {
			return nil, err
		}
	}

	return s.summarize(ctx, conv, caller.ID)
}

func (s *chatService) summarize(ctx context.Context, conv *dbmysql.Conversation, callerID string) (*ConversationSummary, error) {
	otherID, ok := conv.Other(callerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a participant", common.ErrForbidden, callerID)
	}

	summary := &ConversationSummary{
		ID:        conv.ID,
		UpdatedAt: conv.LastMessageAt,
	}

	if other, err := s.repo.UserByID(ctx, otherID); err == nil {
		summary.OtherParticipant = &ParticipantView{ID: other.UserID, Name: other.Name, Role: other.Role}
	} else {
		// Deactivated accounts still appear in history.
		summary.OtherParticipant = &ParticipantView{ID: otherID}
	}

	last, err := s.repo.LatestMessage(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		summary.LastMessage = viewOf(last)
	}

	unread, err := s.repo.UnreadCount(ctx, conv.ID, callerID)
	if err != nil {
		return nil, err
	}
	summary.UnreadCount = unread

	return summary, nil
}

// notifyStatusBySender groups affected messages by sender and pushes one
// bulk status update to each.
func (s *chatService) notifyStatusBySender(affected []*dbmysql.Message, status dbmysql.MessageStatus) {
	bySender := make(map[string][]string)
	for _, msg := range affected {
		bySender[msg.SenderID] = append(bySender[msg.SenderID], msg.ID)
	}
	for senderID, ids := range bySender {
		s.broker.Publish(realtime.UserRoom(senderID), realtime.EventChatStatusUpdate, StatusUpdatePayload{
			MessageIDs: ids,
			Status:     string(status),
		})
	}
}

func parseKind(kind string) (dbmysql.MessageKind, error) {
	switch dbmysql.MessageKind(kind) {
	case "":
		return dbmysql.KindText, nil
	case dbmysql.KindText, dbmysql.KindImage, dbmysql.KindFile:
		return dbmysql.MessageKind(kind), nil
	}
	return "", fmt.Errorf("%w: unsupported message type %q", common.ErrValidation, kind)
}
