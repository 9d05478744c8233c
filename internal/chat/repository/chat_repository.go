package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campuslink/internal/common"
	"campuslink/internal/dbmysql"
)

// ChatRepository is the record-store surface of the messaging channel.
type ChatRepository interface {
	ConversationByID(ctx context.Context, id string) (*dbmysql.Conversation, error)
	// FindByParticipants checks both participant orderings; the pair is not
	// canonically sorted on insert.
	FindByParticipants(ctx context.Context, tenantID, userA, userB string) (*dbmysql.Conversation, error)
	CreateConversation(ctx context.Context, conv *dbmysql.Conversation) error
	ConversationsFor(ctx context.Context, userID string) ([]*dbmysql.Conversation, error)

	// CreateMessage stores the message and touches the conversation's
	// last_message_at in one transaction.
	CreateMessage(ctx context.Context, msg *dbmysql.Message) error
	MessageByID(ctx context.Context, id string) (*dbmysql.Message, error)
	LatestMessage(ctx context.Context, conversationID string) (*dbmysql.Message, error)
	UnreadCount(ctx context.Context, conversationID, userID string) (int64, error)
	// MessagesBefore returns up to limit messages strictly older than before
	// (all messages when before is nil), newest first.
	MessagesBefore(ctx context.Context, conversationID string, before *time.Time, limit int) ([]*dbmysql.Message, error)

	// PendingSent lists the receiver's messages still in SENT.
	PendingSent(ctx context.Context, receiverID string) ([]*dbmysql.Message, error)
	// MarkDelivered flips the subset of ids that belong to the receiver and
	// are still SENT, returning the affected rows with their new status.
	MarkDelivered(ctx context.Context, receiverID string, messageIDs []string) ([]*dbmysql.Message, error)
	// MarkRead transitions one message to READ unless it is already there.
	MarkRead(ctx context.Context, messageID string) error
	// MarkConversationRead bulk-reads every message in the conversation
	// addressed to the receiver, returning the number of rows changed.
	MarkConversationRead(ctx context.Context, conversationID, receiverID string) (int64, error)

	UserByID(ctx context.Context, userID string) (*dbmysql.User, error)
	UserInTenant(ctx context.Context, tenantID, userID string) (*dbmysql.User, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) ConversationByID(ctx context.Context, id string) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("conversation %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return &conv, nil
}

func (r *chatRepo) FindByParticipants(ctx context.Context, tenantID, userA, userB string) (*dbmysql.Conversation, error) {
	var conv dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("(participant_a = ? AND participant_b = ?) OR (participant_a = ? AND participant_b = ?)",
			userA, userB, userB, userA).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up conversation pair: %w", err)
	}
	return &conv, nil
}

func (r *chatRepo) CreateConversation(ctx context.Context, conv *dbmysql.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (r *chatRepo) ConversationsFor(ctx context.Context, userID string) ([]*dbmysql.Conversation, error) {
	var convs []*dbmysql.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

func (r *chatRepo) CreateMessage(ctx context.Context, msg *dbmysql.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		err := tx.Model(&dbmysql.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", msg.CreatedAt).Error
		if err != nil {
			return fmt.Errorf("failed to touch conversation: %w", err)
		}
		return nil
	})
}

func (r *chatRepo) MessageByID(ctx context.Context, id string) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load message: %w", err)
	}
	return &msg, nil
}

func (r *chatRepo) LatestMessage(ctx context.Context, conversationID string) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest message: %w", err)
	}
	return &msg, nil
}

func (r *chatRepo) UnreadCount(ctx context.Context, conversationID, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND status <> ?",
			conversationID, userID, dbmysql.StatusRead).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (r *chatRepo) MessagesBefore(ctx context.Context, conversationID string, before *time.Time, limit int) ([]*dbmysql.Message, error) {
	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var msgs []*dbmysql.Message
	if err := query.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to page messages: %w", err)
	}
	return msgs, nil
}

func (r *chatRepo) PendingSent(ctx context.Context, receiverID string) ([]*dbmysql.Message, error) {
	var msgs []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, dbmysql.StatusSent).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}
	return msgs, nil
}

func (r *chatRepo) MarkDelivered(ctx context.Context, receiverID string, messageIDs []string) ([]*dbmysql.Message, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	var affected []*dbmysql.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ids not owned by the receiver or already past SENT fall out of the
		// filter silently; replays and races are tolerated, not errors.
		err := tx.
			Where("id IN ? AND receiver_id = ? AND status = ?",
				messageIDs, receiverID, dbmysql.StatusSent).
			Find(&affected).Error
		if err != nil {
			return err
		}
		if len(affected) == 0 {
			return nil
		}

		ids := make([]string, len(affected))
		for i, msg := range affected {
			ids[i] = msg.ID
		}
		err = tx.Model(&dbmysql.Message{}).
			Where("id IN ? AND status = ?", ids, dbmysql.StatusSent).
			Update("status", dbmysql.StatusDelivered).Error
		if err != nil {
			return err
		}
		for _, msg := range affected {
			msg.Status = dbmysql.StatusDelivered
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark delivered: %w", err)
	}
	return affected, nil
}

func (r *chatRepo) MarkRead(ctx context.Context, messageID string) error {
	err := r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("id = ? AND status <> ?", messageID, dbmysql.StatusRead).
		Update("status", dbmysql.StatusRead).Error
	if err != nil {
		return fmt.Errorf("failed to mark read: %w", err)
	}
	return nil
}

func (r *chatRepo) MarkConversationRead(ctx context.Context, conversationID, receiverID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&dbmysql.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND status <> ?",
			conversationID, receiverID, dbmysql.StatusRead).
		Update("status", dbmysql.StatusRead)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark conversation read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *chatRepo) UserByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("user_id = ? AND status = ?", userID, "active").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (r *chatRepo) UserInTenant(ctx context.Context, tenantID, userID string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ? AND status = ?", userID, tenantID, "active").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
