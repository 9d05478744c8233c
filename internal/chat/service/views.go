package service

import (
	"time"

	"campuslink/internal/dbmysql"
)

// MessageView is the wire shape of a message, shared by the push events and
// the synchronous mirror.
type MessageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Content        string    `json:"content"`
	Kind           string    `json:"type"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func viewOf(msg *dbmysql.Message) *MessageView {
	return &MessageView{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     msg.ReceiverID,
		Content:        msg.Content,
		Kind:           string(msg.Kind),
		Status:         string(msg.Status),
		CreatedAt:      msg.CreatedAt,
	}
}

type ParticipantView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type ConversationSummary struct {
	ID               string           `json:"id"`
	OtherParticipant *ParticipantView `json:"otherParticipant"`
	LastMessage      *MessageView     `json:"lastMessage,omitempty"`
	UnreadCount      int64            `json:"unreadCount"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type MessagePage struct {
	Data       []*MessageView `json:"data"`
	NextCursor *time.Time     `json:"nextCursor"`
}

// PushResult separates durability from fan-out: a mutation can succeed while
// its best-effort notification reaches nobody.
type PushResult struct {
	Persisted bool
	Notified  bool
}

// Notification payloads. Shapes are part of the wire contract.
type StatusUpdatePayload struct {
	MessageIDs []string `json:"messageIds"`
	Status     string   `json:"status"`
}

type ReadReceiptPayload struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	Status         string `json:"status"`
}

type ConversationReadPayload struct {
	ConversationID string `json:"conversationId"`
	ReceiverID     string `json:"receiverId"`
}
