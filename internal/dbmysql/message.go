package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

type MessageStatus string

const (
	StatusSent      MessageStatus = "SENT"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusRead      MessageStatus = "READ"
)

var statusRank = map[MessageStatus]int{
	StatusSent:      0,
	StatusDelivered: 1,
	StatusRead:      2,
}

// Before reports whether s comes strictly before other in the
// SENT → DELIVERED → READ progression. Transitions to a state at or before
// the current one are no-ops, never errors.
func (s MessageStatus) Before(other MessageStatus) bool {
	return statusRank[s] < statusRank[other]
}

type MessageKind string

const (
	KindText  MessageKind = "TEXT"
	KindImage MessageKind = "IMAGE"
	KindFile  MessageKind = "FILE"
)

// Message is immutable after creation except for Status.
type Message struct {
	ID             string        `gorm:"primaryKey;size:36"`
	ConversationID string        `gorm:"index;size:36"`
	SenderID       string        `gorm:"index;size:36"`
	ReceiverID     string        `gorm:"index;size:36"`
	Content        string        `gorm:"type:text"`
	Kind           MessageKind   `gorm:"size:16"`
	Status         MessageStatus `gorm:"size:16;index"`
	CreatedAt      time.Time     `gorm:"index"`
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
