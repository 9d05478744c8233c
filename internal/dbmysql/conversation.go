package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is exactly one direct channel between two staff members of a
// tenant. At most one non-deleted row exists per unordered participant pair;
// lookups must check both orderings since the pair is not canonically sorted.
type Conversation struct {
	ID            string    `gorm:"primaryKey;size:36"`
	TenantID      string    `gorm:"index;size:36"`
	ParticipantA  string    `gorm:"index;size:36"`
	ParticipantB  string    `gorm:"index;size:36"`
	LastMessageAt time.Time `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// Other returns the participant that is not userID. The second return is
// false when userID is not a participant at all.
func (c *Conversation) Other(userID string) (string, bool) {
	switch userID {
	case c.ParticipantA:
		return c.ParticipantB, true
	case c.ParticipantB:
		return c.ParticipantA, true
	}
	return "", false
}
