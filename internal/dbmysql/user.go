package dbmysql

import (
	"time"
)

// User is a staff-directory row. Accounts are provisioned by the platform's
// admin modules; this core only reads them for participant and tenant checks.
type User struct {
	UserID    string `gorm:"primaryKey;size:36"`
	TenantID  string `gorm:"index;size:36"`
	Name      string `gorm:"size:120"`
	Email     string `gorm:"size:190;index"`
	Role      string `gorm:"size:32"`
	Status    string `gorm:"size:16;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
