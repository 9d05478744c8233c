package dbmysql

import (
	"time"

	"gorm.io/gorm"
)

// Bus is a tenant-owned vehicle tracked by the location channel.
type Bus struct {
	ID          string `gorm:"primaryKey;size:36"`
	TenantID    string `gorm:"index;size:36"`
	PlateNumber string `gorm:"size:32"`
	Name        string `gorm:"size:120"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type TripStatus string

const (
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
	TripCancelled  TripStatus = "CANCELLED"
)

// BusTrip is an open/closed tracking session for a bus. Location samples
// recorded while a trip is IN_PROGRESS are attached to it.
type BusTrip struct {
	ID        string     `gorm:"primaryKey;size:36"`
	BusID     string     `gorm:"index;size:36"`
	TenantID  string     `gorm:"index;size:36"`
	Status    TripStatus `gorm:"size:16;index"`
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
