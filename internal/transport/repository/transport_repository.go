package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campuslink/internal/common"
	"campuslink/internal/dbmongo"
	"campuslink/internal/dbmysql"
)

// TransportRepository spans both stores: buses and trips live in MySQL,
// location samples in MongoDB.
type TransportRepository interface {
	BusByID(ctx context.Context, busID string) (*dbmysql.Bus, error)
	// ActiveTrip returns the bus's IN_PROGRESS trip, or nil when none is open.
	ActiveTrip(ctx context.Context, busID string) (*dbmysql.BusTrip, error)
	LatestLocation(ctx context.Context, busID string) (*dbmongo.BusLocation, error)
	// LocationHistory returns samples recorded at or after since, oldest
	// first, capped at limit when limit is positive.
	LocationHistory(ctx context.Context, busID string, since time.Time, limit int64) ([]*dbmongo.BusLocation, error)
	SaveLocation(ctx context.Context, sample *dbmongo.BusLocation) error
}

type transportRepo struct {
	db        *gorm.DB
	locations *dbmongo.LocationStorage
}

func NewTransportRepository(db *gorm.DB, locations *dbmongo.LocationStorage) TransportRepository {
	return &transportRepo{db: db, locations: locations}
}

func (r *transportRepo) BusByID(ctx context.Context, busID string) (*dbmysql.Bus, error) {
	var bus dbmysql.Bus
	err := r.db.WithContext(ctx).Where("id = ?", busID).First(&bus).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("bus %s: %w", busID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bus: %w", err)
	}
	return &bus, nil
}

func (r *transportRepo) ActiveTrip(ctx context.Context, busID string) (*dbmysql.BusTrip, error) {
	var trip dbmysql.BusTrip
	err := r.db.WithContext(ctx).
		Where("bus_id = ? AND status = ?", busID, dbmysql.TripInProgress).
		Order("started_at DESC").
		First(&trip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active trip: %w", err)
	}
	return &trip, nil
}

func (r *transportRepo) LatestLocation(ctx context.Context, busID string) (*dbmongo.BusLocation, error) {
	return r.locations.Latest(ctx, busID)
}

func (r *transportRepo) LocationHistory(ctx context.Context, busID string, since time.Time, limit int64) ([]*dbmongo.BusLocation, error) {
	return r.locations.History(ctx, busID, since, limit)
}

func (r *transportRepo) SaveLocation(ctx context.Context, sample *dbmongo.BusLocation) error {
	return r.locations.Insert(ctx, sample)
}
