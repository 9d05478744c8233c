package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"campuslink/internal/common"
	"campuslink/internal/dbmongo"
	"campuslink/internal/dbmysql"
	"campuslink/internal/realtime"
	"campuslink/internal/transport/repository"
)

// FlexFloat accepts a JSON number or a numeric string. Driver devices send
// coordinates both ways.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	// An empty quoted string falls through to ParseFloat and fails there,
	// same as any other non-numeric payload.
	b = bytes.Trim(b, `"`)
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// LocationUpdate is one inbound telemetry sample.
type LocationUpdate struct {
	BusID    string     `json:"busId"`
	Lat      FlexFloat  `json:"lat"`
	Lng      FlexFloat  `json:"lng"`
	Speed    *FlexFloat `json:"speed"`
	Heading  *FlexFloat `json:"heading"`
	Accuracy *FlexFloat `json:"accuracy"`
}

// LocationBroadcast is the bus:location:receive payload.
type LocationBroadcast struct {
	BusID     string    `json:"busId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Speed     *float64  `json:"speed"`
	Heading   *float64  `json:"heading"`
	Timestamp time.Time `json:"timestamp"`
}

// TransportService is the location channel's core: authorize, deduplicate,
// persist, fan out.
type TransportService interface {
	// IngestLocation applies the silent-drop policy of a best-effort
	// telemetry stream: authorization and dedup violations report
	// accepted=false with a nil error.
	IngestLocation(ctx context.Context, caller common.Identity, upd LocationUpdate) (bool, error)
	// LatestLocation returns the most recent sample for a bus in the
	// caller's tenant. Buses outside the tenant read as not found.
	LatestLocation(ctx context.Context, caller common.Identity, busID string) (*LocationBroadcast, error)
	// LocationHistory returns samples recorded at or after since, oldest
	// first.
	LocationHistory(ctx context.Context, caller common.Identity, busID string, since time.Time, limit int64) ([]*LocationBroadcast, error)
}

type transportService struct {
	repo        repository.TransportRepository
	broker      realtime.RoomBroker
	minInterval time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

func NewTransportService(repo repository.TransportRepository, broker realtime.RoomBroker, minInterval time.Duration, logger zerolog.Logger) TransportService {
	return &transportService{
		repo:        repo,
		broker:      broker,
		minInterval: minInterval,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *transportService) IngestLocation(ctx context.Context, caller common.Identity, upd LocationUpdate) (bool, error) {
	if upd.BusID == "" {
		return false, nil
	}
	if !caller.Role.CanPublishLocation() {
		s.logger.Debug().Str("user", caller.ID).Str("role", string(caller.Role)).Msg("location update from unauthorized role dropped")
		return false, nil
	}

	bus, err := s.repo.BusByID(ctx, upd.BusID)
	if err != nil {
		// Unknown bus is part of the silent-drop policy, not a caller error.
		s.logger.Debug().Err(err).Str("bus", upd.BusID).Msg("location update for unknown bus dropped")
		return false, nil
	}
	if bus.TenantID != caller.TenantID {
		s.logger.Debug().Str("bus", upd.BusID).Str("tenant", caller.TenantID).Msg("cross-tenant location update dropped")
		return false, nil
	}

	// Coarse dedup: read-then-write with no lock. Concurrent ingestion for
	// one bus can slip through the window, so the interval is best effort.
	latest, err := s.repo.LatestLocation(ctx, upd.BusID)
	if err != nil {
		return false, err
	}
	recordedAt := s.now().UTC()
	if latest != nil && recordedAt.Sub(latest.RecordedAt) < s.minInterval {
		return false, nil
	}

	sample := &dbmongo.BusLocation{
		ID:         uuid.NewString(),
		BusID:      bus.ID,
		TenantID:   bus.TenantID,
		Latitude:   float64(upd.Lat),
		Longitude:  float64(upd.Lng),
		Speed:      floatPtr(upd.Speed),
		Heading:    floatPtr(upd.Heading),
		Accuracy:   floatPtr(upd.Accuracy),
		RecordedAt: recordedAt,
	}

	trip, err := s.repo.ActiveTrip(ctx, bus.ID)
	if err != nil {
		return false, err
	}
	if trip != nil {
		sample.TripID = &trip.ID
	}

	if err := s.repo.SaveLocation(ctx, sample); err != nil {
		return false, err
	}

	payload := broadcastOf(sample)
	s.broker.Publish(realtime.VehicleRoom(bus.ID), realtime.EventBusLocationReceive, payload)
	s.broker.Publish(realtime.TenantTransportRoom(bus.TenantID), realtime.EventBusLocationReceive, payload)

	return true, nil
}

func (s *transportService) LatestLocation(ctx context.Context, caller common.Identity, busID string) (*LocationBroadcast, error) {
	if _, err := s.tenantBus(ctx, caller, busID); err != nil {
		return nil, err
	}

	sample, err := s.repo.LatestLocation(ctx, busID)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, fmt.Errorf("%w: no location recorded for bus %s", common.ErrNotFound, busID)
	}

	payload := broadcastOf(sample)
	return &payload, nil
}

func (s *transportService) LocationHistory(ctx context.Context, caller common.Identity, busID string, since time.Time, limit int64) ([]*LocationBroadcast, error) {
	if _, err := s.tenantBus(ctx, caller, busID); err != nil {
		return nil, err
	}

	samples, err := s.repo.LocationHistory(ctx, busID, since, limit)
	if err != nil {
		return nil, err
	}

	out := make([]*LocationBroadcast, len(samples))
	for i, sample := range samples {
		payload := broadcastOf(sample)
		out[i] = &payload
	}
	return out, nil
}

// tenantBus loads the bus and folds cross-tenant access into not-found, so
// one tenant cannot enumerate another's fleet.
func (s *transportService) tenantBus(ctx context.Context, caller common.Identity, busID string) (*dbmysql.Bus, error) {
	if busID == "" {
		return nil, fmt.Errorf("%w: bus id is required", common.ErrValidation)
	}
	bus, err := s.repo.BusByID(ctx, busID)
	if err != nil {
		return nil, err
	}
	if bus.TenantID != caller.TenantID {
		return nil, fmt.Errorf("%w: bus %s", common.ErrNotFound, busID)
	}
	return bus, nil
}

func broadcastOf(sample *dbmongo.BusLocation) LocationBroadcast {
	return LocationBroadcast{
		BusID:     sample.BusID,
		Lat:       sample.Latitude,
		Lng:       sample.Longitude,
		Speed:     sample.Speed,
		Heading:   sample.Heading,
		Timestamp: sample.RecordedAt,
	}
}

func floatPtr(f *FlexFloat) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}
