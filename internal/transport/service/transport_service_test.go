package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campuslink/internal/common"
	"campuslink/internal/dbmongo"
	"campuslink/internal/dbmysql"
	"campuslink/internal/realtime"
	rtmocks "campuslink/internal/realtime/mocks"
	repomocks "campuslink/internal/transport/repository/mocks"
)

var testNow = time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

func newTestTransport(t *testing.T) (*transportService, *repomocks.MockTransportRepository, *rtmocks.MockRoomBroker) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockTransportRepository(ctrl)
	broker := rtmocks.NewMockRoomBroker(ctrl)
	svc := &transportService{
		repo:        repo,
		broker:      broker,
		minInterval: 5 * time.Second,
		now:         func() time.Time { return testNow },
		logger:      zerolog.Nop(),
	}
	return svc, repo, broker
}

func driver() common.Identity {
	return common.Identity{ID: "driver-1", TenantID: "tenant-1", Role: common.RoleStaff}
}

func bus1() *dbmysql.Bus {
	return &dbmysql.Bus{ID: "bus-1", TenantID: "tenant-1", PlateNumber: "KA-01"}
}

func TestTransportService_IngestLocation(t *testing.T) {
	upd := LocationUpdate{BusID: "bus-1", Lat: 12.9, Lng: 77.6}

	tests := []struct {
		name      string
		caller    common.Identity
		upd       LocationUpdate
		mockSetup func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker)
		accepted  bool
	}{
		{
			name:   "fresh sample is stored and fanned out",
			caller: driver(),
			upd:    upd,
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
				repo.EXPECT().LatestLocation(gomock.Any(), "bus-1").Return(nil, nil)
				repo.EXPECT().ActiveTrip(gomock.Any(), "bus-1").Return(nil, nil)
				repo.EXPECT().SaveLocation(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, sample *dbmongo.BusLocation) error {
						assert.Equal(t, 12.9, sample.Latitude)
						assert.Equal(t, testNow, sample.RecordedAt)
						assert.Nil(t, sample.TripID)
						return nil
					})
				broker.EXPECT().Publish(realtime.VehicleRoom("bus-1"), realtime.EventBusLocationReceive, gomock.Any()).Return(2)
				broker.EXPECT().Publish(realtime.TenantTransportRoom("tenant-1"), realtime.EventBusLocationReceive, gomock.Any()).Return(1)
			},
			accepted: true,
		},
		{
			name:   "sample inside the dedup window is dropped",
			caller: driver(),
			upd:    upd,
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
				repo.EXPECT().LatestLocation(gomock.Any(), "bus-1").Return(&dbmongo.BusLocation{
					BusID:      "bus-1",
					RecordedAt: testNow.Add(-2 * time.Second),
				}, nil)
			},
		},
		{
			name:   "sample past the dedup window is accepted",
			caller: driver(),
			upd:    upd,
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
				repo.EXPECT().LatestLocation(gomock.Any(), "bus-1").Return(&dbmongo.BusLocation{
					BusID:      "bus-1",
					RecordedAt: testNow.Add(-6 * time.Second),
				}, nil)
				repo.EXPECT().ActiveTrip(gomock.Any(), "bus-1").Return(nil, nil)
				repo.EXPECT().SaveLocation(gomock.Any(), gomock.Any()).Return(nil)
				broker.EXPECT().Publish(gomock.Any(), realtime.EventBusLocationReceive, gomock.Any()).Return(0).Times(2)
			},
			accepted: true,
		},
		{
			name:      "parent role cannot publish",
			caller:    common.Identity{ID: "parent-1", TenantID: "tenant-1", Role: common.RoleParent},
			upd:       upd,
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {},
		},
		{
			name:   "cross-tenant bus is dropped",
			caller: driver(),
			upd:    upd,
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(&dbmysql.Bus{ID: "bus-1", TenantID: "tenant-2"}, nil)
			},
		},
		{
			name:   "unknown bus is dropped",
			caller: driver(),
			upd:    upd,
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {
				repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(nil, common.ErrNotFound)
			},
		},
		{
			name:      "missing bus id is dropped",
			caller:    driver(),
			upd:       LocationUpdate{Lat: 12.9, Lng: 77.6},
			mockSetup: func(repo *repomocks.MockTransportRepository, broker *rtmocks.MockRoomBroker) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, broker := newTestTransport(t)
			tt.mockSetup(repo, broker)

			accepted, err := svc.IngestLocation(context.Background(), tt.caller, tt.upd)
			assert.NoError(t, err)
			assert.Equal(t, tt.accepted, accepted)
		})
	}
}

func TestTransportService_IngestLocation_AttachesActiveTrip(t *testing.T) {
	svc, repo, broker := newTestTransport(t)

	speed := FlexFloat(42.5)
	repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
	repo.EXPECT().LatestLocation(gomock.Any(), "bus-1").Return(nil, nil)
	repo.EXPECT().ActiveTrip(gomock.Any(), "bus-1").Return(&dbmysql.BusTrip{ID: "trip-7", BusID: "bus-1", Status: dbmysql.TripInProgress}, nil)
	repo.EXPECT().SaveLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, sample *dbmongo.BusLocation) error {
			if assert.NotNil(t, sample.TripID) {
				assert.Equal(t, "trip-7", *sample.TripID)
			}
			if assert.NotNil(t, sample.Speed) {
				assert.Equal(t, 42.5, *sample.Speed)
			}
			return nil
		})
	broker.EXPECT().Publish(gomock.Any(), realtime.EventBusLocationReceive, gomock.Any()).Return(1).Times(2)

	accepted, err := svc.IngestLocation(context.Background(), driver(), LocationUpdate{
		BusID: "bus-1",
		Lat:   12.9,
		Lng:   77.6,
		Speed: &speed,
	})
	assert.NoError(t, err)
	assert.True(t, accepted)
}

func TestTransportService_LatestLocation(t *testing.T) {
	t.Run("returns the newest sample", func(t *testing.T) {
		svc, repo, _ := newTestTransport(t)

		repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
		repo.EXPECT().LatestLocation(gomock.Any(), "bus-1").Return(&dbmongo.BusLocation{
			BusID:      "bus-1",
			Latitude:   12.9,
			Longitude:  77.6,
			RecordedAt: testNow,
		}, nil)

		payload, err := svc.LatestLocation(context.Background(), driver(), "bus-1")
		assert.NoError(t, err)
		assert.Equal(t, "bus-1", payload.BusID)
		assert.Equal(t, 12.9, payload.Lat)
		assert.Equal(t, testNow, payload.Timestamp)
	})

	t.Run("no samples yet reads as not found", func(t *testing.T) {
		svc, repo, _ := newTestTransport(t)

		repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
		repo.EXPECT().LatestLocation(gomock.Any(), "bus-1").Return(nil, nil)

		_, err := svc.LatestLocation(context.Background(), driver(), "bus-1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("cross-tenant bus reads as not found", func(t *testing.T) {
		svc, repo, _ := newTestTransport(t)

		repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(&dbmysql.Bus{ID: "bus-1", TenantID: "tenant-2"}, nil)

		_, err := svc.LatestLocation(context.Background(), driver(), "bus-1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestTransportService_LocationHistory(t *testing.T) {
	svc, repo, _ := newTestTransport(t)

	since := testNow.Add(-time.Hour)
	repo.EXPECT().BusByID(gomock.Any(), "bus-1").Return(bus1(), nil)
	repo.EXPECT().LocationHistory(gomock.Any(), "bus-1", since, int64(100)).Return([]*dbmongo.BusLocation{
		{BusID: "bus-1", Latitude: 12.8, RecordedAt: testNow.Add(-30 * time.Minute)},
		{BusID: "bus-1", Latitude: 12.9, RecordedAt: testNow},
	}, nil)

	samples, err := svc.LocationHistory(context.Background(), driver(), "bus-1", since, 100)
	assert.NoError(t, err)
	assert.Len(t, samples, 2)
	assert.Equal(t, 12.8, samples[0].Lat)
	assert.Equal(t, 12.9, samples[1].Lat)
}

func TestFlexFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectLat float64
		expectErr bool
	}{
		{name: "number", input: `{"lat": 12.9716, "lng": 77.5946}`, expectLat: 12.9716},
		{name: "numeric string", input: `{"lat": "12.9716", "lng": "77.5946"}`, expectLat: 12.9716},
		{name: "null collapses to zero", input: `{"lat": null, "lng": 77.5946}`, expectLat: 0},
		{name: "garbage string", input: `{"lat": "north", "lng": 77.5946}`, expectErr: true},
		{name: "empty string is rejected", input: `{"lat": "", "lng": 77.5946}`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var upd LocationUpdate
			err := json.Unmarshal([]byte(tt.input), &upd)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectLat, float64(upd.Lat))
		})
	}
}
