// Package handler wires the location channel onto the connection gateway.
package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"campuslink/internal/common"
	"campuslink/internal/realtime"
	"campuslink/internal/transport/service"
)

type TransportHandler struct {
	transportService service.TransportService
	broker           realtime.RoomBroker
	logger           zerolog.Logger
}

func NewTransportHandler(transportService service.TransportService, broker realtime.RoomBroker, logger zerolog.Logger) *TransportHandler {
	return &TransportHandler{transportService: transportService, broker: broker, logger: logger}
}

func (h *TransportHandler) Register(d *realtime.Dispatcher) {
	d.Handle(realtime.EventBusSubscribe, h.handleSubscribe)
	d.Handle(realtime.EventBusUnsubscribe, h.handleUnsubscribe)
	d.Handle(realtime.EventTransportSubscribe, h.handleTenantSubscribe)
	d.Handle(realtime.EventBusLocationUpdate, h.handleLocationUpdate)
}

type busRef struct {
	BusID string `json:"busId"`
}

// handleSubscribe joins the vehicle room. Any connected non-student may
// watch any vehicle; there is deliberately no tenant-ownership check here,
// matching the deployed clients' expectations.
func (h *TransportHandler) handleSubscribe(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var req busRef
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if req.BusID == "" {
		return nil, fmt.Errorf("%w: bus id is required", common.ErrValidation)
	}

	h.broker.Join(sess.ID, realtime.VehicleRoom(req.BusID))
	return map[string]bool{"subscribed": true}, nil
}

func (h *TransportHandler) handleUnsubscribe(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var req busRef
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if req.BusID == "" {
		return nil, fmt.Errorf("%w: bus id is required", common.ErrValidation)
	}

	h.broker.Leave(sess.ID, realtime.VehicleRoom(req.BusID))
	return map[string]bool{"subscribed": false}, nil
}

// handleTenantSubscribe joins the tenant-wide transport room, gated to
// admin and staff roles. Violations drop silently.
func (h *TransportHandler) handleTenantSubscribe(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	if !sess.Identity.Role.CanSubscribeTenantTransport() {
		h.logger.Debug().Str("user", sess.Identity.ID).Str("role", string(sess.Identity.Role)).Msg("tenant transport subscribe dropped")
		return nil, nil
	}

	h.broker.Join(sess.ID, realtime.TenantTransportRoom(sess.Identity.TenantID))
	return map[string]bool{"subscribed": true}, nil
}

func (h *TransportHandler) handleLocationUpdate(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var upd service.LocationUpdate
	if err := json.Unmarshal(data, &upd); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	accepted, err := h.transportService.IngestLocation(ctx, sess.Identity, upd)
	if err != nil {
		// Store failures are logged by the dispatcher; the driver device
		// never sees an error for a dropped sample.
		return nil, err
	}
	return map[string]bool{"accepted": accepted}, nil
}
