package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"campuslink/internal/common"
	"campuslink/internal/transport/service"
)

const defaultHistoryLimit = 500

// TransportHandler exposes the read side of the location channel: parent
// apps poll these endpoints when no live connection is up.
type TransportHandler struct {
	transportService service.TransportService
}

func NewTransportHandler(transportService service.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// LatestLocation handles GET /transport/buses/{busID}/location
func (h *TransportHandler) LatestLocation(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	busID := mux.Vars(r)["busID"]
	payload, err := h.transportService.LatestLocation(r.Context(), *identity, busID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// LocationHistory handles GET /transport/buses/{busID}/locations
func (h *TransportHandler) LocationHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid since", common.ErrBadRequest))
			return
		}
		since = parsed
	}

	limit := int64(defaultHistoryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, fmt.Errorf("%w: invalid limit", common.ErrBadRequest))
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	busID := mux.Vars(r)["busID"]
	samples, err := h.transportService.LocationHistory(r.Context(), *identity, busID, since, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, samples)
}
