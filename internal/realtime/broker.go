package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Subscriber is a room member able to receive published frames.
type Subscriber interface {
	SessionID() string
	Send(payload []byte) error
}

// RoomBroker is the sole fan-out primitive of the gateway. One process-wide
// instance is created at startup and handed to every channel handler.
type RoomBroker interface {
	Attach(sub Subscriber)
	Detach(sessionID string)
	Join(sessionID, room string)
	Leave(sessionID, room string)
	// Publish delivers {event, data} to every currently-connected member of
	// the room. Fire-and-forget: no ack, no retry, no persistence of the
	// event itself. Returns the number of members that accepted the frame.
	Publish(room, event string, data interface{}) int
}

type serverFrame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub is the in-memory RoomBroker.
type Hub struct {
	mu           sync.RWMutex
	sessions     map[string]Subscriber
	rooms        map[string]map[string]Subscriber
	sessionRooms map[string]map[string]struct{}
	logger       zerolog.Logger
}

// NewHub constructs an initialized Hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions:     make(map[string]Subscriber),
		rooms:        make(map[string]map[string]Subscriber),
		sessionRooms: make(map[string]map[string]struct{}),
		logger:       logger,
	}
}

// Attach registers a subscriber so it can join rooms.
func (h *Hub) Attach(sub Subscriber) {
	h.mu.Lock()
	h.sessions[sub.SessionID()] = sub
	h.sessionRooms[sub.SessionID()] = make(map[string]struct{})
	h.mu.Unlock()
}

// Detach removes a subscriber and clears all of its room memberships.
func (h *Hub) Detach(sessionID string) {
	h.mu.Lock()
	if _, ok := h.sessions[sessionID]; ok {
		for room := range h.sessionRooms[sessionID] {
			h.leaveLocked(room, sessionID)
		}
		delete(h.sessionRooms, sessionID)
		delete(h.sessions, sessionID)
	}
	h.mu.Unlock()
}

// Join adds the session to the room. Unknown sessions are ignored.
func (h *Hub) Join(sessionID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	members := h.rooms[room]
	if members == nil {
		members = make(map[string]Subscriber)
		h.rooms[room] = members
	}
	members[sessionID] = sub
	h.sessionRooms[sessionID][room] = struct{}{}
}

// Leave removes the session from the room. Idempotent.
func (h *Hub) Leave(sessionID, room string) {
	h.mu.Lock()
	h.leaveLocked(room, sessionID)
	h.mu.Unlock()
}

// Publish delivers the frame to every member of the room once.
func (h *Hub) Publish(room, event string, data interface{}) int {
	payload, err := json.Marshal(serverFrame{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("publish payload not serializable")
		return 0
	}

	h.mu.RLock()
	members := make([]Subscriber, 0, len(h.rooms[room]))
	for _, sub := range h.rooms[room] {
		members = append(members, sub)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, sub := range members {
		if err := sub.Send(payload); err != nil {
			h.logger.Debug().Err(err).Str("room", room).Str("event", event).Msg("dropped frame for slow or closed session")
			continue
		}
		delivered++
	}
	return delivered
}

// RoomSize reports the current member count, mainly for tests and metrics.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) leaveLocked(room, sessionID string) {
	members := h.rooms[room]
	if members == nil {
		return
	}
	delete(members, sessionID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	if memberships, ok := h.sessionRooms[sessionID]; ok {
		delete(memberships, room)
	}
}
