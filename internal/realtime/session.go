package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"campuslink/internal/common"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	readLimit  = 1 << 16
)

// Session wraps an authenticated websocket and coordinates outbound writes
// via a buffered channel. Safe for concurrent use.
type Session struct {
	ID       string
	Identity common.Identity

	ws    *websocket.Conn
	send  chan []byte
	once  sync.Once
	close chan struct{}
}

// NewSession constructs a Session for the resolved identity.
func NewSession(identity common.Identity, ws *websocket.Conn) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Identity: identity,
		ws:       ws,
		send:     make(chan []byte, 128),
		close:    make(chan struct{}),
	}
}

// SessionID implements Subscriber.
func (s *Session) SessionID() string { return s.ID }

// Start launches the write loop. It must be called exactly once per session.
func (s *Session) Start() {
	go s.writeLoop()
}

// Send enqueues payload for delivery. If the client is slow and the buffer
// is full, the session is closed to keep backpressure bounded.
func (s *Session) Send(payload []byte) error {
	select {
	case <-s.close:
		return errors.New("session closed")
	case s.send <- payload:
		return nil
	default:
		s.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.New("session buffer exceeded")
	}
}

// SendEvent marshals a server frame and enqueues it.
func (s *Session) SendEvent(event string, data interface{}) error {
	payload, err := json.Marshal(serverFrame{Event: event, Data: data})
	if err != nil {
		return err
	}
	return s.Send(payload)
}

// TryReceive pops one queued outbound frame without blocking. Mainly for
// tests exercising the dispatch path without a live socket.
func (s *Session) TryReceive() ([]byte, bool) {
	select {
	case payload := <-s.send:
		return payload, true
	default:
		return nil, false
	}
}

// Close terminates the session and stops the write loop.
func (s *Session) Close(code int, reason string) {
	s.once.Do(func() {
		close(s.close)
		_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = s.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = s.ws.Close()
	})
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.close:
			return
		case msg := <-s.send:
			if err := s.writeMessage(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.writePing(); err != nil {
				return
			}
		}
	}
}

func (s *Session) writeMessage(payload []byte) error {
	if err := s.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.ws.WriteMessage(websocket.TextMessage, payload)
}

func (s *Session) writePing() error {
	if err := s.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.ws.WriteMessage(websocket.PingMessage, nil)
}
