package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"campuslink/internal/common"
)

// HandshakeGuard rate-limits connection attempts ahead of the core.
type HandshakeGuard interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Gateway upgrades HTTP requests to authenticated, room-scoped sessions.
// The handshake is the single authorization checkpoint for the messaging
// channel; no per-message re-auth happens after it.
type Gateway struct {
	broker   RoomBroker
	verifier common.TokenVerifier
	dispatch *Dispatcher
	guard    HandshakeGuard
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewGateway(broker RoomBroker, verifier common.TokenVerifier, dispatch *Dispatcher, guard HandshakeGuard, logger zerolog.Logger) *Gateway {
	return &Gateway{
		broker:   broker,
		verifier: verifier,
		dispatch: dispatch,
		guard:    guard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Authorize resolves and vets the connecting identity. It rejects missing or
// invalid credentials, unknown users, and the STUDENT role, all before any
// room is joined.
func (g *Gateway) Authorize(r *http.Request) (*common.Identity, error) {
	credential := bearerToken(r)
	identity, err := g.verifier.Verify(r.Context(), credential)
	if err != nil {
		return nil, err
	}
	if !identity.Role.CanUseMessaging() {
		return nil, fmt.Errorf("%w: role %s may not connect", common.ErrForbidden, identity.Role)
	}
	return identity, nil
}

// ServeWS handles the websocket handshake and runs the session until the
// client disconnects.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	identity, err := g.Authorize(r)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, common.ErrForbidden) {
			status = http.StatusForbidden
		}
		g.logger.Info().Err(err).Msg("handshake rejected")
		http.Error(w, http.StatusText(status), status)
		return
	}

	if g.guard != nil {
		allowed, err := g.guard.Allow(r.Context(), "ws:"+identity.ID)
		if err != nil {
			g.logger.Warn().Err(err).Msg("handshake guard unavailable, letting connection through")
		} else if !allowed {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
	}

	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := NewSession(*identity, ws)
	g.broker.Attach(sess)
	g.broker.Join(sess.ID, UserRoom(identity.ID))
	g.broker.Join(sess.ID, TenantRoom(identity.TenantID))
	sess.Start()

	g.logger.Info().Str("user", identity.ID).Str("tenant", identity.TenantID).Str("session", sess.ID).Msg("session established")

	go func() {
		g.dispatch.RunConnectHooks(context.Background(), sess)
	}()

	go g.readPump(sess)
}

func (g *Gateway) readPump(sess *Session) {
	defer func() {
		g.broker.Detach(sess.ID)
		sess.Close(websocket.CloseNormalClosure, "bye")
		g.logger.Info().Str("user", sess.Identity.ID).Str("session", sess.ID).Msg("session closed")
	}()

	sess.ws.SetReadLimit(readLimit)
	_ = sess.ws.SetReadDeadline(time.Now().Add(pongWait))
	sess.ws.SetPongHandler(func(string) error {
		return sess.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := sess.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Debug().Err(err).Str("session", sess.ID).Msg("read error")
			}
			return
		}
		g.dispatch.Dispatch(context.Background(), sess, raw)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth != "" {
		parts := strings.Fields(auth)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	// Browser websocket clients cannot set headers; accept ?token= as the
	// out-of-band credential channel.
	return r.URL.Query().Get("token")
}
