package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Envelope is one inbound client frame. AckID, when present, asks for an
// ack frame carrying the handler's result.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	AckID string          `json:"ackId,omitempty"`
}

type ackFrame struct {
	Event   string      `json:"event"`
	AckID   string      `json:"ackId"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HandlerFunc processes one inbound event. The returned value is echoed in
// the ack frame when the client asked for one; errors are logged, surfaced
// only through the ack, and never terminate the connection.
type HandlerFunc func(ctx context.Context, sess *Session, data json.RawMessage) (interface{}, error)

// ConnectHook runs once per session right after the handshake completes.
type ConnectHook func(ctx context.Context, sess *Session)

// Dispatcher routes inbound envelopes through a handler table keyed by
// event name.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	hooks    []ConnectHook
	logger   zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Handle registers the handler for an event name. Registration happens at
// startup, before any connection is accepted.
func (d *Dispatcher) Handle(event string, fn HandlerFunc) {
	d.handlers[event] = fn
}

// OnConnect registers a hook run for every new session.
func (d *Dispatcher) OnConnect(hook ConnectHook) {
	d.hooks = append(d.hooks, hook)
}

// Dispatch parses and runs one inbound frame. Handler panics and errors are
// contained; the session always survives.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.logger.Debug().Err(err).Str("session", sess.ID).Msg("dropping malformed frame")
		return
	}

	fn, ok := d.handlers[env.Event]
	if !ok {
		d.logger.Debug().Str("event", env.Event).Str("session", sess.ID).Msg("dropping unknown event")
		return
	}

	result, err := d.run(ctx, fn, sess, env.Data)
	if env.AckID == "" {
		if err != nil {
			d.logger.Warn().Err(err).Str("event", env.Event).Str("user", sess.Identity.ID).Msg("event handler failed")
		}
		return
	}

	ack := ackFrame{Event: eventAck, AckID: env.AckID, Success: err == nil, Data: result}
	if err != nil {
		ack.Error = err.Error()
		d.logger.Warn().Err(err).Str("event", env.Event).Str("user", sess.Identity.ID).Msg("event handler failed")
	}
	if payload, merr := json.Marshal(ack); merr == nil {
		_ = sess.Send(payload)
	}
}

// RunConnectHooks executes every registered hook for a fresh session.
func (d *Dispatcher) RunConnectHooks(ctx context.Context, sess *Session) {
	for _, hook := range d.hooks {
		func() {
			defer d.recover(sess, "connect hook")
			hook(ctx, sess)
		}()
	}
}

func (d *Dispatcher) run(ctx context.Context, fn HandlerFunc, sess *Session, data json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Str("session", sess.ID).Msg("event handler panicked")
			err = fmt.Errorf("internal error")
		}
	}()
	return fn(ctx, sess, data)
}

func (d *Dispatcher) recover(sess *Session, where string) {
	if r := recover(); r != nil {
		d.logger.Error().Interface("panic", r).Str("session", sess.ID).Msgf("%s panicked", where)
	}
}
