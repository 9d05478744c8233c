// Package handler wires the messaging channel onto the connection gateway.
package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"campuslink/internal/chat/service"
	"campuslink/internal/common"
	"campuslink/internal/realtime"
)

type ChatHandler struct {
	chatService service.ChatService
	logger      zerolog.Logger
}

func NewChatHandler(chatService service.ChatService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// Register installs the chat event handlers and the connect-time delivery
// sweep on the dispatcher.
func (h *ChatHandler) Register(d *realtime.Dispatcher) {
	d.Handle(realtime.EventChatSend, h.handleSend)
	d.Handle(realtime.EventChatMarkDelivered, h.handleMarkDelivered)
	d.Handle(realtime.EventChatMarkConversationRead, h.handleMarkConversationRead)
	d.Handle(realtime.EventChatRead, h.handleRead)
	d.OnConnect(h.onConnect)
}

type sendPayload struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	Type           string `json:"type"`
}

func (h *ChatHandler) handleSend(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var req sendPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	// No self-notification on the push path; the sender's own UI is
	// optimistic and the ack carries the persisted message.
	view, _, err := h.chatService.SendMessage(ctx, sess.Identity.ID, req.ConversationID, req.Content, req.Type, false)
	if err != nil {
		return nil, err
	}
	return view, nil
}

type markDeliveredPayload struct {
	MessageIDs []string `json:"messageIds"`
}

func (h *ChatHandler) handleMarkDelivered(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var req markDeliveredPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	updated, err := h.chatService.AcknowledgeDelivered(ctx, sess.Identity.ID, req.MessageIDs)
	if err != nil {
		return nil, err
	}
	return map[string]int{"updated": updated}, nil
}

type markConversationReadPayload struct {
	ConversationID string `json:"conversationId"`
}

func (h *ChatHandler) handleMarkConversationRead(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var req markConversationReadPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if req.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", common.ErrValidation)
	}

	updated, _, err := h.chatService.AcknowledgeConversationRead(ctx, sess.Identity.ID, req.ConversationID)
	if err != nil {
		return nil, err
	}
	return map[string]int64{"updated": updated}, nil
}

type readPayload struct {
	MessageID string `json:"messageId"`
}

func (h *ChatHandler) handleRead(ctx context.Context, sess *realtime.Session, data json.RawMessage) (interface{}, error) {
	var req readPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if req.MessageID == "" {
		return nil, fmt.Errorf("%w: message id is required", common.ErrValidation)
	}

	if _, err := h.chatService.AcknowledgeRead(ctx, sess.Identity.ID, req.MessageID); err != nil {
		return nil, err
	}
	return nil, nil
}

// onConnect flips the fresh session's pending SENT messages to DELIVERED.
// Senders are notified through the sweep itself; failures only log.
func (h *ChatHandler) onConnect(ctx context.Context, sess *realtime.Session) {
	updated, err := h.chatService.DeliverPending(ctx, sess.Identity.ID)
	if err != nil {
		h.logger.Warn().Err(err).Str("user", sess.Identity.ID).Msg("connect-time delivery sweep failed")
		return
	}
	if updated > 0 {
		h.logger.Debug().Int("messages", updated).Str("user", sess.Identity.ID).Msg("pending messages delivered")
	}
}
