// Package rest is the synchronous mirror: the messaging channel's
// operations over request/response for clients without a live connection.
package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"campuslink/internal/chat/service"
	"campuslink/internal/common"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ListConversations handles GET /chat/conversations
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	summaries, err := h.chatService.ListConversations(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetOrCreateConversation handles POST /chat/conversations/{userID}
func (h *ChatHandler) GetOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	otherUserID := mux.Vars(r)["userID"]
	summary, err := h.chatService.GetOrCreateConversation(r.Context(), *identity, otherUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ListMessages handles GET /chat/conversations/{conversationID}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	conversationID := mux.Vars(r)["conversationID"]

	var cursor *time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid cursor", common.ErrBadRequest))
			return
		}
		cursor = &parsed
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid limit", common.ErrBadRequest))
			return
		}
		limit = parsed
	}

	page, err := h.chatService.ListMessages(r.Context(), identity.ID, conversationID, cursor, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

type sendMessageRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// SendMessage handles POST /chat/conversations/{conversationID}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid body", common.ErrBadRequest))
		return
	}

	conversationID := mux.Vars(r)["conversationID"]

	// The synchronous path confirms the sender over the gateway too; the
	// push itself is best effort and never fails the write.
	view, _, err := h.chatService.SendMessage(r.Context(), identity.ID, conversationID, req.Content, req.Type, true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// MarkMessageRead handles PUT /chat/messages/{messageID}/read
func (h *ChatHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	messageID := mux.Vars(r)["messageID"]
	if _, err := h.chatService.AcknowledgeRead(r.Context(), identity.ID, messageID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "READ"})
}
