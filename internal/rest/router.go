package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"campuslink/internal/common"
	"campuslink/internal/ratelimit"
	"campuslink/internal/realtime"
)

// NewRouter assembles the synchronous mirror and the websocket endpoint.
func NewRouter(chat *ChatHandler, transport *TransportHandler, gateway *realtime.Gateway, verifier common.TokenVerifier, limiter ratelimit.Limiter, logger zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(CORSMiddleware)
	router.Use(LoggingMiddleware(logger))

	router.HandleFunc("/ws", gateway.ServeWS)
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(verifier))
	api.Use(RateLimitMiddleware(limiter, logger))

	api.HandleFunc("/chat/conversations", chat.ListConversations).Methods("GET")
	api.HandleFunc("/chat/conversations/{userID}", chat.GetOrCreateConversation).Methods("POST")
	api.HandleFunc("/chat/conversations/{conversationID}/messages", chat.ListMessages).Methods("GET")
	api.HandleFunc("/chat/conversations/{conversationID}/messages", chat.SendMessage).Methods("POST")
	api.HandleFunc("/chat/messages/{messageID}/read", chat.MarkMessageRead).Methods("PUT")

	api.HandleFunc("/transport/buses/{busID}/location", transport.LatestLocation).Methods("GET")
	api.HandleFunc("/transport/buses/{busID}/locations", transport.LocationHistory).Methods("GET")

	return router
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy","service":"campuslink-realtime"}`))
}
