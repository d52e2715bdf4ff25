package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/smashhub/smashhub-server/pegboard"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: pin this to the deployed frontend origin before go-live.
		return true
	},
}

type WebSocketHandler struct {
	hub *pegboard.Hub
}

func NewWebSocketHandler(hub *pegboard.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes a viewer to a club's live board. Clients connect to
// /ws/pegboard/{clubID} (or the older /ws/pegboard?clubId= form) and receive
// BOARD_UPDATED snapshots.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	if clubID == "" {
		clubID = r.URL.Query().Get("clubId")
	}
	if clubID == "" {
		http.Error(w, "Missing clubID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		slog.Warn("failed to upgrade board connection", slog.String("club_id", clubID), slog.Any("error", err))
		return
	}

	client := &pegboard.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		ClubID: clubID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
