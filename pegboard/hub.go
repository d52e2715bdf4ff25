package pegboard

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the wire envelope pushed to board viewers.
type Message struct {
	Type    string      `json:"type"` // e.g. "BOARD_UPDATED"
	Payload interface{} `json:"payload"`
	ClubID  string      `json:"club_id,omitempty"`
}

const MessageBoardUpdated = "BOARD_UPDATED"

// Client is one connected board viewer, scoped to a club room.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	ClubID   string
	isClosed bool
	mu       sync.Mutex
}

// Hub fans board snapshots out to every viewer of a club's PegBoard. One room
// per club; rooms are created on first subscriber and dropped when empty.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.ClubID]; !ok {
				h.rooms[client.ClubID] = make(map[*Client]bool)
			}
			h.rooms[client.ClubID][client] = true
			h.mu.Unlock()
			slog.Debug("pegboard viewer joined", slog.String("club_id", client.ClubID))

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.ClubID]; ok {
				if _, okClient := room[client]; okClient {
					client.closeSend()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.ClubID)
					}
				}
			}
			h.mu.Unlock()
			slog.Debug("pegboard viewer left", slog.String("club_id", client.ClubID))
		}
	}
}

// BroadcastBoard pushes a board snapshot to every viewer of the club.
func (h *Hub) BroadcastBoard(clubID string, board Board) {
	h.broadcast(clubID, Message{
		Type:    MessageBoardUpdated,
		Payload: board,
		ClubID:  clubID,
	})
}

func (h *Hub) broadcast(clubID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[clubID]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal board message", slog.Any("error", err))
		return
	}

	for client := range room {
		client.mu.Lock()
		if client.isClosed {
			client.mu.Unlock()
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Slow consumer: drop this snapshot, the next one supersedes it.
		}
		client.mu.Unlock()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isClosed {
		close(c.Send)
		c.isClosed = true
	}
}

// ReadPump drains the connection until the viewer disconnects. Inbound
// messages are ignored; the board is mutated over REST only.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("pegboard viewer read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
