// Package realtime fans chat messages out to connected websocket
// clients. Rooms are keyed by chat id; a client may join several rooms
// over one connection.
package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub is the room registry. All membership state lives behind one
// mutex; pumps and HTTP handlers call in from their own goroutines.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*Client]struct{}
	memberships map[*Client]map[string]struct{}
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		memberships: make(map[*Client]map[string]struct{}),
		log:         log,
	}
}

// Join adds the client to a room. Joining a room twice is a no-op.
func (h *Hub) Join(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}

	if h.memberships[c] == nil {
		h.memberships[c] = make(map[string]struct{})
	}
	h.memberships[c][roomID] = struct{}{}
}

// Leave removes the client from every room it joined. Called once from
// the client's read pump on disconnect.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomID := range h.memberships[c] {
		delete(h.rooms[roomID], c)
		if len(h.rooms[roomID]) == 0 {
			delete(h.rooms, roomID)
		}
	}
	delete(h.memberships, c)
}

// RoomSize returns the number of clients currently in a room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Broadcast sends a raw frame to every client in the room. Clients
// whose send buffer is full are dropped rather than blocking the hub.
func (h *Hub) Broadcast(roomID string, frame []byte) {
	h.mu.RLock()
	var slow []*Client
	for c := range h.rooms[roomID] {
		select {
		case c.send <- frame:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("dropping slow websocket client", zap.String("room", roomID))
		h.Leave(c)
		c.closeSend()
	}
}

// outboundFrame is the envelope written to clients.
type outboundFrame struct {
	Event  string `json:"event"`
	ChatID string `json:"chatId"`
	Data   any    `json:"data"`
}

// BroadcastMessage wraps a chat message in the standard envelope and
// broadcasts it to the message's room. Used both by the HTTP message
// endpoint after persisting and by the socket relay path.
func (h *Hub) BroadcastMessage(chatID string, data any) {
	frame, err := json.Marshal(outboundFrame{Event: "message", ChatID: chatID, Data: data})
	if err != nil {
		h.log.Error("failed to encode broadcast frame",
			zap.String("chat_id", chatID),
			zap.Error(err))
		return
	}
	h.Broadcast(chatID, frame)
}
