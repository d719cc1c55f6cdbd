package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size.
	maxMessageSize = 8192

	// Outbound buffer per client.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cookie-session auth happens before the upgrade; cross-origin
	// browser clients are expected.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection. It relays room joins and
// messages to the hub; the hub pushes frames back through send.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *zap.Logger

	closeOnce sync.Once
}

// inboundFrame is what clients send: joinRoom to subscribe, then
// sendMessage to relay into the room.
type inboundFrame struct {
	Action  string          `json:"action"`
	ChatID  string          `json:"chatId"`
	Message json.RawMessage `json:"message,omitempty"`
}

// ServeWS upgrades the connection and starts the client's pumps.
func ServeWS(hub *Hub, log *zap.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  log,
	}
	go client.writePump()
	go client.readPump()
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// readPump reads inbound frames until the connection drops, then
// detaches the client from the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.Leave(c)
		c.closeSend()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.log.Debug("ignoring malformed websocket frame", zap.Error(err))
			continue
		}

		switch frame.Action {
		case "joinRoom":
			if frame.ChatID == "" {
				continue
			}
			c.hub.Join(frame.ChatID, c)
		case "sendMessage":
			// Socket-relayed messages reach everyone in the room but
			// are not persisted; durable messages go through the HTTP
			// endpoint, which broadcasts after storing.
			if frame.ChatID == "" || len(frame.Message) == 0 {
				continue
			}
			c.hub.BroadcastMessage(frame.ChatID, frame.Message)
		default:
			c.log.Debug("ignoring unknown websocket action",
				zap.String("action", frame.Action))
		}
	}
}

// writePump pushes hub frames and pings to the peer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
