package signaling

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bjaspel63/splitClass/internal/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024 // 64 KB - enough for WebRTC SDP messages
)

// Client is a wrapper for a single websocket connection (one participant).
//
// The role/room/identity fields are unset until the hub accepts a join and
// are cleared again on leave or disconnect. They are only ever written from
// the hub goroutine.
type Client struct {
	// Hub is a pointer to the hub that manages this client.
	Hub *Hub

	// Conn is the websocket connection.
	Conn *websocket.Conn

	// Role is the assigned role, empty before a join is accepted.
	Role Role

	// RoomName is the room this connection belongs to, empty if unjoined.
	RoomName string

	// ID is the hub-assigned identity ("teacher" or a minted student id).
	ID string

	// Name is the display name; students only.
	Name string

	// send is a bounded queue of marshaled outbound frames. The hub writes
	// to it without blocking, and WritePump drains it onto the socket.
	send chan []byte
}

// NewClient wraps an accepted websocket connection. queueSize bounds the
// outbound queue; once full, further messages to this client are dropped.
func NewClient(hub *Hub, conn *websocket.Conn, queueSize int) *Client {
	return &Client{
		Hub:  hub,
		Conn: conn,
		send: make(chan []byte, queueSize),
	}
}

// reset clears the join-time state so a later leave or disconnect for the
// same connection is a no-op.
func (c *Client) reset() {
	c.Role = ""
	c.RoomName = ""
	c.ID = ""
	c.Name = ""
}

// label identifies the client in logs: its assigned identity once joined,
// the remote address before that.
func (c *Client) label() string {
	if c.ID != "" {
		return c.ID
	}
	if c.Conn != nil {
		return c.Conn.RemoteAddr().String()
	}
	return "unjoined"
}

// trySend marshals v and queues it without blocking. A slow or backed-up
// peer loses the message instead of stalling the hub; delivery is
// best-effort and never retried.
func (c *Client) trySend(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.Hub.log.Error("marshal outbound message", slog.Any("error", err))
		return
	}
	select {
	case c.send <- data:
	default:
		c.Hub.metrics.Inc(metrics.EventDropBackpressure)
		c.Hub.log.Warn("outbound queue full, dropping message",
			slog.String("client", c.label()))
	}
}

// ReadPump pumps messages from the websocket connection to the hub.
//
// The application runs ReadPump in a per-connection goroutine. The
// application ensures that there is at most one reader on a connection by
// executing all reads from this goroutine.
func (c *Client) ReadPump() {
	// When this function exits (e.g., connection closes), unregister the client
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
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Debug("read error", slog.String("client", c.label()), slog.Any("error", err))
			}
			break
		}

		// A frame that isn't a JSON envelope is dropped without ending the
		// participation; only a transport close or explicit leave does that.
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.Hub.metrics.Inc(metrics.EventDropMalformed)
			continue
		}

		msg.client = c
		c.Hub.Inbound <- &msg
	}
}

// WritePump pumps messages from the hub to the websocket connection.
//
// A goroutine running WritePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
