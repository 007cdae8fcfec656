package ws

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

var errSendBufferFull = errors.New("send buffer full")

// displayClient wraps one display's websocket connection. Sends go through a
// buffered channel drained by writePump; a full buffer fails the send
// instead of blocking the broadcaster.
type displayClient struct {
	registry *Registry
	conn     *websocket.Conn
	send     chan []byte
	schoolID string
}

func newDisplayClient(registry *Registry, conn *websocket.Conn, schoolID string) *displayClient {
	return &displayClient{
		registry: registry,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		schoolID: schoolID,
	}
}

func (c *displayClient) Send(message string) error {
	select {
	case c.send <- []byte(message):
		return nil
	default:
		return errSendBufferFull
	}
}

// readPump discards inbound keep-alive traffic and unregisters the channel
// once the connection drops.
func (c *displayClient) readPump() {
	defer func() {
		c.registry.Disconnect(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *displayClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
