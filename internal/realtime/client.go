package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 16
)

// Client is one websocket connection on the chat channel.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, sendBufferSize int) *Client {
	if sendBufferSize <= 0 {
		sendBufferSize = 64
	}

	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)

		if err := c.conn.Close(); err != nil {
			log.Debug().Err(err).Msg("chat connection close")
		}
	})
}

// ReadPump relays chat and feedback events from this client to every other
// connected client. Unknown events are dropped.
func (c *Client) ReadPump() {
	defer c.hub.Detach(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var event Event

		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := c.conn.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("chat read error")
			}

			return
		}

		switch event.Event {
		case EventChatMessage, EventFeedback:
			c.hub.BroadcastExcept(c, event.Event, event.Data)
		default:
			log.Debug().Str("event", event.Event).Msg("unknown chat event dropped")
		}
	}
}

// WritePump drains the send buffer onto the connection and keeps it alive with
// periodic pings.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn().Err(err).Msg("chat write error")

				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Msg("chat ping error")

				return
			}
		}
	}
}
