package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	EventClientsTotal         = "clients-total"
	EventChatMessage          = "chat-message"
	EventFeedback             = "feedback"
	EventReservationCreated   = "reservation-created"
	EventReservationCancelled = "reservation-cancelled"
)

// Event is the wire envelope for every message on the chat channel.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub tracks connected chat clients and fans events out to them. Delivery is
// at most once: a client whose send buffer is full is detached rather than
// blocking the rest of the room.
//
// The hub owns the lifecycle of every client's send channel: sends happen under
// the read lock and the channel is closed under the write lock only after the
// client has left the map, so a send can never hit a closed channel.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Info().Int("total", total).Msg("chat client registered")

	h.BroadcastAll(EventClientsTotal, total)
}

func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		c.close()
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	log.Info().Int("total", total).Msg("chat client detached")

	h.BroadcastAll(EventClientsTotal, total)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// BroadcastAll delivers the event to every connected client.
func (h *Hub) BroadcastAll(event string, data any) {
	h.broadcast(event, data, nil)
}

// BroadcastExcept delivers the event to every connected client but the sender.
func (h *Hub) BroadcastExcept(sender *Client, event string, data any) {
	h.broadcast(event, data, sender)
}

func (h *Hub) broadcast(event string, data any, except *Client) {
	payload, err := encodeEvent(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to encode chat event")

		return
	}

	h.mu.RLock()

	var stale []*Client

	for c := range h.clients {
		if c == except {
			continue
		}

		select {
		case c.send <- payload:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		log.Warn().Str("event", event).Msg("chat client send buffer full, detaching")

		h.Detach(c)
	}
}

func encodeEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Event{Event: event, Data: raw})
}
