package websocket

import (
	"encoding/json"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/rs/zerolog/log"
)

// Hub maintains the set of connected admin clients and broadcasts event
// messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Admin feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Admin feed client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastEvent pushes an audit event to every connected client.
func (h *Hub) BroadcastEvent(event models.Event) {
	msg, err := json.Marshal(Message{Action: "event", Payload: event})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode event for broadcast")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Warn().Msg("Admin feed broadcast channel full, dropping event")
	}
}
