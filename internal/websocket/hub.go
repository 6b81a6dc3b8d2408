// Package websocket pushes inventory change events to connected browsers.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// EventInventoryChanged tells clients the gallery content changed and the
// inventory should be re-fetched.
const EventInventoryChanged = "inventory.changed"

// Event is the message broadcast to every connected client.
type Event struct {
	Type      string    `json:"type"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains active clients and broadcasts events to them.
type Hub struct {
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates an empty hub. Call Run in a goroutine to start it.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan Event, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes registrations and broadcasts until the process exits. A
// client whose send buffer is full is dropped rather than blocking the hub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			payload := marshalEvent(event)
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func marshalEvent(e Event) []byte {
	data, err := json.Marshal(e)
	if err != nil {
		log.Printf("websocket: marshal event: %v", err)
		return []byte("{}")
	}
	return data
}
