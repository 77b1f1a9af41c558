// Package websocket fans task lifecycle events out to connected dashboard
// clients.
package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Event is the wire format broadcast to clients.
type Event struct {
	Event  string `json:"event"`
	TaskID int    `json:"task_id"`
}

// Client wraps a WebSocket connection. The mutex guards concurrent writes.
type Client struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

// Hub tracks connected clients and broadcasts messages to all of them.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run handles register, unregister and broadcast until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.mu.Unlock()
				if err != nil {
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}

// Notify broadcasts a task event without blocking the caller. Events are
// dropped when the hub is absent or nobody is draining the channel.
func (h *Hub) Notify(event string, taskID int) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(Event{Event: event, TaskID: taskID})
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}
