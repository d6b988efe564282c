// Package ws broadcasts document-change events to connected browsers so every
// family screen stays in sync without polling.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event is a real-time notification about a changed record.
type Event struct {
	Entity string         `json:"entity"` // "todo_list", "portfolio_item", ...
	Action string         `json:"action"` // "created", "updated", "deleted"
	ID     string         `json:"id,omitempty"`
	Scope  string         `json:"scope,omitempty"` // member username, when scoped
	Extra  map[string]any `json:"extra,omitempty"`
}

// Hub maintains the set of active clients and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client. Slow clients whose
// buffers are full miss the event rather than block the caller.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}
