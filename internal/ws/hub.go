package ws

import (
	"encoding/json"
	"sync"

	"todo_api/internal/logger"
)

// Hub fans task events out to the websocket clients subscribed to a
// username.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addLocked(c)
}

// Subscribe registers c and queues the ready frame in one step, so a client
// that has seen ready is guaranteed to receive every later event.
func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Send <- mustMarshal(Event{Type: MsgReady})
	h.addLocked(c)
}

func (h *Hub) addLocked(c *Client) {
	set, ok := h.subscribers[c.Username]
	if !ok {
		set = make(map[*Client]struct{})
		h.subscribers[c.Username] = set
	}
	set[c] = struct{}{}
	logger.Debug("ws client registered", "username", c.Username, "clients", len(set))
}

// Unregister removes c and closes its send queue. It is safe to call more
// than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	set, ok := h.subscribers[c.Username]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.Send)
	if len(set) == 0 {
		delete(h.subscribers, c.Username)
	}
}

// Publish queues ev for every client of username. A client whose queue is
// full is dropped.
func (h *Hub) Publish(username string, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws event encode failed", "type", ev.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.subscribers[username] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws client too slow, dropping", "username", username)
			h.removeLocked(c)
		}
	}
}

// Subscribers returns the number of clients listening for username.
func (h *Hub) Subscribers(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[username])
}
