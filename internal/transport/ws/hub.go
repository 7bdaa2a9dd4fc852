package ws

import (
	"sync"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/service"
)

type Conn interface {
	Send(ev service.Event) error
	Close() error
	ConnectionID() string
}

// Hub resolves connection ids to live websocket connections; it is the
// service.Pusher the notification layer delivers through. Membership
// bookkeeping lives in the presence registry, not here.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn // connection id -> connection
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]Conn)}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c.ConnectionID()] = c
}

func (h *Hub) Remove(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, connectionID)
}

func (h *Hub) Push(connectionID string, ev service.Event) error {
	h.mu.RLock()
	c, ok := h.conns[connectionID]
	h.mu.RUnlock()

	if !ok {
		return domain.ErrConnectionNotFound
	}
	return c.Send(ev)
}
