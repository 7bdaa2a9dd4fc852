package presence

import (
	"sync"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
)

// slot is one of the two fixed participant positions of a room. username is
// "" exactly when the slot holds no connections.
type slot struct {
	username string
	conns    map[string]*Connection // connection id -> record
}

func (s *slot) occupied() bool { return s.username != "" }

func (s *slot) put(c *Connection) {
	s.username = c.Username
	s.conns[c.ConnectionID] = c
}

func (s *slot) remove(connectionID string) *Connection {
	c, ok := s.conns[connectionID]
	if !ok {
		return nil
	}
	delete(s.conns, connectionID)
	if len(s.conns) == 0 {
		s.username = ""
	}
	return c
}

// RoomPresence holds the live connections of a single chat room, at most two
// distinct usernames at a time. All methods are safe for concurrent use;
// compound mutate sequences are additionally serialized by the registry's
// per-room lock.
type RoomPresence struct {
	mu     sync.RWMutex
	first  slot
	second slot
}

func NewRoomPresence() *RoomPresence {
	return &RoomPresence{
		first:  slot{conns: make(map[string]*Connection)},
		second: slot{conns: make(map[string]*Connection)},
	}
}

// Put upserts the record into the slot owned by its username, claiming a
// vacant slot for a new username. A third distinct username gets ErrChatFull:
// the domain only ever has two legitimate parties, so this means an upstream
// caller skipped participant validation.
func (r *RoomPresence) Put(c *Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.first.username == c.Username:
		r.first.put(c)
	case r.second.username == c.Username:
		r.second.put(c)
	case !r.first.occupied():
		r.first.put(c)
	case !r.second.occupied():
		r.second.put(c)
	default:
		return domain.ErrChatFull
	}
	return nil
}

// Get returns the stored record for (username, connectionID) or
// ErrConnectionNotFound.
func (r *RoomPresence) Get(username, connectionID string) (*Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s := r.slotOf(username); s != nil {
		if c, ok := s.conns[connectionID]; ok {
			return c, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (r *RoomPresence) Contains(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.slotOf(username) != nil
}

// RemoveIfExists drops the connection from its slot, vacating the slot when
// the last connection is gone. Returns the removed record, or nil when
// nothing matched; disconnects race with pruning, so a miss is not an error.
func (r *RoomPresence) RemoveIfExists(username, connectionID string) *Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.slotOf(username); s != nil {
		return s.remove(connectionID)
	}
	return nil
}

func (r *RoomPresence) IsPopulated() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.first.occupied() && r.second.occupied()
}

func (r *RoomPresence) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return !r.first.occupied() && !r.second.occupied()
}

func (r *RoomPresence) FirstSlotConnections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.first.conns)
}

func (r *RoomPresence) SecondSlotConnections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.second.conns)
}

// Connections materializes a snapshot of every record across both slots.
// The returned slice is detached from the room, so a fan-out loop keeps a
// stable view while subscribes and disconnects mutate the slots underneath.
func (r *RoomPresence) Connections() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Connection, 0, len(r.first.conns)+len(r.second.conns))
	for _, c := range r.first.conns {
		out = append(out, c)
	}
	for _, c := range r.second.conns {
		out = append(out, c)
	}
	return out
}

// caller must hold r.mu
func (r *RoomPresence) slotOf(username string) *slot {
	if username == "" {
		return nil
	}
	if r.first.username == username {
		return &r.first
	}
	if r.second.username == username {
		return &r.second
	}
	return nil
}
