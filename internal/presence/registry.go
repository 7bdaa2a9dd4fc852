package presence

import (
	"context"
	"sync"
)

// roomEntry pairs a room's presence with the lock serializing its compound
// mutations. The lock is a capacity-1 channel so waiters can bail out on
// context cancellation instead of blocking forever.
type roomEntry struct {
	lock    chan struct{}
	room    *RoomPresence
	evicted bool // set while holding lock, once the entry left the registry
}

func newRoomEntry() *roomEntry {
	return &roomEntry{
		lock: make(chan struct{}, 1),
		room: NewRoomPresence(),
	}
}

func (e *roomEntry) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case e.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *roomEntry) release() { <-e.lock }

// Registry maps chat room ids to their live presence. One instance is built
// in main and injected into the notification layer; it lives for the process
// lifetime. Unrelated rooms never contend: the registry-wide mutex guards
// only entry creation and pruning, every other mutation runs under the
// room's own lock.
type Registry struct {
	mu    sync.RWMutex
	rooms map[int64]*roomEntry
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[int64]*roomEntry)}
}

// Find returns the room's presence without creating an entry, or nil when
// the room is not tracked.
func (r *Registry) Find(chatID int64) *RoomPresence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.rooms[chatID]; ok {
		return e.room
	}
	return nil
}

// FindConnection returns the stored record for (username, connectionID) in
// the room, or nil when the room or the connection is absent. Never fails:
// lookups race with disconnects by design.
func (r *Registry) FindConnection(chatID int64, username, connectionID string) *Connection {
	room := r.Find(chatID)
	if room == nil {
		return nil
	}
	c, err := room.Get(username, connectionID)
	if err != nil {
		return nil
	}
	return c
}

// Put upserts the record into the room, creating the room entry on first
// use. Reports whether this registration took the room from empty to
// occupied; the caller uses that to announce the join exactly once.
//
// Entry creation is an optimistic read re-checked under the registry write
// lock, so two concurrent first-joiners converge on a single entry. The
// upsert itself runs under the room's lock; waiting there is bounded by ctx,
// and a cancelled wait applies no mutation.
func (r *Registry) Put(ctx context.Context, chatID int64, c *Connection) (created bool, err error) {
	for {
		e := r.ensureEntry(chatID)

		if err := e.acquire(ctx); err != nil {
			r.tryPruneEmpty(chatID, e)
			return false, err
		}
		if e.evicted {
			// lost the race against pruning, the map no longer holds this
			// entry; retry against a fresh one
			e.release()
			continue
		}

		created = e.room.IsEmpty()
		err = e.room.Put(c)
		e.release()
		if err != nil {
			return false, err
		}
		return created, nil
	}
}

// RemoveIfExists drops the connection from the room and prunes the entry
// once both slots are vacant. Returns nil, nil when the room is unknown or
// the connection was not present; duplicate disconnect delivery is expected.
func (r *Registry) RemoveIfExists(ctx context.Context, chatID int64, username, connectionID string) (*Connection, error) {
	r.mu.RLock()
	e, ok := r.rooms[chatID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if err := e.acquire(ctx); err != nil {
		return nil, err
	}
	defer e.release()

	if e.evicted {
		return nil, nil
	}

	removed := e.room.RemoveIfExists(username, connectionID)
	if e.room.IsEmpty() {
		e.evicted = true
		r.mu.Lock()
		if cur, ok := r.rooms[chatID]; ok && cur == e {
			delete(r.rooms, chatID)
		}
		r.mu.Unlock()
	}
	return removed, nil
}

// Size reports how many rooms are currently tracked.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}

// tryPruneEmpty drops an entry that never got populated, e.g. when the
// first-joiner's wait was cancelled. Non-blocking: if the lock is taken,
// someone is populating the room and no cleanup is needed.
func (r *Registry) tryPruneEmpty(chatID int64, e *roomEntry) {
	select {
	case e.lock <- struct{}{}:
	default:
		return
	}
	defer e.release()

	if e.evicted || !e.room.IsEmpty() {
		return
	}
	e.evicted = true
	r.mu.Lock()
	if cur, ok := r.rooms[chatID]; ok && cur == e {
		delete(r.rooms, chatID)
	}
	r.mu.Unlock()
}

func (r *Registry) ensureEntry(chatID int64) *roomEntry {
	r.mu.RLock()
	e, ok := r.rooms[chatID]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.rooms[chatID]; ok {
		return e
	}
	e = newRoomEntry()
	r.rooms[chatID] = e
	return e
}
