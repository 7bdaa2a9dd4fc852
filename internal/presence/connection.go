// Package presence tracks which users currently hold live connections to a
// two-party chat room and owns the process-wide room registry the fan-out
// layer reads its delivery targets from.
package presence

import "time"

// Connection describes one live subscription of a user to a chat room: the
// owning user, the physical connection id and the zone timestamps should be
// rendered in for that user. Records are immutable; a time-zone change is
// applied by upserting a replacement record for the same connection id.
type Connection struct {
	Username     string
	ConnectionID string
	TimeZone     *time.Location
}

func NewConnection(username, connectionID string, zone *time.Location) *Connection {
	if zone == nil {
		zone = time.Local
	}
	return &Connection{
		Username:     username,
		ConnectionID: connectionID,
		TimeZone:     zone,
	}
}

// WithTimeZone returns a copy of the record carrying the new zone.
func (c *Connection) WithTimeZone(zone *time.Location) *Connection {
	return NewConnection(c.Username, c.ConnectionID, zone)
}
