package domain

import "time"

// ChatRoom is one two-party conversation between a client and a caretaker.
// Rooms are created by the marketplace backend; this service only reads them
// to authorize subscribers.
type ChatRoom struct {
	ID             int64     `db:"id"`
	ClientEmail    string    `db:"client_email"`
	CaretakerEmail string    `db:"caretaker_email"`
	CreatedAt      time.Time `db:"created_at"`
}

// HasParticipant reports whether email is one of the two legitimate parties.
func (c ChatRoom) HasParticipant(email string) bool {
	return email == c.ClientEmail || email == c.CaretakerEmail
}

// OtherParticipant returns the counterparty of email, or "" if email is not
// a participant.
func (c ChatRoom) OtherParticipant(email string) string {
	switch email {
	case c.ClientEmail:
		return c.CaretakerEmail
	case c.CaretakerEmail:
		return c.ClientEmail
	default:
		return ""
	}
}
