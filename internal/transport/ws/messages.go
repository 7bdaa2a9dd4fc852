package ws

import "encoding/json"

// Inbound frame types accepted on the chat channel
const (
	TypeMessage  = "message"  // send a chat message
	TypeTimezone = "timezone" // update the subscriber's time zone
)

type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type MessagePayload struct {
	Content string `json:"content"`
}

type TimezonePayload struct {
	TimeZone string `json:"timeZone"`
}
