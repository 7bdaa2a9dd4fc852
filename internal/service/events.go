package service

import (
	"time"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
)

// Event types pushed to subscribed connections
const (
	EventJoined  = "JOINED"
	EventLeft    = "LEFT"
	EventMessage = "MESSAGE"
)

// MessageContent mirrors a persisted chat message. CreatedAt is rewritten
// into each recipient's own zone before delivery, so two recipients see the
// same instant with their own offsets.
type MessageContent struct {
	ID          string    `json:"id"`
	ChatID      int64     `json:"chatId"`
	SenderEmail string    `json:"senderEmail"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Event struct {
	Type             string          `json:"type"`
	JoiningUserEmail string          `json:"joiningUserEmail,omitempty"`
	LeavingUserEmail string          `json:"leavingUserEmail,omitempty"`
	Content          *MessageContent `json:"content,omitempty"`
}

func JoinedEvent(email string) Event {
	return Event{Type: EventJoined, JoiningUserEmail: email}
}

func LeftEvent(email string) Event {
	return Event{Type: EventLeft, LeavingUserEmail: email}
}

func MessageEvent(m domain.ChatMessage) Event {
	return Event{
		Type: EventMessage,
		Content: &MessageContent{
			ID:          m.ID,
			ChatID:      m.ChatID,
			SenderEmail: m.SenderEmail,
			Content:     m.Content,
			CreatedAt:   m.CreatedAt,
		},
	}
}
