package domain

import "time"

type ChatMessage struct {
	ID          string    `db:"id"`
	ChatID      int64     `db:"chat_id"`
	SenderEmail string    `db:"sender_email"`
	Content     string    `db:"content"`
	CreatedAt   time.Time `db:"created_at"`
}
