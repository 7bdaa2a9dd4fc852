package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ChatMessageItem struct {
	ID          string    `json:"id"`
	ChatID      int64     `json:"chatId"`
	SenderEmail string    `json:"senderEmail"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ChatHistoryResponse struct {
	Items      []ChatMessageItem `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}
