package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gawron97/petBuddy-backend-sub000/internal/domain"
	"github.com/Gawron97/petBuddy-backend-sub000/internal/postgres"
)

const maxMessageLen = 4000

// ChatService wraps the relational collaborators: chat-room lookup for
// subscriber authorization and message persistence/history.
type ChatService struct {
	chatRooms *postgres.ChatRoomRepository
	messages  *postgres.MessageRepository
}

func NewChatService(chatRooms *postgres.ChatRoomRepository, messages *postgres.MessageRepository) *ChatService {
	return &ChatService{chatRooms: chatRooms, messages: messages}
}

// Room loads the chat room with its two participant identities.
func (s *ChatService) Room(ctx context.Context, chatID int64) (*domain.ChatRoom, error) {
	room, err := s.chatRooms.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("chatRooms.Get: %w", err)
	}
	return room, nil
}

// SaveMessage validates and persists a message from a verified participant.
func (s *ChatService) SaveMessage(ctx context.Context, chatID int64, senderEmail, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrMessageEmpty
	}
	if len(content) > maxMessageLen {
		return nil, errors.New("message too long")
	}
	msg, err := s.messages.Save(ctx, chatID, senderEmail, content)
	if err != nil {
		return nil, fmt.Errorf("messages.Save: %w", err)
	}
	return msg, nil
}

// History returns the room's messages for a participant, newest first, with
// keyset pagination.
func (s *ChatService) History(ctx context.Context, chatID int64, email, after string, limit int) ([]domain.ChatMessage, string, error) {
	ok, err := s.chatRooms.IsParticipant(ctx, chatID, email)
	if err != nil {
		return nil, "", fmt.Errorf("chatRooms.IsParticipant: %w", err)
	}
	if !ok {
		return nil, "", domain.ErrNotParticipant
	}
	return s.messages.History(ctx, chatID, after, limit)
}
