package domain

import "errors"

var (
	ErrChatNotFound       = errors.New("chat room not found")
	ErrChatFull           = errors.New("chat room already has two participants")
	ErrNotParticipant     = errors.New("user is not a participant of the chat room")
	ErrConnectionNotFound = errors.New("connection not found in chat room")
	ErrMessageEmpty       = errors.New("empty message")
)
