package chat

import (
	"context"
)

// Repository defines the interface for chat history persistence
type Repository interface {
	// SaveMessage stores a new message in the history
	SaveMessage(ctx context.Context, message *Message) error

	// GetConversationHistory returns the messages of a conversation,
	// newest first
	GetConversationHistory(ctx context.Context, conversationID string, limit, offset int) ([]Message, error)

	// DeleteConversationHistory removes all history of a conversation
	DeleteConversationHistory(ctx context.Context, conversationID string) error
}
