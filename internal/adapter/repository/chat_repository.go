package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/commerce-assistant/pkg/chat"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepository implements chat.Repository over PostgreSQL
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository instance
func NewChatRepository(db *pgxpool.Pool) chat.Repository {
	return &ChatRepository{
		db: db,
	}
}

// SaveMessage implements chat.Repository.SaveMessage
func (r *ChatRepository) SaveMessage(ctx context.Context, message *chat.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO chat_history (id, conversation_id, user_id, role, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		message.ID,
		message.ConversationID,
		message.UserID,
		message.Role,
		message.Content,
		message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return nil
}

// GetConversationHistory implements chat.Repository.GetConversationHistory
func (r *ChatRepository) GetConversationHistory(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, role, content, created_at
		 FROM chat_history
		 WHERE conversation_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var msg chat.Message
		err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&msg.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to read message: %w", err)
		}
		msg.ConversationID = conversationID
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}

// DeleteConversationHistory implements chat.Repository.DeleteConversationHistory
func (r *ChatRepository) DeleteConversationHistory(ctx context.Context, conversationID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM chat_history WHERE conversation_id = $1`,
		conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}

	return nil
}
