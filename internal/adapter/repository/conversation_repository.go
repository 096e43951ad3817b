package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository implements conversation.Store over PostgreSQL.
// Shared conversation data and per-user private data live in separate
// tables; the channel id is normalized on every lookup and write so the
// debug and public channel names address the same rows.
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository instance
func NewConversationRepository(db *pgxpool.Pool) conversation.Store {
	return &ConversationRepository{
		db: db,
	}
}

// GetData implements conversation.Store.GetData
func (r *ConversationRepository) GetData(ctx context.Context, addr conversation.Address) (*conversation.BotData, error) {
	addr = addr.Normalized()
	data := conversation.NewBotData()

	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM conversation_data
		 WHERE channel_id = $1 AND conversation_id = $2`,
		addr.ChannelID, addr.ConversationID,
	).Scan(&raw)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to load conversation data: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data.ConversationData); err != nil {
			return nil, fmt.Errorf("failed to decode conversation data: %w", err)
		}
	}

	if addr.User != nil {
		var rawPrivate []byte
		err := r.db.QueryRow(ctx,
			`SELECT data FROM private_conversation_data
			 WHERE channel_id = $1 AND conversation_id = $2 AND user_id = $3`,
			addr.ChannelID, addr.ConversationID, addr.User.ID,
		).Scan(&rawPrivate)
		if err != nil && err != pgx.ErrNoRows {
			return nil, fmt.Errorf("failed to load private conversation data: %w", err)
		}
		if len(rawPrivate) > 0 {
			if err := json.Unmarshal(rawPrivate, &data.PrivateConversationData); err != nil {
				return nil, fmt.Errorf("failed to decode private conversation data: %w", err)
			}
		}
	}

	return data, nil
}

// SetData implements conversation.Store.SetData
func (r *ConversationRepository) SetData(ctx context.Context, addr conversation.Address, data *conversation.BotData) error {
	addr = addr.Normalized()

	raw, err := json.Marshal(data.ConversationData)
	if err != nil {
		return fmt.Errorf("failed to encode conversation data: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO conversation_data (channel_id, conversation_id, data, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (channel_id, conversation_id)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		addr.ChannelID, addr.ConversationID, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversation data: %w", err)
	}

	if addr.User != nil {
		rawPrivate, err := json.Marshal(data.PrivateConversationData)
		if err != nil {
			return fmt.Errorf("failed to encode private conversation data: %w", err)
		}

		_, err = r.db.Exec(ctx,
			`INSERT INTO private_conversation_data (channel_id, conversation_id, user_id, data, updated_at)
			 VALUES ($1, $2, $3, $4, NOW())
			 ON CONFLICT (channel_id, conversation_id, user_id)
			 DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
			addr.ChannelID, addr.ConversationID, addr.User.ID, rawPrivate,
		)
		if err != nil {
			return fmt.Errorf("failed to save private conversation data: %w", err)
		}
	}

	return nil
}

// DeleteData implements conversation.Store.DeleteData
func (r *ConversationRepository) DeleteData(ctx context.Context, addr conversation.Address) error {
	addr = addr.Normalized()

	_, err := r.db.Exec(ctx,
		`DELETE FROM conversation_data WHERE channel_id = $1 AND conversation_id = $2`,
		addr.ChannelID, addr.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete conversation data: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM private_conversation_data WHERE channel_id = $1 AND conversation_id = $2`,
		addr.ChannelID, addr.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete private conversation data: %w", err)
	}

	return nil
}
