package conversation

import (
	"context"
)

// Store defines the interface for conversation data persistence. Data is
// keyed by the conversation address; implementations must normalize the
// channel id before any lookup or write.
type Store interface {
	// GetData loads the bot data for an address. A conversation that was
	// never written returns empty (non-nil) maps.
	GetData(ctx context.Context, addr Address) (*BotData, error)

	// SetData persists the bot data for an address. Private data is only
	// written when the address carries a user.
	SetData(ctx context.Context, addr Address, data *BotData) error

	// DeleteData removes all stored data of a conversation
	DeleteData(ctx context.Context, addr Address) error
}
