package checkout

import (
	"encoding/json"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
)

// CartIDKey is the conversation data key holding the active cart id. The
// literal predates this service; stored conversations still use it, so it
// stays for store compatibility.
const CartIDKey = "CardId"

// issuedKeySuffix extends a cart id into the key holding its issue timestamp
const issuedKeySuffix = ".issued"

// IssuedKey returns the conversation data key holding the issue time of the
// payment request for a cart id
func IssuedKey(cartID string) string {
	return cartID + issuedKeySuffix
}

// Invoke is an out-of-band event from the client payment UI. It arrives
// without full conversation context; RelatesTo is the only hint for matching
// it back to a conversation.
type Invoke struct {
	Name      string               `json:"name"`
	RelatesTo conversation.Address `json:"relatesTo"`
	Value     json.RawMessage      `json:"value"`
}
