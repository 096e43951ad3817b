package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// RequestValidity is the server-side lifetime of a correlation entry. It
// matches the advisory expires window of the payment request, but is
// enforced here independently of the client.
const RequestValidity = 24 * time.Hour

// Resolution is the outcome of matching an invoke event back to its
// conversation: a fully addressed conversation, the authenticated user and
// the correlation data loaded along the way.
type Resolution struct {
	Address conversation.Address
	UserID  string
	CartID  string
	Data    *conversation.BotData
}

// Correlator resolves out-of-band invoke events to the conversation and
// user that issued the payment request, using the correlation token stored
// when the payment UI was offered.
type Correlator struct {
	store  conversation.Store
	logger logger.Logger
	now    func() time.Time
}

// NewCorrelator creates a Correlator over the given conversation store
func NewCorrelator(store conversation.Store, log logger.Logger) *Correlator {
	return &Correlator{store: store, logger: log, now: time.Now}
}

// Resolve matches an invoke envelope to its conversation. The relatesTo
// channel id is normalized before any lookup, since stored data was written
// under the public channel name. When the envelope carries no user identity
// it is synthesized from the stored correlation value and the address is
// marked assume-authenticated for this single operation.
//
// Returns payment.ErrCorrelationNotFound when no cart id is on record or
// the stored entry has outlived the request validity window; the caller
// must drop the operation without resuming any dialog.
func (c *Correlator) Resolve(ctx context.Context, inv *Invoke) (*Resolution, error) {
	addr := inv.RelatesTo.Normalized()

	data, err := c.store.GetData(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation data: %w", err)
	}

	cartID := data.ConversationData[CartIDKey]
	if cartID == "" {
		return nil, payment.ErrCorrelationNotFound
	}

	if c.expired(data.ConversationData[IssuedKey(cartID)]) {
		c.logger.Warn("Dropping invoke for expired payment request",
			"operation", inv.Name,
			"cart_id", cartID,
			"conversation_id", addr.ConversationID)
		c.cleanupExpired(ctx, addr, data, cartID)
		return nil, payment.ErrCorrelationNotFound
	}

	userID := data.ConversationData[cartID]
	if addr.User == nil && userID != "" {
		// the channel omitted the user on the callback; trust the stored
		// identity for this operation only
		addr.User = &conversation.ChannelAccount{ID: userID}
		addr.UseAuth = true
	}

	return &Resolution{
		Address: addr,
		UserID:  userID,
		CartID:  cartID,
		Data:    data,
	}, nil
}

// expired reports whether an issue timestamp is missing its validity window.
// Entries written before timestamps were recorded have no issue time and are
// treated as still valid.
func (c *Correlator) expired(issued string) bool {
	if issued == "" {
		return false
	}
	ts, err := time.Parse(time.RFC3339, issued)
	if err != nil {
		return false
	}
	return c.now().Sub(ts) > RequestValidity
}

// cleanupExpired removes a stale correlation entry so later invokes resolve
// to not-found instead of stale data
func (c *Correlator) cleanupExpired(ctx context.Context, addr conversation.Address, data *conversation.BotData, cartID string) {
	delete(data.ConversationData, CartIDKey)
	delete(data.ConversationData, cartID)
	delete(data.ConversationData, IssuedKey(cartID))

	if err := c.store.SetData(ctx, addr, data); err != nil {
		c.logger.Error("Failed to clean up expired correlation entry",
			"error", err, "cart_id", cartID)
	}
}
