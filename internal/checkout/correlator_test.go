package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// seedCorrelation stores the correlation token the way the cart dialog writes
// it when offering the payment UI
func seedCorrelation(t *testing.T, store *memStore, addr conversation.Address, cartID, userID string, issued time.Time) {
	t.Helper()

	data := conversation.NewBotData()
	data.ConversationData[CartIDKey] = cartID
	data.ConversationData[cartID] = userID
	data.ConversationData[IssuedKey(cartID)] = issued.Format(time.RFC3339)
	require.NoError(t, store.SetData(context.Background(), addr, data))
}

func storedAddress() conversation.Address {
	return conversation.Address{
		ChannelID:      conversation.PublicChannelID,
		ConversationID: "conv-1",
		User:           &conversation.ChannelAccount{ID: "user-1", Name: "Jane"},
		ServiceURL:     "https://channel.example.com",
	}
}

func TestCorrelatorResolve(t *testing.T) {
	store := newMemStore()
	seedCorrelation(t, store, storedAddress(), "cart-1", "user-1", time.Now())

	c := NewCorrelator(store, logger.Nop{})

	// the invoke arrives without the user and on the debug channel alias
	inv := &Invoke{
		Name: payment.OperationUpdateShippingAddress,
		RelatesTo: conversation.Address{
			ChannelID:      conversation.DebugChannelID,
			ConversationID: "conv-1",
		},
	}

	res, err := c.Resolve(context.Background(), inv)
	require.NoError(t, err)

	assert.Equal(t, conversation.PublicChannelID, res.Address.ChannelID)
	assert.Equal(t, "cart-1", res.CartID)
	assert.Equal(t, "user-1", res.UserID)

	require.NotNil(t, res.Address.User, "user synthesized from the stored correlation")
	assert.Equal(t, "user-1", res.Address.User.ID)
	assert.True(t, res.Address.UseAuth)
}

func TestCorrelatorResolveKeepsEnvelopeUser(t *testing.T) {
	store := newMemStore()
	seedCorrelation(t, store, storedAddress(), "cart-1", "user-1", time.Now())

	c := NewCorrelator(store, logger.Nop{})

	inv := &Invoke{
		Name:      payment.OperationComplete,
		RelatesTo: storedAddress(),
	}

	res, err := c.Resolve(context.Background(), inv)
	require.NoError(t, err)

	assert.Equal(t, "Jane", res.Address.User.Name)
	assert.False(t, res.Address.UseAuth, "no synthesis needed when the channel sent the user")
}

func TestCorrelatorResolveNotFound(t *testing.T) {
	store := newMemStore()
	c := NewCorrelator(store, logger.Nop{})

	inv := &Invoke{
		Name: payment.OperationComplete,
		RelatesTo: conversation.Address{
			ChannelID:      conversation.PublicChannelID,
			ConversationID: "conv-unknown",
		},
	}

	_, err := c.Resolve(context.Background(), inv)
	assert.ErrorIs(t, err, payment.ErrCorrelationNotFound)
	assert.Equal(t, 0, store.writes, "a failed lookup must not write")
}

func TestCorrelatorResolveExpired(t *testing.T) {
	store := newMemStore()
	addr := storedAddress()
	seedCorrelation(t, store, addr, "cart-1", "user-1", time.Now())
	writesAfterSeed := store.writes

	c := NewCorrelator(store, logger.Nop{})
	c.now = func() time.Time { return time.Now().Add(RequestValidity + time.Hour) }

	inv := &Invoke{Name: payment.OperationComplete, RelatesTo: addr}

	_, err := c.Resolve(context.Background(), inv)
	assert.ErrorIs(t, err, payment.ErrCorrelationNotFound)

	// the stale entry is gone: a retry also resolves to not-found
	assert.Equal(t, writesAfterSeed+1, store.writes)
	data, gerr := store.GetData(context.Background(), addr)
	require.NoError(t, gerr)
	assert.Empty(t, data.ConversationData[CartIDKey])
	assert.Empty(t, data.ConversationData["cart-1"])
	assert.Empty(t, data.ConversationData[IssuedKey("cart-1")])
}

func TestCorrelatorResolveNoIssueTimestamp(t *testing.T) {
	store := newMemStore()
	addr := storedAddress()

	data := conversation.NewBotData()
	data.ConversationData[CartIDKey] = "cart-1"
	data.ConversationData["cart-1"] = "user-1"
	require.NoError(t, store.SetData(context.Background(), addr, data))

	c := NewCorrelator(store, logger.Nop{})
	c.now = func() time.Time { return time.Now().Add(RequestValidity + time.Hour) }

	res, err := c.Resolve(context.Background(), &Invoke{Name: payment.OperationComplete, RelatesTo: addr})
	require.NoError(t, err, "entries without an issue time stay valid")
	assert.Equal(t, "cart-1", res.CartID)
}
