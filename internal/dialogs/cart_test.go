package dialogs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/internal/checkout"
	"github.com/hugohenrick/commerce-assistant/internal/domain/cart"
	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
	"github.com/hugohenrick/commerce-assistant/internal/domain/conversation"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/dialog"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/recognizer"
)

// fakeCatalog serves a single shirt product
type fakeCatalog struct{}

func shirt() *catalog.Product {
	return &catalog.Product{
		ID:       "prod-1",
		Name:     "Classic White T-Shirt",
		Category: "shirts",
		Currency: "USD",
		Price:    19.99,
		Promoted: true,
		Variants: []catalog.Variant{{ID: "prod-1-m", Size: "M", Price: 19.99}},
	}
}

func (fakeCatalog) GetPromotedItem(ctx context.Context) (*catalog.Product, error) {
	return shirt(), nil
}

func (fakeCatalog) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"shirts"}, nil
}

func (fakeCatalog) ListByCategory(ctx context.Context, category string, limit, offset int) ([]catalog.Product, error) {
	return []catalog.Product{*shirt()}, nil
}

func (fakeCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	if id == "prod-1" {
		return shirt(), nil
	}
	return nil, catalog.ErrProductNotFound
}

func testDeps() Deps {
	log := logger.Nop{}
	engine := dialog.NewEngine(
		dialog.NewRegistry(log),
		dialog.NewIntentRouter([]recognizer.Recognizer{}, Confused, log),
		nil, nil, nil, log,
	)
	return Deps{
		Catalog: fakeCatalog{},
		Builder: checkout.BuilderConfig{MerchantID: "merchant-123"},
		Engine:  engine,
		Logger:  log,
	}
}

func testSession(withUser bool) *dialog.Session {
	addr := conversation.Address{
		ChannelID:      conversation.PublicChannelID,
		ConversationID: "conv-1",
	}
	if withUser {
		addr.User = &conversation.ChannelAccount{ID: "user-1"}
	}
	return &dialog.Session{Address: addr, Data: conversation.NewBotData()}
}

func cartWithShirt(t *testing.T, s *dialog.Session) {
	t.Helper()
	p := shirt()
	c := &cart.Cart{}
	c.Add(*p, p.DefaultVariant(), 1)
	require.NoError(t, c.Save(s.Data.PrivateConversationData))
}

func TestShowCartArmsCheckout(t *testing.T) {
	deps := testDeps()
	s := testSession(true)
	cartWithShirt(t, s)

	err := showCartDialog(deps).Begin(context.Background(), s, nil)
	require.NoError(t, err)

	// the correlation token is written when the payment UI is offered
	cartID := s.Data.ConversationData[checkout.CartIDKey]
	require.NotEmpty(t, cartID)
	assert.Equal(t, "user-1", s.Data.ConversationData[cartID])

	issued, err := time.Parse(time.RFC3339, s.Data.ConversationData[checkout.IssuedKey(cartID)])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), issued, time.Minute)

	replies := s.Replies()
	require.Len(t, replies, 2, "cart message plus the confirm prompt")
	require.NotEmpty(t, replies[0].Attachments)

	var paymentButton *dialog.CardAction
	for i, b := range replies[0].Attachments[0].Buttons {
		if b.Type == payment.ActionType {
			paymentButton = &replies[0].Attachments[0].Buttons[i]
		}
	}
	require.NotNil(t, paymentButton, "the cart card carries the payment action")

	req, ok := paymentButton.Value.(*payment.Request)
	require.True(t, ok)
	assert.Equal(t, cartID, req.ID)
	assert.Equal(t, "19.99", req.Details.Total.Amount.Value)
}

func TestShowCartEmptyRedirects(t *testing.T) {
	deps := testDeps()
	s := testSession(true)

	err := showCartDialog(deps).Begin(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Empty(t, s.Data.ConversationData[checkout.CartIDKey])
	require.NotEmpty(t, s.Replies())
	assert.Contains(t, s.Replies()[0].Text, "empty")
}

func TestShowCartWithoutUser(t *testing.T) {
	deps := testDeps()
	s := testSession(false)
	cartWithShirt(t, s)

	err := showCartDialog(deps).Begin(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Empty(t, s.Data.ConversationData[checkout.CartIDKey], "no checkout without a user identity")
}

func TestReceiptDialogClearsCart(t *testing.T) {
	deps := testDeps()
	s := testSession(true)
	cartWithShirt(t, s)

	req, err := checkout.BuildPaymentRequest(deps.Builder, "cart-1", shirt())
	require.NoError(t, err)

	charge := &payment.ChargeResult{
		OrderID:    "order-42",
		MethodName: payment.MethodName,
		ShippingAddress: payment.Address{
			AddressLine: "1 Microsoft Way", City: "Redmond", Region: "WA", Country: "US",
		},
		ShippingOption: "STANDARD",
	}

	err = receiptDialog(deps).Begin(context.Background(), s, map[string]interface{}{
		"paymentRequest": req,
		"chargeResult":   charge,
	})
	require.NoError(t, err)

	loaded, err := cart.Load(s.Data.PrivateConversationData)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty(), "the paid cart is gone")

	require.Len(t, s.Replies(), 1)
	receipt := s.Replies()[0].Text
	assert.Contains(t, receipt, "order-42")
	assert.Contains(t, receipt, "Redmond, WA")
}

func TestReceiptDialogWithoutPaymentData(t *testing.T) {
	deps := testDeps()
	s := testSession(true)

	err := receiptDialog(deps).Begin(context.Background(), s, nil)
	assert.Error(t, err)
}

func TestFailedDialog(t *testing.T) {
	s := testSession(true)

	err := failedDialog().Begin(context.Background(), s, map[string]interface{}{
		"errorMessage": "sorry, we only ship to the US",
	})
	require.NoError(t, err)

	require.Len(t, s.Replies(), 1)
	assert.Contains(t, s.Replies()[0].Text, "only ship to the US")
}
