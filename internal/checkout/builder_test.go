package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
)

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:       "prod-1",
		Name:     "Classic White T-Shirt",
		Currency: "USD",
		Price:    19.99,
	}
}

func TestBuildPaymentRequest(t *testing.T) {
	cfg := BuilderConfig{MerchantID: "merchant-123"}

	req, err := BuildPaymentRequest(cfg, "cart-1", testProduct())
	require.NoError(t, err)

	assert.Equal(t, "cart-1", req.ID)
	assert.Equal(t, payment.RequestValidity, req.Expires)

	require.Len(t, req.MethodData, 1)
	assert.Equal(t, []string{payment.MethodName}, req.MethodData[0].SupportedMethods)
	assert.Equal(t, "merchant-123", req.MethodData[0].Data.MerchantID)
	assert.Equal(t, payment.TestMode, req.MethodData[0].Data.Mode)

	assert.Equal(t, "Total", req.Details.Total.Label)
	assert.Equal(t, "19.99", req.Details.Total.Amount.Value)
	assert.Equal(t, "USD", req.Details.Total.Amount.Currency)
	assert.True(t, req.Details.Total.Pending)

	require.Len(t, req.Details.DisplayItems, 3)
	assert.Equal(t, "Classic White T-Shirt", req.Details.DisplayItems[0].Label)
	assert.Equal(t, "19.99", req.Details.DisplayItems[0].Amount.Value)
	assert.False(t, req.Details.DisplayItems[0].Pending)

	for _, item := range req.Details.DisplayItems[1:] {
		assert.True(t, item.Pending, "placeholder item %q must be pending", item.Label)
		assert.Equal(t, "0.00", item.Amount.Value)
	}

	assert.NotNil(t, req.Details.ShippingOptions)
	assert.Empty(t, req.Details.ShippingOptions, "no shipping options before an address is known")

	assert.True(t, req.Options.RequestShipping)
	assert.Equal(t, "shipping", req.Options.ShippingType)
}

func TestBuildPaymentRequestLiveMode(t *testing.T) {
	cfg := BuilderConfig{MerchantID: "merchant-123", LiveMode: true}

	req, err := BuildPaymentRequest(cfg, "cart-1", testProduct())
	require.NoError(t, err)

	assert.Empty(t, req.MethodData[0].Data.Mode)
}

func TestBuildPaymentRequestValidation(t *testing.T) {
	cfg := BuilderConfig{MerchantID: "merchant-123"}

	_, err := BuildPaymentRequest(cfg, "", testProduct())
	assert.ErrorIs(t, err, payment.ErrCartIDMissing)

	_, err = BuildPaymentRequest(cfg, "cart-1", nil)
	assert.ErrorIs(t, err, payment.ErrProductMissing)

	incomplete := testProduct()
	incomplete.Currency = ""
	_, err = BuildPaymentRequest(cfg, "cart-1", incomplete)
	assert.ErrorIs(t, err, payment.ErrProductIncomplete)

	free := testProduct()
	free.Price = 0
	_, err = BuildPaymentRequest(cfg, "cart-1", free)
	assert.ErrorIs(t, err, payment.ErrProductIncomplete)
}
