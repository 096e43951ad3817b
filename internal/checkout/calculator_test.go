package checkout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

func newTestCalculator() *Calculator {
	return NewCalculator(StaticRateService{}, logger.Nop{})
}

func validUSAddress() *payment.Address {
	return &payment.Address{
		Recipient:   "Jane Doe",
		AddressLine: "1 Microsoft Way",
		City:        "Redmond",
		Region:      "WA",
		PostalCode:  "98052",
		Country:     "US",
	}
}

func builtRequest(t *testing.T) *payment.Request {
	t.Helper()
	req, err := BuildPaymentRequest(BuilderConfig{MerchantID: "merchant-123"}, "cart-1", testProduct())
	require.NoError(t, err)
	return req
}

func TestValidateAndCalculateNoAddress(t *testing.T) {
	calc := newTestCalculator()
	req := builtRequest(t)

	out, err := calc.ValidateAndCalculate(context.Background(), req, nil, "")
	require.NoError(t, err)

	assert.Equal(t, req, out)
	assert.True(t, out.Details.Total.Pending)
	assert.Empty(t, out.Details.ShippingOptions)
}

func TestValidateAndCalculateValidAddress(t *testing.T) {
	calc := newTestCalculator()
	req := builtRequest(t)

	out, err := calc.ValidateAndCalculate(context.Background(), req, validUSAddress(), "")
	require.NoError(t, err)

	// 19.99 goods + 1.00 standard shipping + 8.75% tax on goods
	assert.Equal(t, "22.74", out.Details.Total.Amount.Value)
	assert.False(t, out.Details.Total.Pending)

	require.Len(t, out.Details.ShippingOptions, 2)
	assert.True(t, out.Details.ShippingOptions[0].Selected, "cheapest option selected by default")
	assert.Equal(t, "STANDARD", out.Details.ShippingOptions[0].ID)
	assert.False(t, out.Details.ShippingOptions[1].Selected)

	require.Len(t, out.Details.DisplayItems, 3)
	assert.Equal(t, "Shipping", out.Details.DisplayItems[1].Label)
	assert.Equal(t, "1.00", out.Details.DisplayItems[1].Amount.Value)
	assert.False(t, out.Details.DisplayItems[1].Pending)
	assert.Equal(t, "Sales Tax", out.Details.DisplayItems[2].Label)
	assert.Equal(t, "1.75", out.Details.DisplayItems[2].Amount.Value)
	assert.False(t, out.Details.DisplayItems[2].Pending)
}

func TestValidateAndCalculateExpressOption(t *testing.T) {
	calc := newTestCalculator()
	req := builtRequest(t)

	out, err := calc.ValidateAndCalculate(context.Background(), req, validUSAddress(), "EXPRESS")
	require.NoError(t, err)

	assert.Equal(t, "26.74", out.Details.Total.Amount.Value)
	assert.True(t, out.Details.ShippingOptions[1].Selected)
	assert.False(t, out.Details.ShippingOptions[0].Selected)
	assert.Equal(t, "5.00", out.Details.DisplayItems[1].Amount.Value)
}

func TestValidateAndCalculateInvalidOption(t *testing.T) {
	calc := newTestCalculator()
	req := builtRequest(t)

	_, err := calc.ValidateAndCalculate(context.Background(), req, validUSAddress(), "OVERNIGHT")
	assert.ErrorIs(t, err, payment.ErrShippingOptionInvalid)
}

func TestValidateAndCalculateInvalidAddress(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name string
		addr *payment.Address
	}{
		{"missing region", &payment.Address{Country: "US"}},
		{"unsupported country", &payment.Address{Region: "ON", Country: "CA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := builtRequest(t)
			before, merr := json.Marshal(req)
			require.NoError(t, merr)

			_, err := calc.ValidateAndCalculate(context.Background(), req, tt.addr, "")
			assert.ErrorIs(t, err, payment.ErrAddressInvalid)

			after, merr := json.Marshal(req)
			require.NoError(t, merr)
			assert.JSONEq(t, string(before), string(after), "rejected calculation must not mutate the input")
		})
	}
}

func TestValidateAndCalculateIdempotent(t *testing.T) {
	calc := newTestCalculator()
	req := builtRequest(t)
	addr := validUSAddress()

	first, err := calc.ValidateAndCalculate(context.Background(), req, addr, "EXPRESS")
	require.NoError(t, err)

	second, err := calc.ValidateAndCalculate(context.Background(), req, addr, "EXPRESS")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// recalculating an already-calculated request lands on the same totals
	again, err := calc.ValidateAndCalculate(context.Background(), first, addr, "EXPRESS")
	require.NoError(t, err)
	assert.Equal(t, first.Details.Total, again.Details.Total)
	assert.Equal(t, first.Details.DisplayItems, again.Details.DisplayItems)
}
