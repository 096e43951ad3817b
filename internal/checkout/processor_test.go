package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

func TestTestProcessor(t *testing.T) {
	p := NewTestProcessor(logger.Nop{})

	req := builtRequest(t)
	resp := &payment.Response{
		MethodName:      payment.MethodName,
		ShippingAddress: validUSAddress(),
		ShippingOption:  "STANDARD",
	}

	result, err := p.ProcessPayment(context.Background(), req, resp)
	require.NoError(t, err)

	assert.NotEmpty(t, result.OrderID)
	assert.Equal(t, payment.MethodName, result.MethodName)
	assert.Equal(t, "STANDARD", result.ShippingOption)
	assert.Equal(t, "WA", result.ShippingAddress.Region)
}

func TestGatewayProcessor(t *testing.T) {
	var received chargeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(chargeReply{OrderID: "order-42"})
	}))
	defer server.Close()

	p, err := NewGatewayProcessor(server.URL, "", "", logger.Nop{})
	require.NoError(t, err)

	req := builtRequest(t)
	resp := &payment.Response{MethodName: payment.MethodName, ShippingOption: "EXPRESS"}

	result, err := p.ProcessPayment(context.Background(), req, resp)
	require.NoError(t, err)

	assert.Equal(t, "order-42", result.OrderID)
	assert.Equal(t, "EXPRESS", result.ShippingOption)
	assert.Equal(t, req.ID, received.PaymentRequest.ID)
}

func TestGatewayProcessorDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(chargeReply{Message: "insufficient funds"})
	}))
	defer server.Close()

	p, err := NewGatewayProcessor(server.URL, "", "", logger.Nop{})
	require.NoError(t, err)

	_, err = p.ProcessPayment(context.Background(), builtRequest(t), &payment.Response{})
	require.Error(t, err)
	assert.Equal(t, "insufficient funds", err.Error(), "the gateway message is surfaced verbatim")
}
