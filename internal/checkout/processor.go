package checkout

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
	"github.com/hugohenrick/commerce-assistant/pkg/pkcs12"
)

// TestProcessor approves every charge without talking to a gateway. Used
// when live payments are disabled.
type TestProcessor struct {
	logger logger.Logger
}

// NewTestProcessor creates the test-mode processor
func NewTestProcessor(log logger.Logger) *TestProcessor {
	return &TestProcessor{logger: log}
}

// ProcessPayment simulates a successful charge and returns a fresh order id
func (p *TestProcessor) ProcessPayment(ctx context.Context, req *payment.Request, resp *payment.Response) (*payment.ChargeResult, error) {
	result := &payment.ChargeResult{
		OrderID:        uuid.New().String(),
		MethodName:     resp.MethodName,
		ShippingOption: resp.ShippingOption,
	}
	if resp.ShippingAddress != nil {
		result.ShippingAddress = *resp.ShippingAddress
	}

	p.logger.Info("Processed test-mode payment",
		"cart_id", req.ID,
		"order_id", result.OrderID,
		"total", req.Details.Total.Amount.Value)

	return result, nil
}

// GatewayProcessor charges through the merchant payment gateway over HTTPS,
// authenticating with the merchant client certificate
type GatewayProcessor struct {
	client *http.Client
	url    string
	logger logger.Logger
}

// chargeRequest is the gateway wire format of a charge
type chargeRequest struct {
	PaymentRequest  *payment.Request  `json:"paymentRequest"`
	PaymentResponse *payment.Response `json:"paymentResponse"`
}

// chargeReply is the gateway wire format of a charge outcome
type chargeReply struct {
	OrderID string `json:"orderId"`
	Message string `json:"message,omitempty"`
}

// NewGatewayProcessor creates a processor for the given gateway URL. When a
// certificate file is configured it is loaded from PKCS#12 and presented as
// the TLS client certificate.
func NewGatewayProcessor(url, certFile, certPassword string, log logger.Logger) (*GatewayProcessor, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	if certFile != "" {
		pfxData, err := os.ReadFile(certFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read processor certificate: %w", err)
		}

		cert, err := pkcs12.ToTLSCertificate(pfxData, certPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to decode processor certificate: %w", err)
		}

		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
			},
		}
	}

	return &GatewayProcessor{client: client, url: url, logger: log}, nil
}

// ProcessPayment submits the charge to the gateway. Gateway failures are
// returned with the gateway's own message, which the failure dialog shows
// verbatim.
func (p *GatewayProcessor) ProcessPayment(ctx context.Context, req *payment.Request, resp *payment.Response) (*payment.ChargeResult, error) {
	body, err := json.Marshal(chargeRequest{PaymentRequest: req, PaymentResponse: resp})
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	var reply chargeReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("malformed gateway response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		if reply.Message != "" {
			return nil, fmt.Errorf("%s", reply.Message)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", httpResp.StatusCode)
	}

	result := &payment.ChargeResult{
		OrderID:        reply.OrderID,
		MethodName:     resp.MethodName,
		ShippingOption: resp.ShippingOption,
	}
	if resp.ShippingAddress != nil {
		result.ShippingAddress = *resp.ShippingAddress
	}

	p.logger.Info("Processed gateway payment", "cart_id", req.ID, "order_id", result.OrderID)

	return result, nil
}
