package checkout

import (
	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
)

// Display item labels of the standard breakdown
const (
	totalLabel    = "Total"
	shippingLabel = "Shipping"
	taxLabel      = "Sales Tax"
)

// BuilderConfig carries the merchant settings a payment request is built with
type BuilderConfig struct {
	MerchantID string
	LiveMode   bool
}

// BuildPaymentRequest turns a cart id and a product into the payment request
// offered to the client. Shipping options start empty and the shipping and
// tax items are pending placeholders: none of them can be computed until an
// address is known. The function is deterministic and has no side effects.
func BuildPaymentRequest(cfg BuilderConfig, cartID string, product *catalog.Product) (*payment.Request, error) {
	if cartID == "" {
		return nil, payment.ErrCartIDMissing
	}
	if product == nil {
		return nil, payment.ErrProductMissing
	}
	if product.Name == "" || product.Currency == "" || product.Price <= 0 {
		return nil, payment.ErrProductIncomplete
	}

	mode := ""
	if !cfg.LiveMode {
		mode = payment.TestMode
	}

	methodData := []payment.MethodData{{
		SupportedMethods: []string{payment.MethodName},
		Data: payment.MethodOptions{
			Mode:              mode,
			MerchantID:        cfg.MerchantID,
			SupportedNetworks: []string{"visa", "mastercard"},
			SupportedTypes:    []string{"credit"},
		},
	}}

	details := payment.Details{
		Total: payment.Item{
			Label:   totalLabel,
			Amount:  payment.NewAmount(product.Currency, product.Price),
			Pending: true,
		},
		DisplayItems: []payment.Item{
			{
				Label:  product.Name,
				Amount: payment.NewAmount(product.Currency, product.Price),
			},
			{
				Label:   shippingLabel,
				Amount:  payment.Amount{Currency: product.Currency, Value: "0.00"},
				Pending: true,
			},
			{
				Label:   taxLabel,
				Amount:  payment.Amount{Currency: product.Currency, Value: "0.00"},
				Pending: true,
			},
		},
		// no shipping options until an address is selected
		ShippingOptions: []payment.ShippingOption{},
	}

	options := payment.Options{
		RequestPayerName:  true,
		RequestPayerEmail: true,
		RequestPayerPhone: true,
		RequestShipping:   true,
		ShippingType:      "shipping",
	}

	return &payment.Request{
		ID:         cartID,
		Expires:    payment.RequestValidity,
		MethodData: methodData,
		Details:    details,
		Options:    options,
	}, nil
}
