package checkout

import (
	"context"
	"fmt"

	"github.com/hugohenrick/commerce-assistant/internal/domain/payment"
	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// RateService quotes shipping options and tax for a validated address. The
// default implementation ships static rates; a remote quoting service can be
// plugged in without touching the calculator.
type RateService interface {
	// ShippingOptions returns the ordered options available for an address
	ShippingOptions(ctx context.Context, addr payment.Address, currency string) ([]payment.ShippingOption, error)

	// Tax returns the tax owed on the goods subtotal for an address
	Tax(ctx context.Context, addr payment.Address, subtotal float64) (float64, error)
}

// StaticRateService quotes fixed shipping rates and a flat tax rate
type StaticRateService struct{}

// Fixed rates of the static quote service
const (
	standardShippingPrice = 1.00
	expressShippingPrice  = 5.00
	salesTaxRate          = 0.0875
)

// ShippingOptions implements RateService with two fixed options, cheapest first
func (StaticRateService) ShippingOptions(ctx context.Context, addr payment.Address, currency string) ([]payment.ShippingOption, error) {
	return []payment.ShippingOption{
		{
			ID:     "STANDARD",
			Label:  "Standard Shipping (3-5 business days)",
			Amount: payment.NewAmount(currency, standardShippingPrice),
		},
		{
			ID:     "EXPRESS",
			Label:  "Express Shipping (1-2 business days)",
			Amount: payment.NewAmount(currency, expressShippingPrice),
		},
	}, nil
}

// Tax implements RateService with a flat sales tax rate
func (StaticRateService) Tax(ctx context.Context, addr payment.Address, subtotal float64) (float64, error) {
	return subtotal * salesTaxRate, nil
}

// supportedCountries is the address-validation policy: orders only ship to
// these countries
var supportedCountries = map[string]bool{
	"US": true,
}

// Calculator recomputes tax, shipping cost and totals of a payment request
// for a candidate address and shipping option. It holds no mutable state, so
// concurrent invoke events can calculate independently.
type Calculator struct {
	rates  RateService
	logger logger.Logger
}

// NewCalculator creates a Calculator backed by the given rate service
func NewCalculator(rates RateService, log logger.Logger) *Calculator {
	return &Calculator{rates: rates, logger: log}
}

// ValidateAndCalculate validates the address and option and returns an
// updated copy of the request. The input request is never mutated.
//
// Without an address the request comes back unchanged: no shipping options
// can be offered and the placeholder items stay pending. With a valid
// address the display items are rebuilt with real shipping and tax values
// and the total becomes the sum of the non-pending items. An explicit
// option must be among the options valid for the address; when none is
// given the cheapest option is selected.
func (c *Calculator) ValidateAndCalculate(ctx context.Context, req *payment.Request, addr *payment.Address, optionID string) (*payment.Request, error) {
	out := req.Clone()

	if addr == nil {
		return out, nil
	}

	if err := validateAddress(*addr); err != nil {
		return nil, err
	}

	currency := req.Details.Total.Amount.Currency

	options, err := c.rates.ShippingOptions(ctx, *addr, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to quote shipping options: %w", err)
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: no shipping options available for this address", payment.ErrAddressInvalid)
	}

	selected := 0
	if optionID != "" {
		selected = -1
		for i := range options {
			if options[i].ID == optionID {
				selected = i
				break
			}
		}
		if selected < 0 {
			return nil, fmt.Errorf("%w: %s", payment.ErrShippingOptionInvalid, optionID)
		}
	}
	options[selected].Selected = true
	shippingCost := options[selected].Amount.Number()

	// goods subtotal: every display item that is not a placeholder
	subtotal := 0.0
	items := make([]payment.Item, 0, len(out.Details.DisplayItems))
	for _, item := range out.Details.DisplayItems {
		if item.Label == shippingLabel || item.Label == taxLabel {
			continue
		}
		subtotal += item.Amount.Number()
		items = append(items, item)
	}

	tax, err := c.rates.Tax(ctx, *addr, subtotal)
	if err != nil {
		return nil, fmt.Errorf("failed to quote tax: %w", err)
	}

	items = append(items,
		payment.Item{Label: shippingLabel, Amount: payment.NewAmount(currency, shippingCost)},
		payment.Item{Label: taxLabel, Amount: payment.NewAmount(currency, tax)},
	)

	out.Details.DisplayItems = items
	out.Details.ShippingOptions = options
	out.Details.Total = payment.Item{
		Label:  totalLabel,
		Amount: payment.NewAmount(currency, subtotal+shippingCost+tax),
	}

	c.logger.Debug("Recalculated payment request",
		"request_id", out.ID,
		"region", addr.Region,
		"option", options[selected].ID,
		"total", out.Details.Total.Amount.Value)

	return out, nil
}

// validateAddress applies the address-validation policy. The returned error
// messages are shown to the user as-is.
func validateAddress(addr payment.Address) error {
	if addr.Region == "" {
		return fmt.Errorf("%w: a state or region is required", payment.ErrAddressInvalid)
	}
	if !supportedCountries[addr.Country] {
		return fmt.Errorf("%w: sorry, we only ship to the US", payment.ErrAddressInvalid)
	}
	return nil
}
