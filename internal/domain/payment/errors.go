package payment

import "errors"

// Errors of the checkout flow. Address and shipping option errors are
// user-correctable and surfaced verbatim as failure-dialog messages;
// correlation errors mean the operation must be dropped without resuming a
// dialog.
var (
	// ErrCartIDMissing occurs when a payment request is built without a cart id
	ErrCartIDMissing = errors.New("cartId is missing")

	// ErrProductMissing occurs when a payment request is built without a product
	ErrProductMissing = errors.New("product is missing")

	// ErrProductIncomplete occurs when the product lacks name, price or currency
	ErrProductIncomplete = errors.New("product is missing name, price or currency")

	// ErrAddressInvalid occurs when a shipping address fails validation
	ErrAddressInvalid = errors.New("invalid shipping address")

	// ErrShippingOptionInvalid occurs when a selected shipping option is not
	// among the options valid for the address
	ErrShippingOptionInvalid = errors.New("invalid shipping option")

	// ErrCorrelationNotFound occurs when an invoke event cannot be matched to
	// a stored payment flow
	ErrCorrelationNotFound = errors.New("no payment in progress for this conversation")
)
