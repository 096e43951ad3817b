package payment

import "strconv"

// Payment protocol constants
const (
	// MethodName is the single payment method descriptor accepted by the bot
	MethodName = "https://pay.microsoft.com/microsoftpay"

	// ActionType marks a card action that opens the client payment UI
	ActionType = "payment"

	// TestMode is the method data mode used when live payments are disabled
	TestMode = "TEST"

	// RequestValidity is the advisory validity window of a payment request
	// (d.hh:mm:ss), 1 day
	RequestValidity = "1.00:00:00"
)

// Invoke operation names sent by the client payment UI
const (
	OperationUpdateShippingAddress = "payments/update/shippingAddress"
	OperationUpdateShippingOption  = "payments/update/shippingOption"
	OperationComplete              = "payments/complete"
)

// Amount is a currency and a value formatted with two decimal places
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// NewAmount formats a numeric value as an Amount
func NewAmount(currency string, value float64) Amount {
	return Amount{Currency: currency, Value: strconv.FormatFloat(value, 'f', 2, 64)}
}

// Number parses the amount value back to a float
func (a Amount) Number() float64 {
	v, _ := strconv.ParseFloat(a.Value, 64)
	return v
}

// Item is one line of a payment breakdown (product, shipping, tax). A
// pending item holds a placeholder value awaiting more information, such as
// a shipping address.
type Item struct {
	Label   string `json:"label"`
	Amount  Amount `json:"amount"`
	Pending bool   `json:"pending,omitempty"`
}

// ShippingOption is one way of delivering the order, priced for a
// validated address
type ShippingOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Amount   Amount `json:"amount"`
	Selected bool   `json:"selected,omitempty"`
}

// MethodData describes an accepted payment method
type MethodData struct {
	SupportedMethods []string      `json:"supportedMethods"`
	Data             MethodOptions `json:"data"`
}

// MethodOptions carries the merchant configuration of a payment method
type MethodOptions struct {
	Mode              string   `json:"mode,omitempty"`
	MerchantID        string   `json:"merchantId"`
	SupportedNetworks []string `json:"supportedNetworks"`
	SupportedTypes    []string `json:"supportedTypes"`
}

// Details is the monetary breakdown of a payment request
type Details struct {
	Total           Item             `json:"total"`
	DisplayItems    []Item           `json:"displayItems"`
	ShippingOptions []ShippingOption `json:"shippingOptions"`
}

// Options are the payer information requirements of a payment request
type Options struct {
	RequestPayerName  bool   `json:"requestPayerName"`
	RequestPayerEmail bool   `json:"requestPayerEmail"`
	RequestPayerPhone bool   `json:"requestPayerPhone"`
	RequestShipping   bool   `json:"requestShipping"`
	ShippingType      string `json:"shippingType"`
}

// Address is a shipping address as entered in the client payment UI
type Address struct {
	Recipient   string `json:"recipient,omitempty"`
	AddressLine string `json:"addressLine,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Format renders the address as a single display line
func (a Address) Format() string {
	parts := []string{a.AddressLine, a.City, a.Region, a.Country}
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

// Request is the structured payment request offered to the client. Once
// sent it is immutable except for the fields the calculator recomputes
// (total, display items, shipping options) in response to address or option
// changes.
type Request struct {
	ID         string       `json:"id"`
	Expires    string       `json:"expires"`
	MethodData []MethodData `json:"methodData"`
	Details    Details      `json:"details"`
	Options    Options      `json:"options"`

	// Populated by the client on shipping update events
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
	ShippingOption  string   `json:"shippingOption,omitempty"`
}

// Clone returns a deep copy of the request. The calculator works on copies
// so a rejected calculation never mutates the caller's request.
func (r *Request) Clone() *Request {
	out := *r

	out.MethodData = make([]MethodData, len(r.MethodData))
	for i, m := range r.MethodData {
		out.MethodData[i] = m
		out.MethodData[i].Data.SupportedNetworks = append([]string(nil), m.Data.SupportedNetworks...)
		out.MethodData[i].Data.SupportedTypes = append([]string(nil), m.Data.SupportedTypes...)
	}

	out.Details.DisplayItems = append(r.Details.DisplayItems[:0:0], r.Details.DisplayItems...)
	out.Details.ShippingOptions = append(r.Details.ShippingOptions[:0:0], r.Details.ShippingOptions...)

	if r.ShippingAddress != nil {
		addr := *r.ShippingAddress
		out.ShippingAddress = &addr
	}

	return &out
}

// Response is the payer's answer to a payment request, delivered with the
// complete operation
type Response struct {
	MethodName      string            `json:"methodName"`
	Details         map[string]string `json:"details,omitempty"`
	ShippingAddress *Address          `json:"shippingAddress,omitempty"`
	ShippingOption  string            `json:"shippingOption,omitempty"`
	PayerName       string            `json:"payerName,omitempty"`
	PayerEmail      string            `json:"payerEmail,omitempty"`
	PayerPhone      string            `json:"payerPhone,omitempty"`
}

// CompletePayload is the invoke value of the complete operation
type CompletePayload struct {
	PaymentRequest  Request  `json:"paymentRequest"`
	PaymentResponse Response `json:"paymentResponse"`
}

// ChargeResult is produced by a successful charge and consumed once by the
// receipt dialog
type ChargeResult struct {
	OrderID         string  `json:"orderId"`
	MethodName      string  `json:"methodName"`
	ShippingAddress Address `json:"shippingAddress"`
	ShippingOption  string  `json:"shippingOption"`
}
