package cart

import (
	"encoding/json"
	"fmt"

	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
)

// DataKey is the private conversation data key the cart is stored under
const DataKey = "cart"

// Line represents one entry of a shopping cart
type Line struct {
	Product  catalog.Product `json:"product"`
	Variant  catalog.Variant `json:"variant"`
	Quantity int             `json:"quantity"`
}

// Cart is the ordered sequence of lines a user has picked. It lives in the
// private conversation data and is cleared on successful checkout or reset.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Load reads the cart from private conversation data. A missing entry
// yields an empty cart.
func Load(private map[string]string) (*Cart, error) {
	raw, ok := private[DataKey]
	if !ok || raw == "" {
		return &Cart{}, nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("failed to decode stored cart: %w", err)
	}
	return &c, nil
}

// Save writes the cart back to private conversation data
func (c *Cart) Save(private map[string]string) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	private[DataKey] = string(raw)
	return nil
}

// Clear removes the cart from private conversation data
func Clear(private map[string]string) {
	delete(private, DataKey)
}

// Add appends a line for the given product variant, merging quantities when
// the variant is already in the cart
func (c *Cart) Add(product catalog.Product, variant catalog.Variant, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].Variant.ID == variant.ID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: product, Variant: variant, Quantity: quantity})
}

// Remove drops the line holding the given variant id. It reports whether a
// line was removed.
func (c *Cart) Remove(variantID string) bool {
	for i := range c.Lines {
		if c.Lines[i].Variant.ID == variantID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Size returns the number of lines in the cart
func (c *Cart) Size() int {
	return len(c.Lines)
}
