package catalog

// Product represents a product in the catalog
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Currency    string    `json:"currency"`
	Price       float64   `json:"price"`
	Promoted    bool      `json:"promoted,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant represents a purchasable variation of a product
type Variant struct {
	ID       string  `json:"id"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

// DefaultVariant returns the first variant when the product has one, or a
// synthetic variant mirroring the product itself otherwise
func (p *Product) DefaultVariant() Variant {
	if len(p.Variants) > 0 {
		return p.Variants[0]
	}
	return Variant{ID: p.ID, Price: p.Price}
}
