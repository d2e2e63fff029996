package domain

// LineItem is one cart line. Two lines never share the same (Name, Label)
// pair; quantity reaching zero removes the line instead.
type LineItem struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	Quantity int     `json:"qty"`
}

// Subtotal returns quantity times unit price for this line.
func (li LineItem) Subtotal() float64 {
	return float64(li.Quantity) * li.Price
}

// SameKey reports whether this line identifies the same cart entry.
func (li LineItem) SameKey(name, label string) bool {
	return li.Name == name && li.Label == label
}

// CartTotals is the derived summary of a cart.
type CartTotals struct {
	ItemCount int     `json:"item_count"`
	Amount    float64 `json:"amount"`
}
