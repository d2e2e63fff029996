package domain

import "errors"

var (
	ErrItemNotFound = errors.New("menu item not found")
	// ErrMissingPriceSelection is returned when an item carries several price
	// options and the caller did not say which one.
	ErrMissingPriceSelection = errors.New("price option not selected")
)

// Menu mirrors the menu.json document.
type Menu struct {
	Categories []Category `json:"categories"`
}

type Category struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

type MenuItem struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"` // "veg" or "non-veg"
	Prices      []PriceOption `json:"prices"`
	Description string        `json:"description,omitempty"`
}

type PriceOption struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// FindItem looks an item up by name across all categories.
func (m *Menu) FindItem(name string) (MenuItem, error) {
	for _, cat := range m.Categories {
		for _, item := range cat.Items {
			if item.Name == name {
				return item, nil
			}
		}
	}
	return MenuItem{}, ErrItemNotFound
}

// ResolvePrice picks the price option for the given label. Items with a
// single option resolve implicitly when label is empty; items with several
// options require an explicit label.
func (mi MenuItem) ResolvePrice(label string) (PriceOption, error) {
	if label == "" {
		if len(mi.Prices) == 1 {
			return mi.Prices[0], nil
		}
		return PriceOption{}, ErrMissingPriceSelection
	}
	for _, p := range mi.Prices {
		if p.Label == label {
			return p, nil
		}
	}
	return PriceOption{}, ErrMissingPriceSelection
}

// VegItems returns the items of the category with type "veg".
func (c Category) VegItems() []MenuItem {
	return c.filter("veg")
}

// NonVegItems returns the items of the category with type "non-veg".
func (c Category) NonVegItems() []MenuItem {
	return c.filter("non-veg")
}

func (c Category) filter(foodType string) []MenuItem {
	var out []MenuItem
	for _, item := range c.Items {
		if item.Type == foodType {
			out = append(out, item)
		}
	}
	return out
}
