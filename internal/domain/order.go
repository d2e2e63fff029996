package domain

import "fmt"

// OrderType is how the customer wants the order fulfilled. The string values
// appear verbatim in the outgoing order message.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "Dine-In"
	OrderTypeDelivery OrderType = "Delivery"
)

func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeDineIn, OrderTypeDelivery:
		return OrderType(s), nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

// OrderDraft holds what the customer typed into the checkout form. It lives
// for one checkout session only and is never persisted.
type OrderDraft struct {
	OrderType       OrderType
	CustomerName    string
	DeliveryAddress string
}
