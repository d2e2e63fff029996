package checkout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rasoilabs/menucart/internal/domain"
)

// BuildOrderMessage composes the order text handed to the messaging app.
// Field order, labels and the "Rs" prefix are the contract with the
// restaurant reading the message; do not rearrange.
func BuildOrderMessage(items []domain.LineItem, draft domain.OrderDraft, total float64) string {
	var b strings.Builder
	b.WriteString("New Order\n\n")

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s (%s) x %d = Rs %s\n",
			i+1, item.Name, item.Label, item.Quantity, formatAmount(item.Subtotal()))
	}

	fmt.Fprintf(&b, "\nTotal: Rs %s\n", formatAmount(total))
	fmt.Fprintf(&b, "Customer: %s\n", draft.CustomerName)
	fmt.Fprintf(&b, "Order Type: %s\n", draft.OrderType)

	if draft.OrderType == domain.OrderTypeDelivery {
		fmt.Fprintf(&b, "Address: %s\n", draft.DeliveryAddress)
	}

	return b.String()
}

// formatAmount renders amounts without trailing zeros, so whole-rupee
// values print as "300", not "300.00".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
