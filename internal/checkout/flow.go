// Package checkout is the state machine between a filled cart and the
// WhatsApp hand-off.
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/rasoilabs/menucart/internal/cart"
	"github.com/rasoilabs/menucart/internal/domain"
	"github.com/rasoilabs/menucart/internal/gate"
	"github.com/rasoilabs/menucart/internal/handoff"
	"github.com/rasoilabs/menucart/internal/pending"
)

type State string

const (
	StateIdle         State = "IDLE"
	StateCartReview   State = "CART_REVIEW"
	StateAddressEntry State = "ADDRESS_ENTRY"
	StateValidated    State = "VALIDATED"
	StateSubmitted    State = "SUBMITTED"
)

// Flow runs one checkout session. The draft lives only as long as the flow
// is out of Idle; Cancel throws it away with no persisted side effect.
type Flow struct {
	mu      sync.Mutex
	state   State
	draft   domain.OrderDraft
	cart    *cart.Store
	gate    *gate.Gate
	tracker *pending.Tracker
	sender  handoff.Sender

	whatsappNumber string
	minimumOrder   float64
	baseURL        string
}

func New(cartStore *cart.Store, g *gate.Gate, tracker *pending.Tracker, sender handoff.Sender, whatsappNumber string, minimumDeliveryOrder float64) *Flow {
	return &Flow{
		state:          StateIdle,
		cart:           cartStore,
		gate:           g,
		tracker:        tracker,
		sender:         sender,
		whatsappNumber: whatsappNumber,
		minimumOrder:   minimumDeliveryOrder,
		baseURL:        handoff.DefaultBaseURL,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Begin opens the checkout. It refuses when the restaurant is closed or the
// cart holds nothing worth ordering, and always starts from a Dine-In draft
// with any previously entered address discarded.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return ErrIllegalTransition
	}
	if !f.gate.Open() {
		return gate.ErrClosed
	}
	totals := f.cart.Totals()
	if totals.ItemCount == 0 {
		return ErrEmptyCart
	}
	if totals.Amount <= 0 {
		return ErrInvalidTotal
	}

	f.draft = domain.OrderDraft{OrderType: domain.OrderTypeDineIn}
	f.state = StateCartReview
	return nil
}

// SelectOrderType toggles the address step. Switching away from Delivery
// force-resets the entered address; it is not kept for re-selection.
func (f *Flow) SelectOrderType(t domain.OrderType) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateCartReview, StateAddressEntry, StateValidated:
	default:
		return ErrIllegalTransition
	}

	f.draft.OrderType = t
	if t == domain.OrderTypeDelivery {
		f.state = StateAddressEntry
	} else {
		f.draft.DeliveryAddress = ""
		f.state = StateCartReview
	}
	return nil
}

func (f *Flow) SetCustomerName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.CustomerName = strings.TrimSpace(name)
}

func (f *Flow) SetDeliveryAddress(address string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.DeliveryAddress = strings.TrimSpace(address)
}

func (f *Flow) Draft() domain.OrderDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Validate runs the precedence chain and moves to Validated on success.
// The first failing check stops the chain; one error at a time.
func (f *Flow) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.validateLocked(); err != nil {
		return err
	}
	f.state = StateValidated
	return nil
}

func (f *Flow) validateLocked() error {
	if !f.gate.Open() {
		return gate.ErrClosed
	}

	items := f.cart.Items()
	if len(items) == 0 {
		return ErrEmptyCart
	}
	total := f.cart.Totals().Amount
	if total <= 0 {
		return ErrInvalidTotal
	}
	if f.draft.CustomerName == "" {
		return ErrMissingName
	}
	if f.draft.OrderType == domain.OrderTypeDelivery {
		if f.minimumOrder > 0 && total < f.minimumOrder {
			return ErrBelowMinimum
		}
		if f.draft.DeliveryAddress == "" {
			return ErrMissingAddress
		}
	}
	return nil
}

// Submit validates, durably marks the order pending, composes the message
// and hands the link off. The cart is deliberately not cleared here; that
// waits for the customer to confirm the message actually went out.
func (f *Flow) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateIdle || f.state == StateSubmitted {
		return "", ErrIllegalTransition
	}
	if err := f.validateLocked(); err != nil {
		return "", err
	}

	if err := f.tracker.MarkPending(ctx); err != nil {
		return "", err
	}

	message := BuildOrderMessage(f.cart.Items(), f.draft, f.cart.Totals().Amount)
	link := handoff.BuildLink(f.baseURL, f.whatsappNumber, message)
	if err := f.sender.Send(ctx, link); err != nil {
		return "", err
	}

	f.state = StateSubmitted
	return link, nil
}

// Cancel discards the draft and returns to Idle.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = domain.OrderDraft{}
	f.state = StateIdle
}
