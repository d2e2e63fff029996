// Package pending tracks the "order handed off but not yet confirmed" flag
// across the navigation-away/return cycle to the messaging app.
package pending

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/rasoilabs/menucart/internal/bus"
	"github.com/rasoilabs/menucart/internal/cart"
	"github.com/rasoilabs/menucart/internal/storage"
)

var flagValue = []byte("true")

// Tracker owns the durable pending-order flag. The flag is set right before
// the hand-off and cleared only on explicit confirmation, because delivery
// success is otherwise unobservable.
type Tracker struct {
	mu   sync.Mutex
	key  string
	slot storage.SlotStore
	cart *cart.Store
	bus  *bus.Bus

	// promptShown debounces repeated visibility events so the confirmation
	// prompt never stacks.
	promptShown bool
}

func New(key string, slot storage.SlotStore, cartStore *cart.Store, b *bus.Bus) *Tracker {
	return &Tracker{key: key, slot: slot, cart: cartStore, bus: b}
}

// MarkPending durably sets the flag. Called immediately before the hand-off.
func (t *Tracker) MarkPending(ctx context.Context) error {
	if err := t.slot.Set(ctx, t.key, flagValue); err != nil {
		return fmt.Errorf("failed to set pending flag: %w", err)
	}
	return nil
}

// Pending reports whether a hand-off was initiated but not yet confirmed.
func (t *Tracker) Pending(ctx context.Context) bool {
	data, err := t.slot.Get(ctx, t.key)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return false
	}
	if err != nil {
		log.Printf("failed to read pending flag: %v", err)
		return false
	}
	return string(data) == string(flagValue)
}

// OnReturnToApp fires when the host environment becomes visible again. It
// returns true when the confirmation prompt was raised; repeat calls while
// the prompt is up are absorbed.
func (t *Tracker) OnReturnToApp(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.promptShown || !t.Pending(ctx) {
		return false
	}
	t.promptShown = true
	t.bus.Publish(bus.EventConfirmPrompt, nil)
	return true
}

// ConfirmSent finalizes the order: clears the cart, clears the flag and
// announces success.
func (t *Tracker) ConfirmSent(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cart.Clear(ctx); err != nil {
		return err
	}
	if err := t.slot.Delete(ctx, t.key); err != nil {
		return fmt.Errorf("failed to clear pending flag: %w", err)
	}
	t.promptShown = false
	t.bus.Publish(bus.EventOrderSuccess, nil)
	return nil
}

// ConfirmNotSent dismisses the prompt only; cart and flag stay put so the
// customer can retry checkout.
func (t *Tracker) ConfirmNotSent() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.promptShown = false
}
