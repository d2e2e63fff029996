// Package cart owns the ordered list of line items and mirrors every
// mutation to a durable slot.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rasoilabs/menucart/internal/bus"
	"github.com/rasoilabs/menucart/internal/domain"
	"github.com/rasoilabs/menucart/internal/storage"
)

var ErrIndexOutOfRange = errors.New("cart index out of range")

// Store is the single owner of cart state. It knows nothing about opening
// hours; gating happens around it, not inside it.
type Store struct {
	mu    sync.Mutex
	key   string
	slot  storage.SlotStore
	bus   *bus.Bus
	items []domain.LineItem
}

// New builds a store and loads the persisted snapshot. An absent slot means
// an empty cart; a corrupt or unreadable snapshot is an error.
func New(ctx context.Context, key string, slot storage.SlotStore, b *bus.Bus) (*Store, error) {
	s := &Store{key: key, slot: slot, bus: b}

	data, err := slot.Get(ctx, key)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return s, nil
}

// Add merges into the existing line with the same (name, label) key or
// appends a new line with quantity 1.
func (s *Store) Add(ctx context.Context, name, label string, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameKey(name, label) {
			s.items[i].Quantity++
			return s.persist(ctx)
		}
	}
	s.items = append(s.items, domain.LineItem{
		Name:     name,
		Label:    label,
		Price:    price,
		Quantity: 1,
	})
	return s.persist(ctx)
}

// Decrement lowers a line's quantity by one, removing the line at zero.
// With an empty label it targets the last-inserted line matching the name,
// whichever variant that is. Absent lines are a no-op.
func (s *Store) Decrement(ctx context.Context, name, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Name != name {
			continue
		}
		if label != "" && s.items[i].Label != label {
			continue
		}
		s.items[i].Quantity--
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return s.persist(ctx)
	}
	return nil
}

// SetQuantity sets an absolute quantity for the line at the given position.
// A quantity of zero or below removes the line.
func (s *Store) SetQuantity(ctx context.Context, index, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return ErrIndexOutOfRange
	}
	if qty <= 0 {
		s.items = append(s.items[:index], s.items[index+1:]...)
	} else {
		s.items[index].Quantity = qty
	}
	return s.persist(ctx)
}

// Clear empties the cart and erases the durable snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.slot.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to erase cart snapshot: %w", err)
	}
	s.notify()
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Totals derives the item count and total amount.
func (s *Store) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

func (s *Store) totalsLocked() domain.CartTotals {
	var t domain.CartTotals
	for _, item := range s.items {
		t.ItemCount += item.Quantity
		t.Amount += item.Subtotal()
	}
	return t
}

// persist writes the full snapshot; callers hold the lock. The write
// completes before the mutation returns, so no read observes a torn state.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}
	s.notify()
	return nil
}

func (s *Store) notify() {
	if s.bus != nil {
		s.bus.Publish(bus.EventCartChanged, s.totalsLocked())
	}
}
