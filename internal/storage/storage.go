// Package storage provides the durable slot store the cart and the pending
// order flag are mirrored into. A slot is a single named value overwritten
// wholesale on every write, the server-side stand-in for a localStorage key.
package storage

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by Get when the slot has never been written
// (or has been deleted). An absent slot means empty state, not failure.
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is defined by its consumers, not by any backend.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
