package pending

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasoilabs/menucart/internal/bus"
	"github.com/rasoilabs/menucart/internal/cart"
	"github.com/rasoilabs/menucart/internal/storage"
)

func setupTracker(t *testing.T) (*Tracker, *cart.Store, *bus.Bus, *storage.MemoryStore) {
	slot := storage.NewMemoryStore()
	b := bus.New()
	cartStore, err := cart.New(context.Background(), "cart:test", slot, b)
	require.NoError(t, err)
	return New("pending:test", slot, cartStore, b), cartStore, b, slot
}

func TestMarkPending_SurvivesReload(t *testing.T) {
	tracker, cartStore, b, slot := setupTracker(t)
	ctx := context.Background()

	assert.False(t, tracker.Pending(ctx))
	require.NoError(t, tracker.MarkPending(ctx))
	assert.True(t, tracker.Pending(ctx))

	// A fresh tracker over the same slot sees the flag, like a page reload.
	reloaded := New("pending:test", slot, cartStore, b)
	assert.True(t, reloaded.Pending(ctx))
}

func TestOnReturnToApp_PromptsExactlyOnce(t *testing.T) {
	tracker, _, b, _ := setupTracker(t)
	ctx := context.Background()

	prompts := 0
	b.Subscribe(bus.EventConfirmPrompt, func(any) { prompts++ })

	require.NoError(t, tracker.MarkPending(ctx))

	assert.True(t, tracker.OnReturnToApp(ctx))
	assert.False(t, tracker.OnReturnToApp(ctx), "repeat visibility events are absorbed")
	assert.False(t, tracker.OnReturnToApp(ctx))
	assert.Equal(t, 1, prompts)
}

func TestOnReturnToApp_NoFlagNoPrompt(t *testing.T) {
	tracker, _, b, _ := setupTracker(t)

	prompts := 0
	b.Subscribe(bus.EventConfirmPrompt, func(any) { prompts++ })

	assert.False(t, tracker.OnReturnToApp(context.Background()))
	assert.Zero(t, prompts)
}

func TestConfirmSent_ClearsCartAndFlag(t *testing.T) {
	tracker, cartStore, b, _ := setupTracker(t)
	ctx := context.Background()

	successes := 0
	b.Subscribe(bus.EventOrderSuccess, func(any) { successes++ })

	require.NoError(t, cartStore.Add(ctx, "Pizza", "Large", 300))
	require.NoError(t, tracker.MarkPending(ctx))
	assert.True(t, tracker.OnReturnToApp(ctx))

	require.NoError(t, tracker.ConfirmSent(ctx))

	assert.Empty(t, cartStore.Items())
	assert.False(t, tracker.Pending(ctx))
	assert.Equal(t, 1, successes, "exactly one success acknowledgment")

	// Debounce is reset; a later order can prompt again.
	require.NoError(t, tracker.MarkPending(ctx))
	assert.True(t, tracker.OnReturnToApp(ctx))
}

func TestConfirmNotSent_KeepsCartAndFlag(t *testing.T) {
	tracker, cartStore, _, _ := setupTracker(t)
	ctx := context.Background()

	require.NoError(t, cartStore.Add(ctx, "Pizza", "Large", 300))
	require.NoError(t, tracker.MarkPending(ctx))
	assert.True(t, tracker.OnReturnToApp(ctx))

	tracker.ConfirmNotSent()

	assert.Equal(t, 1, cartStore.Totals().ItemCount, "cart untouched for retry")
	assert.True(t, tracker.Pending(ctx))
	assert.True(t, tracker.OnReturnToApp(ctx), "prompt can show again after dismissal")
}
