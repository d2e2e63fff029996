package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "cart:1")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	require.NoError(t, s.Set(ctx, "cart:1", []byte(`[{"name":"Pizza"}]`)))
	got, err := s.Get(ctx, "cart:1")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Pizza"}]`, string(got))

	require.NoError(t, s.Delete(ctx, "cart:1"))
	_, err = s.Get(ctx, "cart:1")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Deleting an absent slot is fine.
	require.NoError(t, s.Delete(ctx, "cart:1"))
}

func TestMemoryStore_CopiesValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, "pending:abc")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	require.NoError(t, s.Set(ctx, "pending:abc", []byte("true")))
	got, err := s.Get(ctx, "pending:abc")
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))

	// Overwrite wholesale.
	require.NoError(t, s.Set(ctx, "pending:abc", []byte("false")))
	got, err = s.Get(ctx, "pending:abc")
	require.NoError(t, err)
	assert.Equal(t, "false", string(got))

	require.NoError(t, s.Delete(ctx, "pending:abc"))
	_, err = s.Get(ctx, "pending:abc")
	assert.ErrorIs(t, err, ErrSlotNotFound)
	require.NoError(t, s.Delete(ctx, "pending:abc"))
}
