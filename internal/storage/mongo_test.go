package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestMongo(t *testing.T) (*MongoStore, func()) {
	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoStore(db)
	require.NoError(t, store.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return store, cleanup
}

func TestMongoGet_Missing(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "cart:none")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestMongoSet_UpsertsWholesale(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:u1", []byte(`[{"name":"Pizza"}]`)))
	require.NoError(t, store.Set(ctx, "cart:u1", []byte(`[{"name":"Burger"}]`)))

	got, err := store.Get(ctx, "cart:u1")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Burger"}]`, string(got))
}

func TestMongoDelete(t *testing.T) {
	store, cleanup := setupTestMongo(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "pending:u1", []byte("true")))
	require.NoError(t, store.Delete(ctx, "pending:u1"))

	_, err := store.Get(ctx, "pending:u1")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	// Absent slot deletes cleanly.
	require.NoError(t, store.Delete(ctx, "pending:u1"))
}
