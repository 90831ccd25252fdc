package pgstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estately/ui-client/internal/ports"
	"github.com/estately/ui-client/internal/testutil"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	pool := testutil.SetupTestPostgres(t)
	store := NewStore(pool)

	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.Clear(ctx))
	return store
}

func TestStore_WriteReadRemove(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))

	value, err := store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), value)

	// Overwrite replaces in place.
	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok2"), 0))
	value, err = store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok2"), value)

	require.NoError(t, store.Remove(ctx, ports.KeyAccessToken))
	_, err = store.Read(ctx, ports.KeyAccessToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_ReadMissing(t *testing.T) {
	store := setupStore(t)

	_, err := store.Read(context.Background(), ports.KeyUserData)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_ExpiredRowBehavesAsAbsent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 10*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	_, err := store.Read(ctx, ports.KeyAccessToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// The expired row was evicted, not just masked.
	_, err = store.Read(ctx, ports.KeyAccessToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_EnsureSchemaIdempotent(t *testing.T) {
	store := setupStore(t)
	assert.NoError(t, store.EnsureSchema(context.Background()))
}

func TestStore_Clear(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, key := range []string{
		ports.KeyAccessToken, ports.KeyRefreshToken, ports.KeyUserRole, ports.KeyUserData,
	} {
		require.NoError(t, store.Write(ctx, key, []byte("v"), 0))
	}

	require.NoError(t, store.Clear(ctx))

	for _, key := range []string{
		ports.KeyAccessToken, ports.KeyRefreshToken, ports.KeyUserRole, ports.KeyUserData,
	} {
		_, err := store.Read(ctx, key)
		assert.ErrorIs(t, err, ports.ErrNotFound, key)
	}
}

func TestStore_ChangesSeenAcrossClients(t *testing.T) {
	pool := testutil.SetupTestPostgres(t)
	writer := NewStore(pool)
	observer := NewStore(pool)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, writer.EnsureSchema(ctx))

	changes, err := observer.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, writer.Write(ctx, ports.KeyUserRole, []byte("ADMIN"), 0))

	select {
	case change := <-changes:
		assert.Equal(t, ports.KeyUserRole, change.Key)
		assert.Equal(t, writer.Origin(), change.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("observer did not see the write")
	}
}

func TestStore_OwnWritesNotDelivered(t *testing.T) {
	pool := testutil.SetupTestPostgres(t)
	store := NewStore(pool)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.EnsureSchema(ctx))

	changes, err := store.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))

	select {
	case change := <-changes:
		t.Fatalf("store observed its own change: %+v", change)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestStore_Health(t *testing.T) {
	store := setupStore(t)
	assert.NoError(t, store.Health(context.Background()))
}
