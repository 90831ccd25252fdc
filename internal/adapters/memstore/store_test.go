package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estately/ui-client/internal/ports"
)

func TestStore_WriteAndRead(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))

	value, err := store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), value)
}

func TestStore_ReadMissing(t *testing.T) {
	store := NewStore()

	_, err := store.Read(context.Background(), ports.KeyAccessToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_ExpiredBehavesAsAbsent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Read(ctx, ports.KeyAccessToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_RemoveAndClear(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserRole, []byte("TENANT"), 0))

	require.NoError(t, store.Remove(ctx, ports.KeyAccessToken))
	_, err := store.Read(ctx, ports.KeyAccessToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Read(ctx, ports.KeyUserRole)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_ChangesSeenAcrossClients(t *testing.T) {
	hub := NewHub()
	writer := hub.Client()
	observer := hub.Client()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := observer.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, writer.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))

	select {
	case change := <-changes:
		assert.Equal(t, ports.KeyAccessToken, change.Key)
		assert.Equal(t, writer.Origin(), change.Origin)
	case <-time.After(time.Second):
		t.Fatal("observer did not see the write")
	}
}

func TestStore_OwnWritesNotDelivered(t *testing.T) {
	hub := NewHub()
	writer := hub.Client()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := writer.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, writer.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))

	select {
	case change := <-changes:
		t.Fatalf("writer observed its own change: %+v", change)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStore_ClearDeliversUnknownScope(t *testing.T) {
	hub := NewHub()
	writer := hub.Client()
	observer := hub.Client()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := observer.Changes(ctx)
	require.NoError(t, err)

	require.NoError(t, writer.Clear(ctx))

	select {
	case change := <-changes:
		assert.Empty(t, change.Key)
	case <-time.After(time.Second):
		t.Fatal("observer did not see the clear")
	}
}
