package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estately/ui-client/internal/adapters/memstore"
	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/ports"
)

func newReader(t *testing.T) (*SessionReader, ports.CredentialStore) {
	t.Helper()
	store := memstore.NewStore()
	return NewSessionReader(SessionReaderOptions{Store: store}), store
}

func TestSessionReader_EmptyStoreIsLoggedOut(t *testing.T) {
	reader, _ := newReader(t)
	ctx := context.Background()

	assert.False(t, reader.IsAuthenticated(ctx))
	assert.Empty(t, reader.CurrentRole(ctx))
	assert.Equal(t, domainsession.DefaultDisplayName, reader.DisplayName(ctx))
}

func TestSessionReader_TokenAbsenceOverridesEverything(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	// Role and snapshot physically present, but no access token.
	require.NoError(t, store.Write(ctx, ports.KeyUserRole, []byte("ADMIN"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData,
		[]byte(`{"fullName":"Ada Admin","role":"ADMIN"}`), 0))

	assert.False(t, reader.IsAuthenticated(ctx))
	assert.Empty(t, reader.CurrentRole(ctx))
}

func TestSessionReader_AuthenticatedSession(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserRole, []byte("TENANT"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData,
		[]byte(`{"fullName":"Tess Tenant","email":"tess@example.com","role":"TENANT"}`), 0))

	assert.True(t, reader.IsAuthenticated(ctx))
	assert.Equal(t, domainsession.RoleTenant, reader.CurrentRole(ctx))
	assert.Equal(t, "Tess Tenant", reader.DisplayName(ctx))
}

func TestSessionReader_MalformedSnapshotDegrades(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserRole, []byte("TENANT"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData, []byte("{not json"), 0))

	// Never an error: display name degrades, role falls back to the
	// dedicated field.
	assert.Equal(t, domainsession.DefaultDisplayName, reader.DisplayName(ctx))
	assert.Equal(t, domainsession.RoleTenant, reader.CurrentRole(ctx))
}

func TestSessionReader_SnapshotWinsRoleMismatch(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserRole, []byte("ADMIN"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData,
		[]byte(`{"fullName":"Tess","role":"TENANT"}`), 0))

	assert.Equal(t, domainsession.RoleTenant, reader.CurrentRole(ctx))
}

func TestSessionReader_EmailFallback(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData,
		[]byte(`{"email":"owner@example.com","role":"FLAT_OWNER"}`), 0))

	assert.Equal(t, "owner@example.com", reader.DisplayName(ctx))
}

func TestSessionReader_RepeatedReadsIdentical(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData,
		[]byte(`{"fullName":"Tess","role":"TENANT"}`), 0))

	first := []any{reader.IsAuthenticated(ctx), reader.CurrentRole(ctx), reader.DisplayName(ctx)}
	second := []any{reader.IsAuthenticated(ctx), reader.CurrentRole(ctx), reader.DisplayName(ctx)}
	assert.Equal(t, first, second)
}

func TestSessionReader_SessionAggregate(t *testing.T) {
	reader, store := newReader(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, []byte("tok"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyRefreshToken, []byte("refresh"), 0))
	require.NoError(t, store.Write(ctx, ports.KeyUserData,
		[]byte(`{"fullName":"Tess","role":"TENANT"}`), 0))

	sess := reader.Session(ctx)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "refresh", sess.RefreshToken)
	assert.Equal(t, domainsession.RoleTenant, sess.Role)
	assert.Equal(t, "Tess", sess.Profile.FullName)

	// Logged out: aggregate is entirely zero, not partially populated.
	require.NoError(t, store.Remove(ctx, ports.KeyAccessToken))
	assert.Equal(t, domainsession.Session{}, reader.Session(ctx))
}
