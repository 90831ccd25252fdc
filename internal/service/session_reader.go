package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/ports"
)

// SessionReaderOptions groups dependencies for SessionReader.
type SessionReaderOptions struct {
	Store  ports.CredentialStore
	Logger *slog.Logger
}

// SessionReader turns raw credential store reads into typed answers about
// the current session. It holds no cache: every call re-reads the store,
// which keeps it safe to call on every render at the cost of repeated
// storage access (call frequency is render-bound, not loop-bound).
//
// All failures degrade to "logged out" or a default value; nothing here
// surfaces an error to the rendering layer.
type SessionReader struct {
	store  ports.CredentialStore
	logger *slog.Logger
}

// NewSessionReader constructs a SessionReader.
func NewSessionReader(opts SessionReaderOptions) *SessionReader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionReader{store: opts.Store, logger: logger}
}

// IsAuthenticated reports whether a live session exists. The access token
// alone decides: without it the session is logged out regardless of any
// other field still physically present in storage.
func (r *SessionReader) IsAuthenticated(ctx context.Context) bool {
	token, err := r.store.Read(ctx, ports.KeyAccessToken)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			r.logger.Warn("read access token failed, treating as logged out", "error", err)
		}
		return false
	}
	return len(token) > 0
}

// CurrentRole returns the current user's role, or the empty role when
// logged out. The profile snapshot is the source of truth; the dedicated
// userRole key is a compatibility fallback for stores written by older
// clients. A mismatch resolves to the snapshot with a warning.
func (r *SessionReader) CurrentRole(ctx context.Context) domainsession.Role {
	if !r.IsAuthenticated(ctx) {
		return ""
	}

	var snapshotRole domainsession.Role
	if profile, ok := r.profile(ctx); ok {
		snapshotRole = profile.Role
	}

	storedRole := r.storedRole(ctx)
	if snapshotRole == "" {
		return storedRole
	}
	if storedRole != "" && storedRole != snapshotRole {
		r.logger.Warn("role field disagrees with profile snapshot, using snapshot",
			"stored", string(storedRole), "snapshot", string(snapshotRole))
	}
	return snapshotRole
}

// DisplayName returns the best display name for the current user: full
// name, then email, then a generic default. A missing or malformed
// snapshot degrades to the default, never to an error.
func (r *SessionReader) DisplayName(ctx context.Context) string {
	profile, ok := r.profile(ctx)
	if !ok {
		return domainsession.DefaultDisplayName
	}
	return profile.DisplayName()
}

// Session assembles the full aggregate from the store. Fields that are
// absent read as zero values.
func (r *SessionReader) Session(ctx context.Context) domainsession.Session {
	var sess domainsession.Session
	if token, err := r.store.Read(ctx, ports.KeyAccessToken); err == nil {
		sess.AccessToken = string(token)
	}
	if !sess.Authenticated() {
		return domainsession.Session{}
	}
	if token, err := r.store.Read(ctx, ports.KeyRefreshToken); err == nil {
		sess.RefreshToken = string(token)
	}
	if profile, ok := r.profile(ctx); ok {
		sess.Profile = profile
	}
	sess.Role = r.CurrentRole(ctx)
	return sess
}

func (r *SessionReader) profile(ctx context.Context) (domainsession.Profile, bool) {
	data, err := r.store.Read(ctx, ports.KeyUserData)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			r.logger.Warn("read profile snapshot failed", "error", err)
		}
		return domainsession.Profile{}, false
	}

	var profile domainsession.Profile
	if unmarshalErr := json.Unmarshal(data, &profile); unmarshalErr != nil {
		r.logger.Warn("malformed profile snapshot, degrading to defaults", "error", unmarshalErr)
		return domainsession.Profile{}, false
	}
	return profile, true
}

func (r *SessionReader) storedRole(ctx context.Context) domainsession.Role {
	data, err := r.store.Read(ctx, ports.KeyUserRole)
	if err != nil {
		return ""
	}
	return domainsession.Role(data)
}
