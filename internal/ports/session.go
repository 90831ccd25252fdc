package ports

// Package ports defines interfaces (hexagonal ports) for session-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"fmt"
	"time"

	domainsession "github.com/estately/ui-client/internal/domain/session"
)

// Credential store keys. Names are bit-exact: other clients sharing the
// same store address the same keys.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserRole     = "userRole"
	KeyUserData     = "userData"
)

// ErrNotFound is returned by credential stores for absent or expired keys.
type notFoundError struct{}

func (notFoundError) Error() string { return "credential not found" }

var ErrNotFound error = notFoundError{}

// CredentialStore persists the session fields durably, shared across
// processes. Expired entries behave as absent even if the backend has not
// yet evicted them. TTL of zero means the store default (no expiry).
type CredentialStore interface {
	Write(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Read(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Change describes a single store mutation observed via the change feed.
// An empty Key means the scope of the mutation is unknown and consumers
// should re-check everything.
type Change struct {
	Key    string
	Origin string // origin ID of the process that performed the write
}

// ChangeFeed delivers mutations made by other processes sharing the store.
// Mutations performed by this process are filtered out, matching browser
// storage-event semantics; the in-process login signal covers that gap.
type ChangeFeed interface {
	// Changes starts the feed. The returned channel closes when ctx is done.
	Changes(ctx context.Context) (<-chan Change, error)
}

// WatchableStore combines storage with cross-process change delivery.
type WatchableStore interface {
	CredentialStore
	ChangeFeed
}

// LoginInput carries the credentials submitted to the auth API.
type LoginInput struct {
	EmailOrPhone string
	Password     string
	MFACode      string
}

// LoginOutcome is the auth API's answer to a login attempt. RequiresMFA
// is a distinct terminal sub-state, not an error: the caller must surface
// an MFA prompt and retry with a code.
type LoginOutcome struct {
	RequiresMFA  bool
	AccessToken  string
	RefreshToken string
	Profile      domainsession.Profile
}

// AuthAPI initiates and revokes sessions against the external auth service.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (LoginOutcome, error)

	// Revoke invalidates the server-side session for the given access token.
	// Callers treat failures as best-effort; local state is cleared regardless.
	Revoke(ctx context.Context, accessToken string) error
}

// APIError is a failed auth API call carrying a user-displayable message
// extracted from the service's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Navigator performs route changes on behalf of the session flows.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface (useful for tests).
type NavigatorFunc func(path string)

// Navigate implements the Navigator interface.
func (f NavigatorFunc) Navigate(path string) {
	if f == nil {
		return
	}
	f(path)
}
