package session

// Package session contains simple hand-written test doubles for session
// ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI   = (*MockAuthAPI)(nil)
	_ ports.Navigator = (*RecordingNavigator)(nil)
)

// MockAuthAPI simulates the external auth service with deterministic
// defaults. Set LoginFunc/RevokeFunc to override behavior per test.
type MockAuthAPI struct {
	LoginFunc  func(ctx context.Context, in ports.LoginInput) (ports.LoginOutcome, error)
	RevokeFunc func(ctx context.Context, accessToken string) error

	// DefaultOutcome is returned when LoginFunc is nil.
	DefaultOutcome ports.LoginOutcome

	mu          sync.Mutex
	loginCalls  []ports.LoginInput
	revokeCalls []string
}

// NewMockAuthAPI creates a MockAuthAPI with a plausible tenant identity.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{
		DefaultOutcome: ports.LoginOutcome{
			AccessToken:  "access-token-1",
			RefreshToken: "refresh-token-1",
			Profile: domainsession.Profile{
				ID:       "user-1",
				FullName: "Jordan Tester",
				Email:    "jordan@example.com",
				Role:     domainsession.RoleTenant,
			},
		},
	}
}

func (m *MockAuthAPI) Login(ctx context.Context, in ports.LoginInput) (ports.LoginOutcome, error) {
	m.mu.Lock()
	m.loginCalls = append(m.loginCalls, in)
	m.mu.Unlock()

	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, in)
	}
	return m.DefaultOutcome, nil
}

func (m *MockAuthAPI) Revoke(ctx context.Context, accessToken string) error {
	m.mu.Lock()
	m.revokeCalls = append(m.revokeCalls, accessToken)
	m.mu.Unlock()

	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, accessToken)
	}
	return nil
}

// LoginCalls returns the recorded login submissions.
func (m *MockAuthAPI) LoginCalls() []ports.LoginInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.LoginInput(nil), m.loginCalls...)
}

// RevokeCalls returns the recorded revocation tokens.
func (m *MockAuthAPI) RevokeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.revokeCalls...)
}

// RecordingNavigator records every navigation for assertions.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *RecordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

// Paths returns the recorded navigations in order.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Current returns the most recent navigation, or "".
func (n *RecordingNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}
