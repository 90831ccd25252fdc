// Package mocks provides mock implementations for testing the session mechanism.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// ports interfaces. The mocks are generated using go:generate directives and provide
// a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockCredentialStore(ctrl)
//	mockStore.EXPECT().Read(gomock.Any(), gomock.Any()).Return(nil, ports.ErrNotFound)
package mocks

// Generate mock for CredentialStore interface from internal/ports.
// This creates MockCredentialStore with methods for all CredentialStore interface methods:
// Write, Read, Remove, Clear
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=credential_store_mock.go github.com/estately/ui-client/internal/ports CredentialStore

// Generate mock for AuthAPI interface from internal/ports.
// This creates MockAuthAPI with methods for all AuthAPI interface methods:
// Login, Revoke
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_api_mock.go github.com/estately/ui-client/internal/ports AuthAPI

// Generate mock for ChangeFeed interface from internal/ports.
// This creates MockChangeFeed with methods for all ChangeFeed interface methods:
// Changes
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=change_feed_mock.go github.com/estately/ui-client/internal/ports ChangeFeed
