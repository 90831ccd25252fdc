package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClient_LoginSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jordan@example.com", req["emailOrPhone"])
		assert.Equal(t, "hunter2", req["password"])
		// Absent code is omitted from the wire form entirely.
		assert.NotContains(t, req, "mfaCode")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"accessToken": "at-1",
			"refreshToken": "rt-1",
			"user": {"id":"u1","fullName":"Jordan Tester","email":"jordan@example.com","role":"TENANT"}
		}`))
	})

	out, err := client.Login(context.Background(), ports.LoginInput{
		EmailOrPhone: "jordan@example.com",
		Password:     "hunter2",
	})
	require.NoError(t, err)
	assert.False(t, out.RequiresMFA)
	assert.Equal(t, "at-1", out.AccessToken)
	assert.Equal(t, "rt-1", out.RefreshToken)
	assert.Equal(t, domainsession.RoleTenant, out.Profile.Role)
	assert.Equal(t, "Jordan Tester", out.Profile.FullName)
}

func TestClient_LoginMFAChallenge(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"requiresMFA": true}`))
	})

	out, err := client.Login(context.Background(), ports.LoginInput{
		EmailOrPhone: "jordan@example.com", Password: "pw",
	})
	require.NoError(t, err)
	assert.True(t, out.RequiresMFA)
	assert.Empty(t, out.AccessToken)
}

func TestClient_LoginSendsMFACode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123456", req["mfaCode"])
		_, _ = w.Write([]byte(`{"accessToken":"at","refreshToken":"rt","user":{"role":"TENANT"}}`))
	})

	_, err := client.Login(context.Background(), ports.LoginInput{
		EmailOrPhone: "jordan@example.com", Password: "pw", MFACode: "123456",
	})
	require.NoError(t, err)
}

func TestClient_LoginErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid credentials"}}`))
	})

	_, err := client.Login(context.Background(), ports.LoginInput{
		EmailOrPhone: "x@example.com", Password: "bad",
	})
	require.Error(t, err)

	var apiErr *ports.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_LoginMalformedErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502</html>"))
	})

	_, err := client.Login(context.Background(), ports.LoginInput{
		EmailOrPhone: "x@example.com", Password: "pw",
	})

	var apiErr *ports.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestClient_Revoke(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Revoke(context.Background(), "at-1"))
}

func TestClient_RevokeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"session store unavailable"}}`))
	})

	err := client.Revoke(context.Background(), "at-1")
	var apiErr *ports.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "session store unavailable", apiErr.Message)
}
