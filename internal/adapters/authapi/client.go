package authapi

// Package authapi is the HTTP adapter for the external auth service.
// The service's internals are not modeled here; only its documented
// request/response contract is.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/estately/ui-client/internal/adapters/envelope"
	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthAPI = (*Client)(nil)

// Config groups construction parameters for Client.
type Config struct {
	// BaseURL is the auth service root, e.g. "https://api.estately.io".
	BaseURL string

	// HTTPClient defaults to http.DefaultClient. No extra timeout is
	// layered on top; cancellation comes from the request context.
	HTTPClient *http.Client

	// ErrorMessagePath overrides the JMESPath used to pull the display
	// message out of error envelopes.
	ErrorMessagePath string
}

// Client talks to the external auth API.
type Client struct {
	baseURL  string
	httpc    *http.Client
	envelope *envelope.Extractor
}

// NewClient constructs an auth API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("auth api: BaseURL is required")
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		httpc:    httpc,
		envelope: envelope.NewExtractor(cfg.ErrorMessagePath),
	}, nil
}

// loginRequest is the wire form of a login submission.
type loginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
	MFACode      string `json:"mfaCode,omitempty"`
}

// loginResponse is the wire form of a login success or MFA challenge.
type loginResponse struct {
	RequiresMFA  bool                  `json:"requiresMFA"`
	User         domainsession.Profile `json:"user"`
	AccessToken  string                `json:"accessToken"`
	RefreshToken string                `json:"refreshToken"`
}

// Login submits credentials to POST /auth/login.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.LoginOutcome, error) {
	body, err := json.Marshal(loginRequest{
		EmailOrPhone: in.EmailOrPhone,
		Password:     in.Password,
		MFACode:      in.MFACode,
	})
	if err != nil {
		return ports.LoginOutcome{}, fmt.Errorf("marshal login request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", bytes.NewReader(body), "")
	if err != nil {
		return ports.LoginOutcome{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if apiErr := c.checkStatus(resp); apiErr != nil {
		return ports.LoginOutcome{}, apiErr
	}

	var out loginResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil {
		return ports.LoginOutcome{}, fmt.Errorf("decode login response: %w", decodeErr)
	}
	return ports.LoginOutcome{
		RequiresMFA:  out.RequiresMFA,
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		Profile:      out.User,
	}, nil
}

// Revoke invalidates the server-side session via POST /auth/logout.
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, accessToken)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if apiErr := c.checkStatus(resp); apiErr != nil {
		return apiErr
	}
	return nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	body io.Reader,
	bearer string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// checkStatus converts a non-2xx response into an APIError carrying the
// envelope message. The body read is capped; error envelopes are small.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	const maxErrorBody = 64 << 10
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &ports.APIError{
		Status:  resp.StatusCode,
		Message: c.envelope.Message(body),
	}
}
