package apiclient

// Package apiclient is the thin typed client for the estately backend
// REST endpoints. Every call is plain JSON-over-HTTP with bearer-token
// authentication; the backend's business logic is an external
// collaborator accessed only through its documented contracts.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/estately/ui-client/internal/adapters/envelope"
	"github.com/estately/ui-client/internal/ports"
)

// ErrLoggedOut is returned when a request is attempted with no live session.
type loggedOutError struct{}

func (loggedOutError) Error() string { return "no live session" }

var ErrLoggedOut error = loggedOutError{}

// CredentialTokenSource adapts the credential store to oauth2.TokenSource.
// Every Token call re-reads the store, so the transport always carries the
// freshest access token without its own cache going stale across logins.
type CredentialTokenSource struct {
	ctx   context.Context
	store ports.CredentialStore
}

// NewCredentialTokenSource creates a token source bound to ctx for store reads.
func NewCredentialTokenSource(ctx context.Context, store ports.CredentialStore) *CredentialTokenSource {
	return &CredentialTokenSource{ctx: ctx, store: store}
}

// Token implements oauth2.TokenSource.
func (s *CredentialTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.store.Read(s.ctx, ports.KeyAccessToken)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrLoggedOut
		}
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if len(token) == 0 {
		return nil, ErrLoggedOut
	}
	return &oauth2.Token{AccessToken: string(token), TokenType: "Bearer"}, nil
}

// Config groups construction parameters for Client.
type Config struct {
	// BaseURL is the backend root, e.g. "https://api.estately.io".
	BaseURL string

	// Store supplies the bearer token for every request.
	Store ports.CredentialStore

	// HTTPClient is the base transport; defaults to http.DefaultClient.
	HTTPClient *http.Client

	// ErrorMessagePath overrides the error-envelope message location.
	ErrorMessagePath string

	Logger *slog.Logger
}

// Client is the shared HTTP core the resource services are built on.
type Client struct {
	baseURL  string
	httpc    *http.Client
	envelope *envelope.Extractor
	logger   *slog.Logger
}

// NewClient constructs a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api client: BaseURL is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("api client: Store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()
	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}
	httpc := oauth2.NewClient(ctx, NewCredentialTokenSource(ctx, cfg.Store))

	return &Client{
		baseURL:  cfg.BaseURL,
		httpc:    httpc,
		envelope: envelope.NewExtractor(cfg.ErrorMessagePath),
		logger:   logger,
	}, nil
}

// do performs one request and decodes a JSON response into out (when out
// is non-nil). Non-2xx responses become APIError with the envelope message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api call",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		const maxErrorBody = 64 << 10
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ports.APIError{Status: resp.StatusCode, Message: c.envelope.Message(raw)}
	}

	if out == nil {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Admin returns the admin resource service.
func (c *Client) Admin() *AdminService { return &AdminService{client: c} }

// Properties returns the property resource service.
func (c *Client) Properties() *PropertyService { return &PropertyService{client: c} }

// Finances returns the finance resource service.
func (c *Client) Finances() *FinanceService { return &FinanceService{client: c} }

// Notifications returns the notification resource service.
func (c *Client) Notifications() *NotificationService { return &NotificationService{client: c} }
