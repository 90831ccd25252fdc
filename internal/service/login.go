package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/notify"
	"github.com/estately/ui-client/internal/ports"
)

// GenericLoginFailure is shown when the auth API gives no usable message.
const GenericLoginFailure = "Login failed. Please try again."

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	API       ports.AuthAPI
	Store     ports.CredentialStore
	Notifier  *notify.Notifier
	Navigator ports.Navigator
	Logger    *slog.Logger
}

// LoginService runs the login and logout flows. It is the only sanctioned
// writer of the credential store; everything else is a read-only observer.
type LoginService struct {
	api       ports.AuthAPI
	store     ports.CredentialStore
	notifier  *notify.Notifier
	navigator ports.Navigator
	logger    *slog.Logger
}

// NewLoginService constructs a LoginService.
func NewLoginService(opts LoginServiceOptions) *LoginService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		api:       opts.API,
		store:     opts.Store,
		notifier:  opts.Notifier,
		navigator: opts.Navigator,
		logger:    logger,
	}
}

// Credentials carries a login submission.
type Credentials struct {
	EmailOrPhone string
	Password     string
	MFACode      string
}

// LoginResult contains the outcome of a successful Login call.
// MFARequired is a terminal sub-state, not an error: no session fields
// were written and the caller should prompt for a code and resubmit.
type LoginResult struct {
	MFARequired  bool
	Session      domainsession.Session
	LandingRoute string

	// Acked reports whether every mounted subscriber confirmed re-reading
	// session state before navigation.
	Acked bool
}

// Login authenticates against the auth API and, on success, writes all
// four session fields, signals subscribers, waits for their
// acknowledgment, and navigates to the role's landing route.
//
// Any failure leaves the store untouched; use UserMessage to extract the
// text to surface.
func (s *LoginService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if creds.EmailOrPhone == "" {
		return nil, errors.New("email or phone is required")
	}
	if creds.Password == "" {
		return nil, errors.New("password is required")
	}

	outcome, err := s.api.Login(ctx, ports.LoginInput{
		EmailOrPhone: creds.EmailOrPhone,
		Password:     creds.Password,
		MFACode:      creds.MFACode,
	})
	if err != nil {
		return nil, fmt.Errorf("auth api login: %w", err)
	}

	if outcome.RequiresMFA && creds.MFACode == "" {
		return &LoginResult{MFARequired: true}, nil
	}

	sess := domainsession.Session{
		AccessToken:  outcome.AccessToken,
		RefreshToken: outcome.RefreshToken,
		Role:         outcome.Profile.Role,
		Profile:      outcome.Profile,
	}
	if writeErr := s.writeSession(ctx, sess); writeErr != nil {
		return nil, writeErr
	}

	acked := s.notifier.SignalLogin(ctx)

	route := sess.Role.LandingRoute()
	s.logger.Info("login complete",
		"role", string(sess.Role), "route", route, "acked", acked)
	s.navigator.Navigate(route)

	return &LoginResult{Session: sess, LandingRoute: route, Acked: acked}, nil
}

// writeSession persists the four fields in a fixed order: snapshot and
// role-bearing data land before the tokens that make readers consider the
// session live, so no reader observes a role-less authenticated session.
func (s *LoginService) writeSession(ctx context.Context, sess domainsession.Session) error {
	snapshot, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile snapshot: %w", err)
	}

	writes := []struct {
		key   string
		value []byte
		ttl   time.Duration
	}{
		{ports.KeyUserData, snapshot, 0},
		{ports.KeyUserRole, []byte(sess.Role), 0},
		{ports.KeyAccessToken, []byte(sess.AccessToken), domainsession.AccessTokenTTL},
		{ports.KeyRefreshToken, []byte(sess.RefreshToken), domainsession.RefreshTokenTTL},
	}
	for _, w := range writes {
		if writeErr := s.store.Write(ctx, w.key, w.value, w.ttl); writeErr != nil {
			// Do not leave a partial session behind.
			if clearErr := s.store.Clear(ctx); clearErr != nil {
				s.logger.Error("clear after failed session write failed", "error", clearErr)
			}
			return fmt.Errorf("write %s: %w", w.key, writeErr)
		}
	}
	return nil
}

// Logout revokes the server-side session first (best effort, one retry),
// then clears local state regardless of the revocation outcome. A server
// session outliving a failed revocation is logged, not fatal.
func (s *LoginService) Logout(ctx context.Context) error {
	if token, err := s.store.Read(ctx, ports.KeyAccessToken); err == nil && len(token) > 0 {
		if revokeErr := s.revokeWithRetry(ctx, string(token)); revokeErr != nil {
			s.logger.Warn("server-side session revocation failed, clearing locally anyway",
				"error", revokeErr)
		}
	}

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *LoginService) revokeWithRetry(ctx context.Context, token string) error {
	err := s.api.Revoke(ctx, token)
	if err == nil || ctx.Err() != nil {
		return err
	}
	return s.api.Revoke(ctx, token)
}

// UserMessage converts a Login error into the text to show the user. API
// errors carry the service's envelope message; anything else (transport
// failures included) collapses to a generic message.
func UserMessage(err error) string {
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericLoginFailure
}
