package header

// Package header implements the navigation header consumer: a small state
// machine that re-reads session state on every notifier signal and route
// change and exposes the role-conditional set of visible links.

import (
	"context"
	"log/slog"
	"sync"

	domainsession "github.com/estately/ui-client/internal/domain/session"
	"github.com/estately/ui-client/internal/notify"
	"github.com/estately/ui-client/internal/ports"
	"github.com/estately/ui-client/internal/service"
)

// State is the header's lifecycle state.
type State int

const (
	// StateNotMounted renders a placeholder only: logo, no interactive
	// content. Nothing session-dependent may be shown before the first
	// auth check runs.
	StateNotMounted State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateNotMounted:
		return "not_mounted"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// NavLink is one entry of the fixed navigation table. Visible is evaluated
// fresh on every render from current state; results are never memoized
// across an auth-state change.
type NavLink struct {
	Label   string
	Path    string
	Visible func(authenticated bool, role domainsession.Role) bool
}

func anyAuthenticated(authenticated bool, _ domainsession.Role) bool { return authenticated }

func anyVisitor(_ bool, _ domainsession.Role) bool { return true }

func roles(want ...domainsession.Role) func(bool, domainsession.Role) bool {
	return func(authenticated bool, role domainsession.Role) bool {
		if !authenticated {
			return false
		}
		for _, r := range want {
			if role == r {
				return true
			}
		}
		return false
	}
}

// DefaultLinks is the application's navigation table.
func DefaultLinks() []NavLink {
	return []NavLink{
		{Label: "Home", Path: "/", Visible: anyVisitor},
		{Label: "Dashboard", Path: "/dashboard", Visible: anyAuthenticated},
		{Label: "Users", Path: "/dashboard/admin/users", Visible: roles(domainsession.RoleAdmin)},
		{Label: "Properties", Path: "/dashboard/admin/properties",
			Visible: roles(domainsession.RoleAdmin, domainsession.RoleFlatOwner)},
		{Label: "Invoices", Path: "/finances/invoices", Visible: anyAuthenticated},
		{Label: "Reports", Path: "/reports",
			Visible: roles(domainsession.RoleAdmin, domainsession.RoleFlatOwner)},
		{Label: "Maintenance", Path: "/dashboard/maintenance/requests",
			Visible: roles(domainsession.RoleMaintenanceStaff)},
		{Label: "Notifications", Path: "/notifications/preferences", Visible: anyAuthenticated},
	}
}

// suppressedRoutes is the hard suppression list: on these exact paths the
// header renders nothing at all, independent of auth state. Sub-paths are
// not suppressed.
var suppressedRoutes = map[string]struct{}{
	"/login":           {},
	"/register":        {},
	"/forgot-password": {},
	"/verify-otp":      {},
}

// Suppressed reports whether the header renders nothing on the given path.
func Suppressed(path string) bool {
	_, ok := suppressedRoutes[path]
	return ok
}

// Options groups dependencies for Header.
type Options struct {
	Reader    *service.SessionReader
	Login     *service.LoginService
	Notifier  *notify.Notifier
	Navigator ports.Navigator
	Links     []NavLink // defaults to DefaultLinks()
	Logger    *slog.Logger
}

// Header is the navigation header consumer.
type Header struct {
	reader    *service.SessionReader
	login     *service.LoginService
	notifier  *notify.Notifier
	navigator ports.Navigator
	links     []NavLink
	logger    *slog.Logger

	mu          sync.Mutex
	state       State
	role        domainsession.Role
	displayName string
	currentPath string
	sub         *notify.Subscription
}

// New constructs a Header in StateNotMounted.
func New(opts Options) *Header {
	links := opts.Links
	if links == nil {
		links = DefaultLinks()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Header{
		reader:    opts.Reader,
		login:     opts.Login,
		notifier:  opts.Notifier,
		navigator: opts.Navigator,
		links:     links,
		logger:    logger,
		state:     StateNotMounted,
	}
}

// Mount runs the first auth check, subscribes to the notifier, and starts
// consuming signals until ctx is cancelled or Unmount is called.
func (h *Header) Mount(ctx context.Context) {
	h.Refresh(ctx)

	sub := h.notifier.Subscribe()
	h.mu.Lock()
	h.sub = sub
	h.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				sub.Cancel()
				return
			case sig := <-sub.C():
				h.Refresh(ctx)
				sig.Ack()
			}
		}
	}()
}

// Unmount cancels the subscription and returns to the placeholder state.
func (h *Header) Unmount() {
	h.mu.Lock()
	sub := h.sub
	h.sub = nil
	h.state = StateNotMounted
	h.role = ""
	h.displayName = ""
	h.mu.Unlock()

	if sub != nil {
		sub.Cancel()
	}
}

// Refresh runs the auth check procedure: query the facade from scratch and
// transition accordingly. Calling it twice with no intervening mutation
// yields the same result both times.
func (h *Header) Refresh(ctx context.Context) {
	if h.reader.IsAuthenticated(ctx) {
		role := h.reader.CurrentRole(ctx)
		name := h.reader.DisplayName(ctx)

		h.mu.Lock()
		h.state = StateAuthenticated
		h.role = role
		h.displayName = name
		h.mu.Unlock()
		return
	}

	h.mu.Lock()
	h.state = StateUnauthenticated
	h.role = ""
	h.displayName = ""
	h.mu.Unlock()
}

// HandleRouteChange records the new path and re-runs the auth check.
func (h *Header) HandleRouteChange(ctx context.Context, path string) {
	h.mu.Lock()
	h.currentPath = path
	h.mu.Unlock()
	h.Refresh(ctx)
}

// State returns the current lifecycle state.
func (h *Header) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Role returns the cached role from the last auth check.
func (h *Header) Role() domainsession.Role {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.role
}

// DisplayName returns the cached display name from the last auth check.
func (h *Header) DisplayName() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.displayName
}

// VisibleLinks evaluates the link table against current state. It returns
// nil on suppressed routes and before mounting.
func (h *Header) VisibleLinks() []NavLink {
	h.mu.Lock()
	state := h.state
	role := h.role
	path := h.currentPath
	h.mu.Unlock()

	if state == StateNotMounted || Suppressed(path) {
		return nil
	}

	authenticated := state == StateAuthenticated
	visible := make([]NavLink, 0, len(h.links))
	for _, link := range h.links {
		if link.Visible != nil && link.Visible(authenticated, role) {
			visible = append(visible, link)
		}
	}
	return visible
}

// Logout revokes and clears the session, resets local state, and navigates
// to the login route. Store clear failures are logged; the header resets
// regardless so the user is never stuck rendered as logged in.
func (h *Header) Logout(ctx context.Context) {
	if err := h.login.Logout(ctx); err != nil {
		h.logger.Warn("logout cleanup failed", "error", err)
	}

	h.mu.Lock()
	h.state = StateUnauthenticated
	h.role = ""
	h.displayName = ""
	h.mu.Unlock()

	h.navigator.Navigate("/login")
}
