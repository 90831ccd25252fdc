package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/estately/ui-client/config"
	"github.com/estately/ui-client/internal/adapters/authapi"
	"github.com/estately/ui-client/internal/header"
	"github.com/estately/ui-client/internal/notify"
	"github.com/estately/ui-client/internal/ports"
	"github.com/estately/ui-client/internal/service"
)

// SessionDeps contains dependencies for building the session components.
type SessionDeps struct {
	Config    *config.AppConfig
	Store     ports.WatchableStore
	Navigator ports.Navigator
	Logger    *slog.Logger
}

// SessionComponents bundles the wired session mechanism.
type SessionComponents struct {
	Notifier *notify.Notifier
	Reader   *service.SessionReader
	Login    *service.LoginService
	Header   *header.Header
}

// BuildSession wires the notifier, facade, login flow, and navigation
// header onto the given credential store.
func BuildSession(deps SessionDeps) (*SessionComponents, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api, err := authapi.NewClient(authapi.Config{
		BaseURL:          deps.Config.Auth.BaseURL,
		ErrorMessagePath: deps.Config.Auth.ErrorMessagePath,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth api client: %w", err)
	}

	notifier := notify.NewNotifier(notify.NotifierOptions{
		Logger:     logger,
		AckTimeout: deps.Config.Auth.AckTimeout,
	})
	reader := service.NewSessionReader(service.SessionReaderOptions{
		Store:  deps.Store,
		Logger: logger,
	})
	login := service.NewLoginService(service.LoginServiceOptions{
		API:       api,
		Store:     deps.Store,
		Notifier:  notifier,
		Navigator: deps.Navigator,
		Logger:    logger,
	})
	hdr := header.New(header.Options{
		Reader:    reader,
		Login:     login,
		Notifier:  notifier,
		Navigator: deps.Navigator,
		Logger:    logger,
	})

	return &SessionComponents{
		Notifier: notifier,
		Reader:   reader,
		Login:    login,
		Header:   hdr,
	}, nil
}
