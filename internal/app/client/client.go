// Package client wires the ClusterView client together: configuration,
// logging, the persisted session, the gateway client and the per-resource
// managers.
package client

import (
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"clusterview/internal/app/client/config"
	"clusterview/internal/authflow"
	"clusterview/internal/domain/resource"
	"clusterview/internal/domain/session"
	"clusterview/internal/gateway"
	"clusterview/internal/manager"
)

// App holds the client's long-lived pieces. Commands get one App per
// invocation through the command context.
type App struct {
	config   *config.Config
	log      *slog.Logger
	gateway  *gateway.Client
	sessions *session.Store
	flow     *authflow.Flow
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.ConfigDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	gw := gateway.NewClient(cfg.APIBaseURL, log)
	sessions := session.NewStore(cfg.SessionPath)

	return &App{
		config:   cfg,
		log:      log,
		gateway:  gw,
		sessions: sessions,
		flow:     authflow.New(gw, sessions, log),
	}, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Log() *slog.Logger {
	return a.log
}

func (a *App) Gateway() *gateway.Client {
	return a.gateway
}

func (a *App) Sessions() *session.Store {
	return a.sessions
}

// Flow returns the authentication flow.
func (a *App) Flow() *authflow.Flow {
	return a.flow
}

// Session returns the stored identity, or an error telling the user to
// log in.
func (a *App) Session() (session.Session, error) {
	return a.sessions.Get()
}

// Manager builds a resource manager bound to the stored session.
func (a *App) Manager(desc resource.Descriptor) (*manager.Manager, error) {
	identity, err := a.Session()
	if err != nil {
		return nil, err
	}
	return manager.New(desc, a.gateway, identity, a.log), nil
}

// ManagerAs builds a resource manager bound to an explicit identity,
// used by the admin console whose credentials are never persisted.
func (a *App) ManagerAs(desc resource.Descriptor, identity session.Session) *manager.Manager {
	return manager.New(desc, a.gateway, identity, a.log)
}
