// Package app provides the application context and dependency management
// for the tenantmap CLI. It follows idiomatic Go patterns for CLI
// applications by centralizing configuration, dependency injection, and
// lifecycle management.
package app

import (
	stdsync "sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/tenantmap/internal/clients/azure"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/sync"
)

// App represents the tenantmap application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// sync orchestrator, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client factory for Azure management-plane clients. Tests swap
	// this for a fake.
	factory accounts.ClientFactory

	// Orchestrator (lazy-initialized, singleton)
	mu           stdsync.RWMutex
	orchestrator *sync.Orchestrator
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		factory: azure.NewClients,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("config", "load failed", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Factory returns the client factory the app runs with.
func (a *App) Factory() accounts.ClientFactory {
	return a.factory
}

// Orchestrator returns the sync orchestrator, creating it lazily if
// needed. This is thread-safe and ensures only one instance is created.
func (a *App) Orchestrator() *sync.Orchestrator {
	a.mu.RLock()
	if a.orchestrator != nil {
		o := a.orchestrator
		a.mu.RUnlock()
		return o
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.orchestrator == nil {
		a.orchestrator = sync.New(a.factory)
	}
	return a.orchestrator
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClientFactory sets a custom client factory (useful for testing).
func WithClientFactory(factory accounts.ClientFactory) Option {
	return func(a *App) error {
		a.factory = factory
		a.orchestrator = nil
		return nil
	}
}
