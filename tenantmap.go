// Package tenantmap discovers the Azure subscriptions reachable from a
// service principal and reconciles them into account records.
package tenantmap

import (
	"context"

	"github.com/agentstation/tenantmap/internal/clients/azure"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/errors"
	"github.com/agentstation/tenantmap/pkg/sync"
)

var errFactoryRequired = errors.New("client factory must not be nil")

// Tenantmap runs discovery passes against the Azure management plane.
type Tenantmap interface {
	// Sync runs one discovery pass with the given options and
	// credentials, returning the reconciled account records.
	Sync(ctx context.Context, opts accounts.Options, secret accounts.SecretData, syncOpts ...sync.Option) (*sync.Result, error)

	// OptionsSchema returns the JSON-Schema description of the
	// recognized sync options.
	OptionsSchema() map[string]any
}

// tenantmap is the internal implementation of the Tenantmap interface
type tenantmap struct {
	config       *config
	orchestrator *sync.Orchestrator
}

// New creates a new Tenantmap instance with the given options
func New(opts ...Option) (Tenantmap, error) {
	tm := &tenantmap{
		config: defaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(tm.config); err != nil {
			return nil, err
		}
	}

	tm.orchestrator = sync.New(tm.config.factory)
	return tm, nil
}

// Sync runs one discovery pass.
func (t *tenantmap) Sync(ctx context.Context, opts accounts.Options, secret accounts.SecretData, syncOpts ...sync.Option) (*sync.Result, error) {
	return t.orchestrator.Run(ctx, opts, secret, syncOpts...)
}

// OptionsSchema returns the JSON-Schema description of the recognized
// sync options.
func (t *tenantmap) OptionsSchema() map[string]any {
	return accounts.OptionsSchema()
}

// config holds the assembled configuration of a Tenantmap instance.
type config struct {
	factory accounts.ClientFactory
}

func defaultConfig() *config {
	return &config{
		factory: azure.NewClients,
	}
}

// Option is a functional option for configuring a Tenantmap instance.
type Option func(*config) error

// WithClientFactory replaces the Azure client factory. Tests use this
// to run discovery against fakes.
func WithClientFactory(factory accounts.ClientFactory) Option {
	return func(c *config) error {
		if factory == nil {
			return errFactoryRequired
		}
		c.factory = factory
		return nil
	}
}
