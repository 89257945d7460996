// Package sync orchestrates one subscription discovery run: it
// enumerates billing accounts, dispatches the agreement strategy for
// each, and reconciles the candidates into the final account records.
package sync

import (
	"time"

	"github.com/agentstation/tenantmap/pkg/constants"
	"github.com/agentstation/tenantmap/pkg/errors"
)

// Options controls the overall orchestration in Orchestrator.Run().
type Options struct {
	// Orchestration control
	Timeout     time.Duration // Timeout for the entire sync run
	Concurrency int           // Max billing accounts processed in parallel

	// Caller metadata, carried into log context only
	DomainID string
	SchemaID string
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Timeout:     constants.SyncTimeout,
		Concurrency: constants.MaxConcurrentBillingAccounts,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	if s.Concurrency < 1 {
		return &errors.ValidationError{
			Field:   "Concurrency",
			Value:   s.Concurrency,
			Message: "concurrency must be at least 1",
		}
	}
	return nil
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithConcurrency configures how many billing accounts are processed in
// parallel.
func WithConcurrency(n int) Option {
	return func(opts *Options) {
		opts.Concurrency = n
	}
}

// WithDomainID configures the caller's domain id for log context.
func WithDomainID(domainID string) Option {
	return func(opts *Options) {
		opts.DomainID = domainID
	}
}

// WithSchemaID configures the caller's schema id for log context.
func WithSchemaID(schemaID string) Option {
	return func(opts *Options) {
		opts.SchemaID = schemaID
	}
}
