// Package constants provides shared constants used throughout the tenantmap codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to Azure management APIs
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// SyncTimeout is the timeout for a full account sync invocation
	SyncTimeout = 30 * time.Minute

	// TenantResolveTimeout is the timeout for resolving one tenant's hierarchy
	TenantResolveTimeout = 2 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like client secrets (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// MaxPages is the hard ceiling on pages followed for a single paginated
	// feed. A continuation cursor that never terminates must not produce
	// unbounded work.
	MaxPages = 1000

	// MaxNormalizeDepth is the recursion ceiling when flattening provider
	// objects into plain mappings.
	MaxNormalizeDepth = 32

	// MaxConcurrentBillingAccounts is the maximum number of billing accounts
	// synced concurrently.
	MaxConcurrentBillingAccounts = 5
)
