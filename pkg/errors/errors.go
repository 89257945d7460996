// Package errors provides custom error types for the tenantmap system.
// The types map onto the three-tier failure taxonomy the sync engine
// applies: transient source failures and permission failures degrade a
// single feed or record, malformed source objects drop a single
// candidate, and contract violations are fatal for the billing account
// being processed.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library equivalents so callers
// don't need a second errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the tenantmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller lacks permission for a resource
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized indicates that authentication failed or is missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates that a provider feed is temporarily unavailable
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrMalformedObject indicates a provider object the normalizer cannot flatten
	ErrMalformedObject = errors.New("malformed source object")

	// ErrPageLimit indicates a paginated feed exceeded the page ceiling
	ErrPageLimit = errors.New("page limit exceeded")
)

// SourceError represents a transient failure while listing a provider feed.
// It is caught at the narrowest scope (single tenant, single billing
// account) and treated as "no data from this source".
type SourceError struct {
	Feed    string // "departments", "billing_subscriptions", "entities", ...
	Scope   string // tenant or billing account the listing was scoped to
	Message string
	Err     error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("source error listing %s for %s: %s", e.Feed, e.Scope, e.Message)
	}
	return fmt.Sprintf("source error listing %s: %s", e.Feed, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError creates a new SourceError
func NewSourceError(feed, scope string, err error) *SourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &SourceError{Feed: feed, Scope: scope, Message: message, Err: err}
}

// PermissionError represents a forbidden or not-found response from a
// management API. It degrades the specific enrichment (no location chain,
// no secret injection) but never fails the record.
type PermissionError struct {
	Resource   string
	TenantID   string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *PermissionError) Error() string {
	if e.TenantID != "" {
		return fmt.Sprintf("permission denied for %s in tenant %s (status %d)", e.Resource, e.TenantID, e.StatusCode)
	}
	return fmt.Sprintf("permission denied for %s (status %d)", e.Resource, e.StatusCode)
}

// Unwrap implements errors.Unwrap
func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PermissionError) Is(target error) bool {
	if e.StatusCode == 404 {
		return target == ErrNotFound
	}
	if e.StatusCode == 401 {
		return target == ErrUnauthorized
	}
	return target == ErrForbidden
}

// NewPermissionError creates a new PermissionError
func NewPermissionError(resource, tenantID string, statusCode int, err error) *PermissionError {
	return &PermissionError{
		Resource:   resource,
		TenantID:   tenantID,
		StatusCode: statusCode,
		Err:        err,
	}
}

// MalformedObjectError represents a provider object the normalizer could
// not convert, for example one that exceeds the recursion depth ceiling
// or is missing a required key. The specific candidate is dropped; the
// batch continues.
type MalformedObjectError struct {
	Feed    string
	Key     string // the key missing or at fault, if known
	Message string
}

// Error implements the error interface
func (e *MalformedObjectError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("malformed object from %s (key %q): %s", e.Feed, e.Key, e.Message)
	}
	return fmt.Sprintf("malformed object from %s: %s", e.Feed, e.Message)
}

// Is implements errors.Is support
func (e *MalformedObjectError) Is(target error) bool {
	return target == ErrMalformedObject
}

// NewMalformedObjectError creates a new MalformedObjectError
func NewMalformedObjectError(feed, key, message string) *MalformedObjectError {
	return &MalformedObjectError{Feed: feed, Key: key, Message: message}
}

// StrategyError represents a contract violation: an agreement kind with
// no registered strategy implementation. Unlike source failures this is
// fatal for the billing account being processed and must surface to the
// caller.
type StrategyError struct {
	AgreementKind    string
	BillingAccountID string
}

// Error implements the error interface
func (e *StrategyError) Error() string {
	if e.BillingAccountID != "" {
		return fmt.Sprintf("no strategy registered for agreement kind %q (billing account %s)", e.AgreementKind, e.BillingAccountID)
	}
	return fmt.Sprintf("no strategy registered for agreement kind %q", e.AgreementKind)
}

// NewStrategyError creates a new StrategyError
func NewStrategyError(kind, billingAccountID string) *StrategyError {
	return &StrategyError{AgreementKind: kind, BillingAccountID: billingAccountID}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error response from an Azure management endpoint
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 401:
		return target == ErrUnauthorized
	case e.StatusCode == 403:
		return target == ErrForbidden
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrSourceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

// AuthenticationError represents a token acquisition or credential failure
type AuthenticationError struct {
	TenantID string
	ClientID string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.TenantID != "" {
		return fmt.Sprintf("authentication error for tenant %s: %s", e.TenantID, e.Message)
	}
	return fmt.Sprintf("authentication error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(tenantID, clientID, message string, err error) *AuthenticationError {
	return &AuthenticationError{
		TenantID: tenantID,
		ClientID: clientID,
		Message:  message,
		Err:      err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{Format: format, Source: source, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermissionDenied checks if an error is a forbidden or not-found
// response from a management API, the class of failure that degrades an
// enrichment rather than failing a record.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound)
}

// IsAuthFailure checks if an error is an authentication or authorization
// failure, the class swallowed on direct subscription lookups.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsTransient checks if an error is a transient source failure
func IsTransient(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}

// IsMalformed checks if an error is a malformed source object error
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedObject)
}

// IsContractViolation checks if an error is a missing-strategy contract
// violation, the only error class the sync call surfaces to its caller.
func IsContractViolation(err error) bool {
	var strategyErr *StrategyError
	return errors.As(err, &strategyErr)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapSource wraps an error as a SourceError
func WrapSource(feed, scope string, err error) error {
	if err == nil {
		return nil
	}
	return NewSourceError(feed, scope, err)
}
