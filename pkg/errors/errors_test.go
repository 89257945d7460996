package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceError(t *testing.T) {
	underlying := errors.New("connection reset")
	err := NewSourceError("departments", "billing-account-1", underlying)

	assert.Contains(t, err.Error(), "departments")
	assert.Contains(t, err.Error(), "billing-account-1")
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Equal(t, underlying, errors.Unwrap(err))
}

func TestPermissionErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		sentinel   error
	}{
		{"forbidden", 403, ErrForbidden},
		{"not found", 404, ErrNotFound},
		{"unauthorized", 401, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPermissionError("entities", "tenant-1", tt.statusCode, nil)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, IsPermissionDenied(err) || tt.statusCode == 401)
		})
	}
}

func TestAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		statusCode int
		sentinel   error
	}{
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{429, ErrRateLimited},
		{500, ErrSourceUnavailable},
		{503, ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.statusCode), func(t *testing.T) {
			err := NewAPIError("https://management.azure.com/x", tt.statusCode, "nope")
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestMalformedObjectError(t *testing.T) {
	err := NewMalformedObjectError("billing_subscriptions", "subscriptionId", "depth ceiling exceeded")
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "subscriptionId")
}

func TestStrategyErrorIsContractViolation(t *testing.T) {
	err := NewStrategyError("SomeNewAgreement", "ba-1")
	assert.True(t, IsContractViolation(err))
	assert.False(t, IsContractViolation(NewSourceError("departments", "", nil)))

	wrapped := fmt.Errorf("sync failed: %w", err)
	assert.True(t, IsContractViolation(wrapped))
}

func TestIsAuthFailure(t *testing.T) {
	assert.True(t, IsAuthFailure(NewAuthenticationError("tenant-1", "client-1", "bad secret", nil)))
	assert.True(t, IsAuthFailure(NewAPIError("", 403, "")))
	assert.False(t, IsAuthFailure(NewAPIError("", 500, "")))
	assert.False(t, IsAuthFailure(nil))
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	assert.Nil(t, WrapSource("departments", "", nil))
	assert.Nil(t, WrapIO("read", "body", nil))
	assert.Nil(t, WrapParse("json", "response", nil))
	assert.Nil(t, WrapValidation("options", nil))
}
