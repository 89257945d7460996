// Package config bridges Viper configuration and environment variables
// into the typed values the CLI and server need.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

// Environment variable names for service principal credentials. They
// match the conventional Azure SDK names so existing principals work
// unchanged.
const (
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvClientID       = "AZURE_CLIENT_ID"
	EnvClientSecret   = "AZURE_CLIENT_SECRET"
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// Secret assembles service principal credentials from Viper and the
// environment. Validation is the caller's concern; commands that can
// run without credentials (schema printing) still get a value.
func Secret() accounts.SecretData {
	return accounts.SecretData{
		TenantID:       GetString(EnvTenantID),
		ClientID:       GetString(EnvClientID),
		ClientSecret:   GetString(EnvClientSecret),
		SubscriptionID: GetString(EnvSubscriptionID),
	}
}

// HasCredentials reports whether the minimally required credential
// variables are set, without validating them.
func HasCredentials() bool {
	return Secret().Validate() == nil
}
