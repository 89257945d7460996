package app

import (
	"os"
	"testing"
	"time"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}

	// Verify defaults are set
	// Note: LogLevel may be empty (triggers precedence logic in logger.go)
	// LogFormat should have a default
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if !config.ExcludeRootManagementGroup {
		t.Error("ExcludeRootManagementGroup should default to true")
	}
	if config.SyncTimeout == 0 {
		t.Error("SyncTimeout not set to default")
	}
	if config.Concurrency == 0 {
		t.Error("Concurrency not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	// Save original env
	oldVerbose := os.Getenv("VERBOSE")
	oldFormat := os.Getenv("FORMAT")
	defer func() {
		os.Setenv("VERBOSE", oldVerbose)
		os.Setenv("FORMAT", oldFormat)
	}()

	// Set test environment variables
	os.Setenv("VERBOSE", "true")
	os.Setenv("FORMAT", "json")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if !config.Verbose {
		t.Error("VERBOSE environment variable not loaded")
	}
	if config.Format != "json" {
		t.Errorf("FORMAT = %s, want json", config.Format)
	}
}

// TestConfig_SyncTimeout verifies time duration parsing.
func TestConfig_SyncTimeout(t *testing.T) {
	// Save original env
	oldTimeout := os.Getenv("SYNC_TIMEOUT")
	defer os.Setenv("SYNC_TIMEOUT", oldTimeout)

	// Set test timeout
	os.Setenv("SYNC_TIMEOUT", "1h")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.SyncTimeout != time.Hour {
		t.Errorf("SyncTimeout = %v, want 1h", config.SyncTimeout)
	}
}

// TestConfig_BooleanFlags verifies boolean flag parsing.
func TestConfig_BooleanFlags(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		check    func(*Config) bool
		want     bool
	}{
		{
			name:     "ExcludeRootManagementGroup",
			envVar:   "EXCLUDE_ROOT_MANAGEMENT_GROUP",
			envValue: "false",
			check:    func(c *Config) bool { return c.ExcludeRootManagementGroup },
			want:     false,
		},
		{
			name:     "ExcludeEnrollmentAccount",
			envVar:   "EXCLUDE_ENROLLMENT_ACCOUNT",
			envValue: "true",
			check:    func(c *Config) bool { return c.ExcludeEnrollmentAccount },
			want:     true,
		},
		{
			name:     "NoColor",
			envVar:   "NO_COLOR",
			envValue: "1",
			check:    func(c *Config) bool { return c.NoColor },
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore env
			old := os.Getenv(tt.envVar)
			defer os.Setenv(tt.envVar, old)

			os.Setenv(tt.envVar, tt.envValue)

			config, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}

			got := tt.check(config)
			if got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// TestConfig_LoggingOptions verifies logging configuration.
func TestConfig_LoggingOptions(t *testing.T) {
	// Save original env
	oldLevel := os.Getenv("LOG_LEVEL")
	oldFormat := os.Getenv("LOG_FORMAT")
	oldOutput := os.Getenv("LOG_OUTPUT")
	defer func() {
		os.Setenv("LOG_LEVEL", oldLevel)
		os.Setenv("LOG_FORMAT", oldFormat)
		os.Setenv("LOG_OUTPUT", oldOutput)
	}()

	// Set test values
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("LOG_OUTPUT", "stdout")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
	if config.LogOutput != "stdout" {
		t.Errorf("LogOutput = %s, want stdout", config.LogOutput)
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence over env values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "json", "error")

	if !config.Verbose {
		t.Error("Verbose flag not applied")
	}
	if !config.NoColor {
		t.Error("NoColor flag not applied")
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error", config.LogLevel)
	}

	// Empty flag values must not clobber existing config
	config.UpdateFromFlags(false, true, false, "", "")
	if config.Format != "json" {
		t.Errorf("Format = %s, want json after empty flag", config.Format)
	}
	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want error after empty flag", config.LogLevel)
	}
}
