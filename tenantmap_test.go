package tenantmap

import (
	"testing"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

func TestNew(t *testing.T) {
	tm, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if tm == nil {
		t.Fatal("Expected instance, got nil")
	}
}

func TestNewWithNilFactory(t *testing.T) {
	_, err := New(WithClientFactory(nil))
	if err == nil {
		t.Error("Expected error for nil client factory")
	}
}

func TestOptionsSchema(t *testing.T) {
	tm, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	schema := tm.OptionsSchema()
	if schema["type"] != "object" {
		t.Errorf("schema type = %v, want object", schema["type"])
	}
	properties, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema properties missing")
	}
	if _, ok := properties["exclude_root_management_group"]; !ok {
		t.Error("schema missing exclude_root_management_group")
	}
}

func TestNewWithClientFactory(t *testing.T) {
	factory := func(accounts.SecretData) (accounts.Clients, error) {
		return accounts.Clients{}, nil
	}

	tm, err := New(WithClientFactory(factory))
	if err != nil {
		t.Fatalf("New() with factory failed: %v", err)
	}
	if tm == nil {
		t.Fatal("Expected instance, got nil")
	}
}
