package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/tenantmap/pkg/accounts"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	logger := zerolog.Nop()
	factory := func(accounts.SecretData) (accounts.Clients, error) {
		return accounts.Clients{}, nil
	}

	application, err := New("test", "abc123", "2026-01-01", "go test",
		WithLogger(&logger),
		WithClientFactory(factory),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return application
}

func TestNew(t *testing.T) {
	application := newTestApp(t)

	if application.Version() != "test" {
		t.Errorf("Version() = %q, want test", application.Version())
	}
	if application.Commit() != "abc123" {
		t.Errorf("Commit() = %q, want abc123", application.Commit())
	}
	if application.Config() == nil {
		t.Error("Config() returned nil")
	}
	if application.Logger() == nil {
		t.Error("Logger() returned nil")
	}
}

func TestOrchestratorSingleton(t *testing.T) {
	application := newTestApp(t)

	first := application.Orchestrator()
	second := application.Orchestrator()
	if first != second {
		t.Error("Orchestrator() should return the same instance")
	}
}

func TestVersionCommand(t *testing.T) {
	application := newTestApp(t)

	cmd := application.NewVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	if !strings.Contains(buf.String(), "tenantmap test") {
		t.Errorf("version output = %q, want it to contain %q", buf.String(), "tenantmap test")
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	application := newTestApp(t)

	err := application.Execute(context.Background(), []string{"definitely-not-a-command"})
	if err == nil {
		t.Error("Execute() with unknown command should fail")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	application := newTestApp(t)

	root := application.createRootCommand()
	want := []string{"sync", "schema", "serve", "version"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}
}
