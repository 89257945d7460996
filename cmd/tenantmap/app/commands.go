package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tenantmap/internal/cmd/output"
	"github.com/agentstation/tenantmap/internal/config"
	"github.com/agentstation/tenantmap/internal/server"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/sync"
)

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Discover subscriptions and print account records",
		Long: `Sync runs one discovery pass against the Azure management plane.

Credentials come from the AZURE_TENANT_ID, AZURE_CLIENT_ID and
AZURE_CLIENT_SECRET environment variables (or a .env file). The
optional AZURE_SUBSCRIPTION_ID narrows tenant-enumeration fallback to
one subscription.`,
		Example: `  # Discover everything the principal can see
  tenantmap sync

  # Keep the tenant root management group in location chains
  tenantmap sync --exclude-root-management-group=false

  # Partner agreements: only two customers, as JSON
  tenantmap sync --customer 11111111-1111-1111-1111-111111111111 \
                 --customer 22222222-2222-2222-2222-222222222222 -o json`,
		RunE: a.runSync,
	}

	cmd.Flags().Bool("exclude-root-management-group", a.config.ExcludeRootManagementGroup,
		"drop the tenant root group from location chains")
	cmd.Flags().Bool("exclude-enrollment-account", a.config.ExcludeEnrollmentAccount,
		"suppress enrollment-account location fragments (Enterprise Agreement)")
	cmd.Flags().StringSlice("customer", a.config.SyncCustomers,
		"limit partner-agreement discovery to these customer ids")
	cmd.Flags().Duration("timeout", a.config.SyncTimeout, "overall sync timeout")
	cmd.Flags().Int("concurrency", a.config.Concurrency, "billing accounts processed in parallel")

	return cmd
}

// runSync executes one sync pass and writes the records to stdout.
func (a *App) runSync(cmd *cobra.Command, _ []string) error {
	secret := config.Secret()
	if err := secret.Validate(); err != nil {
		return err
	}

	accountOpts := accounts.Options{
		ExcludeRootManagementGroup: mustGetBool(cmd, "exclude-root-management-group"),
		ExcludeEnrollmentAccount:   mustGetBool(cmd, "exclude-enrollment-account"),
	}
	accountOpts.SyncCustomers, _ = cmd.Flags().GetStringSlice("customer")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	ctx := a.logger.WithContext(cmd.Context())
	result, err := a.Orchestrator().Run(ctx, accountOpts, secret,
		sync.WithTimeout(timeout),
		sync.WithConcurrency(concurrency),
	)
	if err != nil {
		return err
	}

	for _, skipped := range result.Skipped {
		a.logger.Warn().
			Str("billing_account_id", skipped.BillingAccountID).
			Str("agreement", string(skipped.Kind)).
			Err(skipped.Err).
			Msg("Billing account skipped")
	}
	a.logger.Info().Str("run_id", result.RunID).Msg(result.Summary())

	return output.FormatRecords(result.Records, output.DetectFormat(a.config.Format))
}

// NewSchemaCommand creates the schema command.
func (a *App) NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "schema",
		GroupID: "core",
		Short:   "Print the JSON schema of the recognized sync options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output.Format(a.config.Format)
			if format == "" || format == output.FormatTable || format == output.FormatWide {
				// A nested schema does not tabulate
				format = output.FormatJSON
			}
			return output.FormatAny(accounts.OptionsSchema(), format)
		},
	}
}

// NewServeCommand creates the serve command.
func (a *App) NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Run the plugin HTTP server",
		Long: `Serve starts the plugin HTTP server.

Endpoints:
  POST /plugin/init  - plugin metadata and options schema
  POST /plugin/sync  - run a discovery pass with the posted credentials
  GET  /healthz      - liveness probe

Credentials arrive per request in the sync call body; the server itself
needs none.`,
		Example: `  tenantmap serve
  tenantmap serve --port 3000
  tenantmap serve --host 0.0.0.0 --port 8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := server.DefaultConfig()
			cfg.Host = mustGetString(cmd, "host")
			cfg.Port, _ = cmd.Flags().GetInt("port")
			cfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
			cfg.WriteTimeout, _ = cmd.Flags().GetDuration("write-timeout")
			cfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")

			srv := server.New(a.factory, cfg, a.logger)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().String("host", defaults.Host, "bind address")
	cmd.Flags().IntP("port", "p", defaults.Port, "server port")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout (bounds a whole sync call)")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tenantmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
