package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tenantdesk/helpdesk/internal/interfaces/cli/migrate"
	"github.com/tenantdesk/helpdesk/internal/interfaces/cli/seed"
	"github.com/tenantdesk/helpdesk/internal/interfaces/cli/server"
	"github.com/tenantdesk/helpdesk/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "helpdesk",
		Short:   "Helpdesk - multi-tenant ticketing API",
		Long:    `Helpdesk serves the ticketing API and ships the migration and seeding tools that go with it.`,
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
