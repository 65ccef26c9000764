package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tenantadmin",
		Short: "Tenant administration console",
		Long:  `tenantadmin lists, filters and registers tenant companies. Run without a subcommand to open the console.`,
		RunE:  runConsole,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tenantadmin/config.toml)")

	rootCmd.AddCommand(
		newConsoleCommand(),
		newServeCommand(),
		newSummaryCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newResetCommand(),
		newTokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
