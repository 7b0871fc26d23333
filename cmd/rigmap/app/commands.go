package app

import (
	"github.com/spf13/cobra"

	"github.com/hamcat/rigmap/cmd/rigmap/cmd/export"
	"github.com/hamcat/rigmap/cmd/rigmap/cmd/grantees"
	"github.com/hamcat/rigmap/cmd/rigmap/cmd/importer"
	"github.com/hamcat/rigmap/cmd/rigmap/cmd/list"
	"github.com/hamcat/rigmap/cmd/rigmap/cmd/maintain"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(importer.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(grantees.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))

	// Maintenance commands
	rootCmd.AddCommand(maintain.NewDedupeCommand(a))
	rootCmd.AddCommand(maintain.NewRenameCommand(a))
	rootCmd.AddCommand(maintain.NewCleanPrefixCommand(a))
	rootCmd.AddCommand(maintain.NewSyncBrandsCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rigmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
