package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the PawRadar CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pawradar",
		Short: "PawRadar - a lost-and-found pet finder backend",
		Long: `PawRadar is the backend for a lost-and-found pet finder: accounts,
pets with geolocation, found-pet reports, and owner notifications.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}
