// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pawradar/pawradar/internal/config"
	"github.com/pawradar/pawradar/internal/store"
)

// NewMigrateCmd creates the migrate subcommand and its actions.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
		Long:  `Apply, roll back, or inspect the embedded schema migrations.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *store.Migrator) error {
					if err := m.Up(); err != nil {
						return err
					}
					cmd.Println("Migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations, dropping every table",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *store.Migrator) error {
					if err := m.Down(); err != nil {
						return err
					}
					cmd.Println("Migrations rolled back")
					return nil
				})
			},
		},
		newMigrateStepsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show the current migration version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *store.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					cmd.Printf("version: %d dirty: %t\n", version, dirty)
					return nil
				})
			},
		},
		newMigrateForceCmd(),
	)

	return cmd
}

func newMigrateStepsCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Apply n migrations (negative n migrates down)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *store.Migrator) error {
				if err := m.Steps(n); err != nil {
					return err
				}
				cmd.Printf("Applied %d migration step(s)\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 1, "number of steps; negative migrates down")
	return cmd
}

func newMigrateForceCmd() *cobra.Command {
	var version int
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Set the migration version without running migrations",
		Long: `Set the schema version record directly. Only useful for recovering
from a dirty migration state after fixing the database by hand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *store.Migrator) error {
				if err := m.Force(version); err != nil {
					return err
				}
				cmd.Printf("Forced version to %d\n", version)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "version to force")
	_ = cmd.MarkFlagRequired("version") //nolint:errcheck // flag exists
	return cmd
}

// withMigrator loads config, opens a migrator, runs fn, and closes it.
func withMigrator(fn func(*store.Migrator) error) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("failed to close migrator", "error", closeErr)
		}
	}()

	return fn(migrator)
}
