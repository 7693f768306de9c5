// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawradar/pawradar/internal/auth"
	authpg "github.com/pawradar/pawradar/internal/auth/postgres"
	"github.com/pawradar/pawradar/internal/config"
	"github.com/pawradar/pawradar/internal/pets"
	petspg "github.com/pawradar/pawradar/internal/pets/postgres"
	"github.com/pawradar/pawradar/internal/seed"
	"github.com/pawradar/pawradar/internal/store"
)

// Default timeout for the seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load development accounts and pets from a seed file",
		Long: `Creates the accounts and pets described in a YAML seed file.
This command is idempotent: accounts whose email already exists are
skipped along with their pets.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.file, "file", "seed.yaml", "seed YAML file path")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, seedCfg *seedConfig) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	data, err := seed.LoadFile(seedCfg.file)
	if err != nil {
		return err
	}

	// Use cmd.Context() so SIGINT/SIGTERM cancels database work.
	ctx, cancel := context.WithTimeout(cmd.Context(), seedCfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	cmd.Println("Running migrations...")
	if err := migrateUp(cfg.Database.URL); err != nil {
		return err
	}

	accounts := authpg.NewAccountRepository(pool)
	petRepo := petspg.NewPetRepository(pool)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	created, skipped := 0, 0
	for _, sa := range data.Accounts {
		account, err := seedAccount(ctx, accounts, hasher, sa)
		if err != nil {
			if errors.Is(err, auth.ErrEmailTaken) {
				skipped++
				cmd.Printf("Skipping %s: already registered\n", sa.Email)
				continue
			}
			return err
		}
		created++

		for _, sp := range sa.Pets {
			if err := seedPet(ctx, petRepo, account, sp); err != nil {
				return err
			}
		}
	}

	cmd.Printf("Seed complete: %d account(s) created, %d skipped\n", created, skipped)
	return nil
}

func seedAccount(ctx context.Context, repo *authpg.AccountRepository, hasher auth.PasswordHasher, sa seed.Account) (*auth.Account, error) {
	account, err := auth.NewAccount(sa.Name, sa.Email, sa.Phone)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidateCoordinates(sa.Latitude, sa.Longitude); err != nil {
		return nil, err
	}
	account.Location = sa.Location
	account.Latitude = sa.Latitude
	account.Longitude = sa.Longitude

	hash, err := hasher.Hash(sa.Password)
	if err != nil {
		return nil, err
	}

	if err := repo.Create(ctx, account, hash); err != nil {
		return nil, err
	}
	return account, nil
}

func seedPet(ctx context.Context, repo *petspg.PetRepository, owner *auth.Account, sp seed.Pet) error {
	status, err := pets.ParseStatus(sp.Status)
	if err != nil {
		return err
	}

	pet, err := pets.NewPet(owner.ID, sp.Name, sp.Description, status,
		pets.Location{Latitude: sp.Latitude, Longitude: sp.Longitude})
	if err != nil {
		return err
	}
	return repo.Create(ctx, pet)
}
