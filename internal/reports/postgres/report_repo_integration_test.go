// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pawradar/pawradar/internal/auth"
	authpg "github.com/pawradar/pawradar/internal/auth/postgres"
	"github.com/pawradar/pawradar/internal/pets"
	petspg "github.com/pawradar/pawradar/internal/pets/postgres"
	"github.com/pawradar/pawradar/internal/reports"
	"github.com/pawradar/pawradar/internal/reports/postgres"
	"github.com/pawradar/pawradar/internal/store"
)

// testPool is the shared database pool for integration tests.
var testPool *pgxpool.Pool

// TestMain sets up a PostgreSQL testcontainer and runs all migrations.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pawradar_test"),
		tcpostgres.WithUsername("pawradar"),
		tcpostgres.WithPassword("pawradar"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get connection string: " + err.Error())
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create migrator: " + err.Error())
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		_ = container.Terminate(ctx)
		panic("failed to run migrations: " + err.Error())
	}
	_ = migrator.Close()

	pool, err := store.Connect(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create pool: " + err.Error())
	}
	testPool = pool

	code := m.Run()

	pool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createPetWithOwner(t *testing.T, email string) *pets.Pet {
	t.Helper()
	ctx := context.Background()

	account, err := auth.NewAccount("Report Owner", email, "")
	require.NoError(t, err)
	require.NoError(t, authpg.NewAccountRepository(testPool).Create(ctx, account, "owner-hash"))
	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, account.ID.String())
	})

	pet, err := pets.NewPet(account.ID, "Rex", "", pets.StatusLost,
		pets.Location{Latitude: 48.8566, Longitude: 2.3522})
	require.NoError(t, err)
	require.NoError(t, petspg.NewPetRepository(testPool).Create(ctx, pet))
	return pet
}

func TestReportRepository_Roundtrip(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewReportRepository(testPool)
	pet := createPetWithOwner(t, "report-roundtrip@example.com")

	first, err := reports.NewReport(pet.ID, "Grace", "+1 555 0100", "grace@example.com",
		"Near the park gate", pets.Location{Latitude: 48.8570, Longitude: 2.3520})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := reports.NewReport(pet.ID, "Alan", "", "", "",
		pets.Location{Latitude: 48.8580, Longitude: 2.3530})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByPet(ctx, pet.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, "Grace", list[1].ReporterName)
}

func TestReportRepository_UnknownPetViolatesFK(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewReportRepository(testPool)

	orphan, err := reports.NewReport(ulid.Make(), "Grace", "", "", "",
		pets.Location{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	err = repo.Create(ctx, orphan)
	require.Error(t, err, "reports require an existing pet")
}

func TestReportRepository_CascadeFromPet(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewReportRepository(testPool)
	pet := createPetWithOwner(t, "report-cascade@example.com")

	report, err := reports.NewReport(pet.ID, "Grace", "", "", "",
		pets.Location{Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, report))

	require.NoError(t, petspg.NewPetRepository(testPool).Delete(ctx, pet.ID))

	list, err := repo.ListByPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "reports cascade with their pet")
}
