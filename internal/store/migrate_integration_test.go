// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

//go:build integration

package store_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pawradar/pawradar/internal/store"
)

// startPostgres runs a throwaway PostgreSQL container and returns its
// connection string plus a cleanup func.
func startPostgres() (string, func(), error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("pawradar_test"),
		postgres.WithUsername("pawradar"),
		postgres.WithPassword("pawradar"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return "", nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, err
	}

	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return connStr, cleanup, nil
}

var _ = Describe("Migrator", func() {
	var (
		connStr string
		cleanup func()
	)

	BeforeEach(func() {
		var err error
		connStr, cleanup, err = startPostgres()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		cleanup()
	})

	It("applies and rolls back the full schema", func() {
		m, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		Expect(m.Up()).To(Succeed())

		version, dirty, err := m.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(dirty).To(BeFalse())
		Expect(version).To(BeNumerically(">=", 3))

		// Up is idempotent.
		Expect(m.Up()).To(Succeed())

		Expect(m.Down()).To(Succeed())
		version, dirty, err = m.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(dirty).To(BeFalse())
		Expect(version).To(BeZero())
	})

	It("creates the expected tables", func() {
		m, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()
		Expect(m.Up()).To(Succeed())

		ctx := context.Background()
		pool, err := store.Connect(ctx, connStr)
		Expect(err).NotTo(HaveOccurred())
		defer pool.Close()

		for _, table := range []string{"accounts", "credentials", "pets", "reports"} {
			var exists bool
			err := pool.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
				table).Scan(&exists)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue(), "table %s should exist", table)
		}
	})
})
