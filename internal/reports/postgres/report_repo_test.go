// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawradar/pawradar/internal/pets"
	"github.com/pawradar/pawradar/internal/reports"
	"github.com/pawradar/pawradar/internal/reports/postgres"
	"github.com/pawradar/pawradar/pkg/errutil"
)

var reportRows = []string{
	"id", "pet_id", "reporter_name", "reporter_phone", "reporter_email",
	"message", "latitude", "longitude", "created_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func testReport() *reports.Report {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &reports.Report{
		ID:            ulid.Make(),
		PetID:         ulid.Make(),
		ReporterName:  "Grace",
		ReporterPhone: "+1 555 0100",
		ReporterEmail: "grace@example.com",
		Message:       "Near the park gate",
		Location:      pets.Location{Latitude: 48.8566, Longitude: 2.3522},
		CreatedAt:     now,
	}
}

func TestReportRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		report := testReport()

		mock.ExpectExec("INSERT INTO reports").
			WithArgs(report.ID.String(), report.PetID.String(), report.ReporterName,
				report.ReporterPhone, report.ReporterEmail, report.Message,
				report.Location.Latitude, report.Location.Longitude, report.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewReportRepository(mock)
		require.NoError(t, repo.Create(ctx, report))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure", func(t *testing.T) {
		mock := newMockPool(t)
		report := testReport()

		mock.ExpectExec("INSERT INTO reports").
			WithArgs(report.ID.String(), report.PetID.String(), report.ReporterName,
				report.ReporterPhone, report.ReporterEmail, report.Message,
				report.Location.Latitude, report.Location.Longitude, report.CreatedAt).
			WillReturnError(errors.New("disk full"))

		repo := postgres.NewReportRepository(mock)
		err := repo.Create(ctx, report)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "REPORT_CREATE_FAILED")
	})
}

func TestReportRepository_ListByPet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the pet's reports", func(t *testing.T) {
		mock := newMockPool(t)
		report := testReport()

		rows := pgxmock.NewRows(reportRows).
			AddRow(report.ID.String(), report.PetID.String(), report.ReporterName,
				report.ReporterPhone, report.ReporterEmail, report.Message,
				report.Location.Latitude, report.Location.Longitude, report.CreatedAt)
		mock.ExpectQuery("WHERE pet_id").
			WithArgs(report.PetID.String()).
			WillReturnRows(rows)

		repo := postgres.NewReportRepository(mock)
		got, err := repo.ListByPet(ctx, report.PetID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, report, got[0])
	})

	t.Run("no reports yields empty list", func(t *testing.T) {
		mock := newMockPool(t)
		petID := ulid.Make()

		mock.ExpectQuery("WHERE pet_id").
			WithArgs(petID.String()).
			WillReturnRows(pgxmock.NewRows(reportRows))

		repo := postgres.NewReportRepository(mock)
		got, err := repo.ListByPet(ctx, petID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
