// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package postgres implements the reports repository on PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/pets"
	"github.com/pawradar/pawradar/internal/reports"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies
// it for unit tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ReportRepository implements reports.Repository using PostgreSQL.
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create stores a new report.
func (r *ReportRepository) Create(ctx context.Context, report *reports.Report) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reports (id, pet_id, reporter_name, reporter_phone, reporter_email,
			message, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		report.ID.String(),
		report.PetID.String(),
		report.ReporterName,
		report.ReporterPhone,
		report.ReporterEmail,
		report.Message,
		report.Location.Latitude,
		report.Location.Longitude,
		report.CreatedAt,
	)
	if err != nil {
		return oops.Code("REPORT_CREATE_FAILED").
			With("pet_id", report.PetID.String()).
			Wrap(err)
	}
	return nil
}

// ListByPet retrieves all reports for a pet, newest first.
func (r *ReportRepository) ListByPet(ctx context.Context, petID ulid.ULID) ([]*reports.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, pet_id, reporter_name, reporter_phone, reporter_email,
			message, latitude, longitude, created_at
		FROM reports
		WHERE pet_id = $1
		ORDER BY id DESC
	`, petID.String())
	if err != nil {
		return nil, oops.Code("REPORT_LIST_FAILED").
			With("pet_id", petID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var list []*reports.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, report)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("REPORT_ROWS_FAILED").Wrap(err)
	}
	return list, nil
}

func scanReport(row pgx.Row) (*reports.Report, error) {
	var (
		idStr     string
		petIDStr  string
		name      string
		phone     string
		email     string
		message   string
		latitude  float64
		longitude float64
		createdAt time.Time
	)

	err := row.Scan(&idStr, &petIDStr, &name, &phone, &email, &message,
		&latitude, &longitude, &createdAt)
	if err != nil {
		return nil, oops.Code("REPORT_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("REPORT_INVALID_ID").With("id", idStr).Wrap(err)
	}
	petID, err := ulid.Parse(petIDStr)
	if err != nil {
		return nil, oops.Code("REPORT_INVALID_PET_ID").With("pet_id", petIDStr).Wrap(err)
	}

	return &reports.Report{
		ID:            id,
		PetID:         petID,
		ReporterName:  name,
		ReporterPhone: phone,
		ReporterEmail: email,
		Message:       message,
		Location:      pets.Location{Latitude: latitude, Longitude: longitude},
		CreatedAt:     createdAt,
	}, nil
}

// Compile-time interface check.
var _ reports.Repository = (*ReportRepository)(nil)
