// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package reports handles "I found this pet" reports filed by passers-by.
// Reporters don't need an account; their contact details live on the
// report itself.
package reports

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/pets"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// MaxMessageLength bounds the free-form message a reporter can leave.
const MaxMessageLength = 2000

// Report is a found-pet sighting. Location is where the reporter saw the
// pet, not where they live.
type Report struct {
	ID            ulid.ULID
	PetID         ulid.ULID
	ReporterName  string
	ReporterPhone string
	ReporterEmail string
	Message       string
	Location      pets.Location
	CreatedAt     time.Time
}

// NewReport creates a Report with a fresh ULID, validating the fields.
func NewReport(petID ulid.ULID, reporterName, reporterPhone, reporterEmail, message string, loc pets.Location) (*Report, error) {
	if reporterName == "" {
		return nil, oops.Code("REPORT_INVALID_NAME").Errorf("reporter name cannot be empty")
	}
	if len(message) > MaxMessageLength {
		return nil, oops.Code("REPORT_INVALID_MESSAGE").
			With("max", MaxMessageLength).
			Errorf("message must be at most %d characters", MaxMessageLength)
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	return &Report{
		ID:            ulid.Make(),
		PetID:         petID,
		ReporterName:  reporterName,
		ReporterPhone: reporterPhone,
		ReporterEmail: reporterEmail,
		Message:       message,
		Location:      loc,
		CreatedAt:     time.Now(),
	}, nil
}

// Repository manages report persistence.
type Repository interface {
	// Create stores a new report.
	Create(ctx context.Context, report *Report) error

	// ListByPet retrieves all reports for a pet, newest first.
	ListByPet(ctx context.Context, petID ulid.ULID) ([]*Report, error)
}
