// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package reports

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/mail"
	"github.com/pawradar/pawradar/internal/observability"
	"github.com/pawradar/pawradar/internal/pets"
	"github.com/pawradar/pawradar/pkg/errutil"
)

// Service files found-pet reports and notifies pet owners. The report row
// is the primary write; the owner email is a logged, non-transactional
// side effect.
type Service struct {
	reports  Repository
	pets     pets.Repository
	accounts auth.AccountRepository
	mailer   mail.Mailer
	logger   *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(
	reports Repository,
	petRepo pets.Repository,
	accounts auth.AccountRepository,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reports:  reports,
		pets:     petRepo,
		accounts: accounts,
		mailer:   mailer,
		logger:   logger,
	}
}

// ReportParams are the fields a reporter submits.
type ReportParams struct {
	PetID         ulid.ULID
	ReporterName  string
	ReporterPhone string
	ReporterEmail string
	Message       string
	Location      pets.Location
}

// Create files a report for a pet and emails the pet's owner. An unknown
// pet fails before anything is stored and sends no email.
func (s *Service) Create(ctx context.Context, params ReportParams) (*Report, error) {
	pet, err := s.pets.GetByID(ctx, params.PetID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return nil, oops.Code("PET_NOT_FOUND").
				With("pet_id", params.PetID.String()).
				Wrap(err)
		}
		return nil, oops.Code("REPORT_CREATE_FAILED").
			With("operation", "get pet").
			Wrap(err)
	}

	report, err := NewReport(params.PetID, params.ReporterName, params.ReporterPhone,
		params.ReporterEmail, params.Message, params.Location)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, oops.Code("REPORT_CREATE_FAILED").
			With("pet_id", params.PetID.String()).
			Wrap(err)
	}

	s.notifyOwner(ctx, pet, report)
	return report, nil
}

// ListByPet retrieves all reports filed for a pet, newest first.
func (s *Service) ListByPet(ctx context.Context, petID ulid.ULID) ([]*Report, error) {
	list, err := s.reports.ListByPet(ctx, petID)
	if err != nil {
		return nil, oops.Code("REPORT_LIST_FAILED").
			With("pet_id", petID.String()).
			Wrap(err)
	}
	return list, nil
}

// notifyOwner emails the pet's owner about the sighting, logging failures.
func (s *Service) notifyOwner(ctx context.Context, pet *pets.Pet, report *Report) {
	owner, err := s.accounts.GetByID(ctx, pet.OwnerID)
	if err != nil {
		observability.RecordSideEffectFailure("report_email")
		errutil.LogError(s.logger, "failed to load pet owner for report email", err)
		return
	}

	msg, err := mail.ComposeReport(mail.ReportParams{
		To:          owner.Email,
		OwnerName:   owner.Name,
		PetName:     pet.Name,
		FinderName:  report.ReporterName,
		FinderPhone: report.ReporterPhone,
		Message:     report.Message,
	})
	if err != nil {
		errutil.LogError(s.logger, "failed to compose report email", err)
		return
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		observability.RecordSideEffectFailure("report_email")
		errutil.LogError(s.logger, "failed to send report email", err)
	}
}
