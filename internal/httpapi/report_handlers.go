// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/pawradar/pawradar/internal/pets"
	"github.com/pawradar/pawradar/internal/reports"
)

type createReportRequest struct {
	PetID     string  `json:"petId"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type reportResponse struct {
	ID        string `json:"id"`
	PetID     string `json:"petId"`
	CreatedAt string `json:"createdAt"`
}

// handleCreateReport files a found-pet report. Reporters don't need a
// session; the endpoint is what the "I found this pet" poster QR links to.
func (s *Server) handleCreateReport(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}

	petID, err := ulid.Parse(req.PetID)
	if err != nil {
		respondBadRequest(c, "malformed pet id")
		return
	}

	report, err := s.reports.Create(c.Request.Context(), reports.ReportParams{
		PetID:         petID,
		ReporterName:  req.Name,
		ReporterPhone: req.Phone,
		ReporterEmail: req.Email,
		Message:       req.Message,
		Location:      pets.Location{Latitude: req.Latitude, Longitude: req.Longitude},
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reportResponse{
		ID:        report.ID.String(),
		PetID:     report.PetID.String(),
		CreatedAt: report.CreatedAt.UTC().Format(time.RFC3339),
	})
}

type petReportResponse struct {
	ID           string  `json:"id"`
	ReporterName string  `json:"reporterName"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
	Message      string  `json:"message,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	CreatedAt    string  `json:"createdAt"`
}

// handlePetReports lists the sightings filed for one of the caller's
// pets, newest first. Reports contain reporter contact details, so only
// the pet's owner may read them.
func (s *Server) handlePetReports(c *gin.Context) {
	petID, ok := petIDParam(c)
	if !ok {
		return
	}

	pet, err := s.pets.Get(c.Request.Context(), petID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if pet.OwnerID != sessionAccount(c).ID {
		c.JSON(http.StatusForbidden, errorResponse{Error: "not your pet"})
		return
	}

	list, err := s.reports.ListByPet(c.Request.Context(), petID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]petReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, petReportResponse{
			ID:           r.ID.String(),
			ReporterName: r.ReporterName,
			Phone:        r.ReporterPhone,
			Email:        r.ReporterEmail,
			Message:      r.Message,
			Latitude:     r.Location.Latitude,
			Longitude:    r.Location.Longitude,
			CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
