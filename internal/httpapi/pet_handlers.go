// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/pawradar/pawradar/internal/pets"
)

// maxImageBytes caps uploaded pet photos at 8 MiB.
const maxImageBytes = 8 << 20

// petResponse is the JSON projection of a pet.
type petResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CreatedAt   string  `json:"createdAt"`
}

func toPetResponse(pet *pets.Pet) petResponse {
	return petResponse{
		ID:          pet.ID.String(),
		OwnerID:     pet.OwnerID.String(),
		Name:        pet.Name,
		Description: pet.Description,
		Status:      string(pet.Status),
		ImageURL:    pet.ImageURL,
		Latitude:    pet.Location.Latitude,
		Longitude:   pet.Location.Longitude,
		CreatedAt:   pet.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPetListResponse(list []*pets.Pet) []petResponse {
	out := make([]petResponse, 0, len(list))
	for _, pet := range list {
		out = append(out, toPetResponse(pet))
	}
	return out
}

// petParamsFromForm reads the multipart form fields shared by pet create
// and update. The image part is optional.
func (s *Server) petParamsFromForm(c *gin.Context) (pets.PetParams, bool) {
	latitude, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err != nil {
		respondBadRequest(c, "latitude must be a number")
		return pets.PetParams{}, false
	}
	longitude, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if err != nil {
		respondBadRequest(c, "longitude must be a number")
		return pets.PetParams{}, false
	}

	params := pets.PetParams{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Status:      pets.Status(c.PostForm("status")),
		Location:    pets.Location{Latitude: latitude, Longitude: longitude},
	}

	file, header, err := c.Request.FormFile("image")
	if err == http.ErrMissingFile {
		return params, true
	}
	if err != nil {
		respondBadRequest(c, "malformed image upload")
		return pets.PetParams{}, false
	}
	defer file.Close() //nolint:errcheck // read-only file

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		respondBadRequest(c, "failed to read image upload")
		return pets.PetParams{}, false
	}
	if len(data) > maxImageBytes {
		respondBadRequest(c, "image exceeds the 8 MiB limit")
		return pets.PetParams{}, false
	}

	params.Image = data
	params.ImageContentType = header.Header.Get("Content-Type")
	return params, true
}

func (s *Server) handleCreatePet(c *gin.Context) {
	params, ok := s.petParamsFromForm(c)
	if !ok {
		return
	}

	pet, err := s.pets.Create(c.Request.Context(), sessionAccount(c).ID, params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPetResponse(pet))
}

func (s *Server) handleMyPets(c *gin.Context) {
	list, err := s.pets.Mine(c.Request.Context(), sessionAccount(c).ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetListResponse(list))
}

func (s *Server) handleGetPet(c *gin.Context) {
	petID, ok := petIDParam(c)
	if !ok {
		return
	}

	pet, err := s.pets.Get(c.Request.Context(), petID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetResponse(pet))
}

func (s *Server) handleUpdatePet(c *gin.Context) {
	petID, ok := petIDParam(c)
	if !ok {
		return
	}
	params, ok := s.petParamsFromForm(c)
	if !ok {
		return
	}

	pet, err := s.pets.Update(c.Request.Context(), sessionAccount(c).ID, petID, params)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetResponse(pet))
}

func (s *Server) handleDeletePet(c *gin.Context) {
	petID, ok := petIDParam(c)
	if !ok {
		return
	}

	if err := s.pets.Delete(c.Request.Context(), sessionAccount(c).ID, petID); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pet deleted"})
}

func (s *Server) handlePetsAround(c *gin.Context) {
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		respondBadRequest(c, "latitude must be a number")
		return
	}
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		respondBadRequest(c, "longitude must be a number")
		return
	}

	list, err := s.pets.Around(c.Request.Context(), sessionAccount(c).ID,
		pets.Location{Latitude: latitude, Longitude: longitude})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPetListResponse(list))
}

// petIDParam parses the :id route parameter.
func petIDParam(c *gin.Context) (ulid.ULID, bool) {
	id, err := ulid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "malformed pet id")
		return ulid.ULID{}, false
	}
	return id, true
}
