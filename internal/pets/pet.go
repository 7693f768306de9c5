// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package pets manages pet profiles, their lost/found state, and
// proximity queries around a location.
package pets

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

var (
	// ErrNotFound is returned when a requested pet does not exist.
	ErrNotFound = errors.New("pet not found")

	// ErrNotOwner is returned when an account tries to modify a pet it
	// does not own.
	ErrNotOwner = errors.New("not the pet's owner")
)

// Status is a pet's lost/found state.
type Status string

// Pet statuses. Home is the resting state; Lost and Found drive the
// radar: lost pets show up for nearby users, found ones notify owners.
const (
	StatusLost  Status = "lost"
	StatusFound Status = "found"
	StatusHome  Status = "home"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusLost, StatusFound, StatusHome:
		return Status(s), nil
	default:
		return "", oops.Code("PET_INVALID_STATUS").
			With("status", s).
			Errorf("status must be lost, found, or home")
	}
}

// MaxPetNameLength bounds pet display names.
const MaxPetNameLength = 100

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinates are on the globe.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return oops.Code("PET_INVALID_LOCATION").
			With("latitude", l.Latitude).
			Errorf("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return oops.Code("PET_INVALID_LOCATION").
			With("longitude", l.Longitude).
			Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// Pet is a registered pet and its last known location.
type Pet struct {
	ID          ulid.ULID
	OwnerID     ulid.ULID
	Name        string
	Description string
	Status      Status
	ImageURL    string
	ImageKey    string
	Location    Location
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPet creates a Pet with a fresh ULID, validating the fields.
func NewPet(ownerID ulid.ULID, name, description string, status Status, loc Location) (*Pet, error) {
	if name == "" {
		return nil, oops.Code("PET_INVALID_NAME").Errorf("name cannot be empty")
	}
	if len(name) > MaxPetNameLength {
		return nil, oops.Code("PET_INVALID_NAME").
			With("max", MaxPetNameLength).
			Errorf("name must be at most %d characters", MaxPetNameLength)
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Pet{
		ID:          ulid.Make(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Status:      status,
		Location:    loc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Repository manages pet persistence.
type Repository interface {
	// Create stores a new pet.
	Create(ctx context.Context, pet *Pet) error

	// GetByID retrieves a pet by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Pet, error)

	// ListByOwner retrieves all pets owned by an account, newest first.
	ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*Pet, error)

	// FindNear retrieves pets of any status within radiusKm of loc,
	// excluding pets owned by excludeOwner, nearest first.
	FindNear(ctx context.Context, loc Location, radiusKm float64, excludeOwner ulid.ULID) ([]*Pet, error)

	// Update updates an existing pet.
	Update(ctx context.Context, pet *Pet) error

	// Delete removes a pet.
	Delete(ctx context.Context, id ulid.ULID) error
}
