// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package postgres implements the pets repository on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/pets"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock satisfies
// it for unit tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PetRepository implements pets.Repository using PostgreSQL.
type PetRepository struct {
	db DB
}

// NewPetRepository creates a new PetRepository.
func NewPetRepository(db DB) *PetRepository {
	return &PetRepository{db: db}
}

const petColumns = `id, owner_id, name, description, status, image_url, image_key,
	latitude, longitude, created_at, updated_at`

// Create stores a new pet.
func (r *PetRepository) Create(ctx context.Context, pet *pets.Pet) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		pet.ID.String(),
		pet.OwnerID.String(),
		pet.Name,
		pet.Description,
		string(pet.Status),
		pet.ImageURL,
		pet.ImageKey,
		pet.Location.Latitude,
		pet.Location.Longitude,
		pet.CreatedAt,
		pet.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PET_CREATE_FAILED").
			With("owner_id", pet.OwnerID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a pet by ID.
func (r *PetRepository) GetByID(ctx context.Context, id ulid.ULID) (*pets.Pet, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id.String())

	pet, err := scanPet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PET_NOT_FOUND").
			With("id", id.String()).
			Wrap(pets.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PET_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return pet, nil
}

// ListByOwner retrieves all pets owned by an account, newest first.
// ULIDs sort chronologically, so ordering by id is ordering by creation.
func (r *PetRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*pets.Pet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_id = $1
		ORDER BY id DESC
	`, ownerID.String())
	if err != nil {
		return nil, oops.Code("PET_LIST_FAILED").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}
	defer rows.Close()

	return collectPets(rows)
}

// FindNear retrieves pets of any status within radiusKm of loc, excluding
// pets owned by excludeOwner, nearest first. Distance is great-circle via
// the haversine formula; at a 10km radius the spherical-earth error is
// noise.
func (r *PetRepository) FindNear(ctx context.Context, loc pets.Location, radiusKm float64, excludeOwner ulid.ULID) ([]*pets.Pet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+petColumns+`
		FROM (
			SELECT `+petColumns+`,
				(6371 * acos(least(1.0,
					cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2)) +
					sin(radians($1)) * sin(radians(latitude))
				))) AS distance_km
			FROM pets
			WHERE owner_id <> $3
		) nearby
		WHERE distance_km <= $4
		ORDER BY distance_km
	`, loc.Latitude, loc.Longitude, excludeOwner.String(), radiusKm)
	if err != nil {
		return nil, oops.Code("PET_FIND_NEAR_FAILED").
			With("latitude", loc.Latitude).
			With("longitude", loc.Longitude).
			With("radius_km", radiusKm).
			Wrap(err)
	}
	defer rows.Close()

	return collectPets(rows)
}

// Update updates an existing pet.
func (r *PetRepository) Update(ctx context.Context, pet *pets.Pet) error {
	result, err := r.db.Exec(ctx, `
		UPDATE pets SET
			name = $2,
			description = $3,
			status = $4,
			image_url = $5,
			image_key = $6,
			latitude = $7,
			longitude = $8,
			updated_at = $9
		WHERE id = $1
	`,
		pet.ID.String(),
		pet.Name,
		pet.Description,
		string(pet.Status),
		pet.ImageURL,
		pet.ImageKey,
		pet.Location.Latitude,
		pet.Location.Longitude,
		pet.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PET_UPDATE_FAILED").
			With("id", pet.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PET_NOT_FOUND").
			With("id", pet.ID.String()).
			Wrap(pets.ErrNotFound)
	}
	return nil
}

// Delete removes a pet.
func (r *PetRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("PET_DELETE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PET_NOT_FOUND").
			With("id", id.String()).
			Wrap(pets.ErrNotFound)
	}
	return nil
}

// scanPet scans a single row into a Pet.
// Callers are responsible for handling pgx.ErrNoRows.
func scanPet(row pgx.Row) (*pets.Pet, error) {
	var (
		idStr      string
		ownerIDStr string
		name       string
		desc       string
		statusStr  string
		imageURL   string
		imageKey   string
		latitude   float64
		longitude  float64
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := row.Scan(&idStr, &ownerIDStr, &name, &desc, &statusStr, &imageURL, &imageKey,
		&latitude, &longitude, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("PET_SCAN_FAILED").Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("PET_INVALID_ID").With("id", idStr).Wrap(err)
	}
	ownerID, err := ulid.Parse(ownerIDStr)
	if err != nil {
		return nil, oops.Code("PET_INVALID_OWNER_ID").With("owner_id", ownerIDStr).Wrap(err)
	}

	return &pets.Pet{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		Description: desc,
		Status:      pets.Status(statusStr),
		ImageURL:    imageURL,
		ImageKey:    imageKey,
		Location:    pets.Location{Latitude: latitude, Longitude: longitude},
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// collectPets drains rows into a slice.
func collectPets(rows pgx.Rows) ([]*pets.Pet, error) {
	var list []*pets.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PET_ROWS_FAILED").Wrap(err)
	}
	return list, nil
}

// Compile-time interface check.
var _ pets.Repository = (*PetRepository)(nil)
