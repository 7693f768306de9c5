// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package pets

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/media"
	"github.com/pawradar/pawradar/internal/observability"
	"github.com/pawradar/pawradar/internal/search"
	"github.com/pawradar/pawradar/pkg/errutil"
)

// AroundRadiusKm is how far the radar looks for nearby pets.
const AroundRadiusKm = 10.0

// Service provides pet operations. The database is the source of truth;
// the search index and image store are kept in sync best-effort, with
// failures logged rather than surfaced.
type Service struct {
	pets   Repository
	images media.ImageStore
	index  search.Indexer
	logger *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(pets Repository, images media.ImageStore, index search.Indexer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pets:   pets,
		images: images,
		index:  index,
		logger: logger,
	}
}

// PetParams are the mutable fields of a pet.
type PetParams struct {
	Name        string
	Description string
	Status      Status
	Location    Location

	// Image is an optional new image; when set, ImageContentType must be
	// one of the accepted image types.
	Image            []byte
	ImageContentType string
}

// Create registers a new pet for the owner, uploading its image and
// mirroring it into the search index.
func (s *Service) Create(ctx context.Context, ownerID ulid.ULID, params PetParams) (*Pet, error) {
	pet, err := NewPet(ownerID, params.Name, params.Description, params.Status, params.Location)
	if err != nil {
		return nil, err
	}

	if len(params.Image) > 0 {
		url, key, err := s.images.Upload(ctx, params.ImageContentType, params.Image)
		if err != nil {
			return nil, oops.Code("PET_IMAGE_UPLOAD_FAILED").
				With("pet", pet.Name).
				Wrap(err)
		}
		pet.ImageURL = url
		pet.ImageKey = key
	}

	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, oops.Code("PET_CREATE_FAILED").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}

	s.indexPet(ctx, pet)
	return pet, nil
}

// Get retrieves a pet by ID.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("PET_NOT_FOUND").
				With("id", id.String()).
				Wrap(err)
		}
		return nil, oops.Code("PET_GET_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return pet, nil
}

// Mine lists the pets owned by an account, newest first.
func (s *Service) Mine(ctx context.Context, ownerID ulid.ULID) ([]*Pet, error) {
	list, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, oops.Code("PET_LIST_FAILED").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}
	return list, nil
}

// Around lists pets within AroundRadiusKm of loc, whatever their status.
// The viewer's own pets are excluded; they already know where those are.
func (s *Service) Around(ctx context.Context, viewerID ulid.ULID, loc Location) ([]*Pet, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	list, err := s.pets.FindNear(ctx, loc, AroundRadiusKm, viewerID)
	if err != nil {
		return nil, oops.Code("PET_AROUND_FAILED").
			With("latitude", loc.Latitude).
			With("longitude", loc.Longitude).
			Wrap(err)
	}
	return list, nil
}

// Update replaces a pet's mutable fields. Only the owner may update a
// pet; ownership comes from the session, never the request body.
func (s *Service) Update(ctx context.Context, actorID, petID ulid.ULID, params PetParams) (*Pet, error) {
	pet, err := s.Get(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != actorID {
		return nil, oops.Code("PET_FORBIDDEN").
			With("pet_id", petID.String()).
			With("actor_id", actorID.String()).
			Wrap(ErrNotOwner)
	}

	if params.Name != "" {
		pet.Name = params.Name
	}
	pet.Description = params.Description
	if params.Status != "" {
		status, err := ParseStatus(string(params.Status))
		if err != nil {
			return nil, err
		}
		pet.Status = status
	}
	if err := params.Location.Validate(); err != nil {
		return nil, err
	}
	pet.Location = params.Location

	if len(params.Image) > 0 {
		url, key, err := s.images.Upload(ctx, params.ImageContentType, params.Image)
		if err != nil {
			return nil, oops.Code("PET_IMAGE_UPLOAD_FAILED").
				With("pet_id", petID.String()).
				Wrap(err)
		}
		oldKey := pet.ImageKey
		pet.ImageURL = url
		pet.ImageKey = key
		if oldKey != "" {
			if err := s.images.Delete(ctx, oldKey); err != nil {
				observability.RecordSideEffectFailure("image_delete")
				errutil.LogError(s.logger, "failed to delete replaced pet image", err)
			}
		}
	}

	pet.UpdatedAt = time.Now()
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, oops.Code("PET_UPDATE_FAILED").
			With("pet_id", petID.String()).
			Wrap(err)
	}

	s.indexPet(ctx, pet)
	return pet, nil
}

// Delete removes a pet, its image, and its search document. Only the
// owner may delete a pet.
func (s *Service) Delete(ctx context.Context, actorID, petID ulid.ULID) error {
	pet, err := s.Get(ctx, petID)
	if err != nil {
		return err
	}
	if pet.OwnerID != actorID {
		return oops.Code("PET_FORBIDDEN").
			With("pet_id", petID.String()).
			With("actor_id", actorID.String()).
			Wrap(ErrNotOwner)
	}

	if err := s.pets.Delete(ctx, petID); err != nil {
		return oops.Code("PET_DELETE_FAILED").
			With("pet_id", petID.String()).
			Wrap(err)
	}

	if pet.ImageKey != "" {
		if err := s.images.Delete(ctx, pet.ImageKey); err != nil {
			observability.RecordSideEffectFailure("image_delete")
			errutil.LogError(s.logger, "failed to delete pet image", err)
		}
	}
	if err := s.index.DeletePet(ctx, petID.String()); err != nil {
		observability.RecordSideEffectFailure("pet_index")
		errutil.LogError(s.logger, "failed to remove pet from search index", err)
	}
	return nil
}

// indexPet mirrors a pet into the search index, logging failures.
func (s *Service) indexPet(ctx context.Context, pet *Pet) {
	doc := search.PetDocument{
		ObjectID:    pet.ID.String(),
		OwnerID:     pet.OwnerID.String(),
		Name:        pet.Name,
		Description: pet.Description,
		Status:      string(pet.Status),
		ImageURL:    pet.ImageURL,
		Geoloc: search.Geoloc{
			Lat: pet.Location.Latitude,
			Lng: pet.Location.Longitude,
		},
	}
	if err := s.index.IndexPet(ctx, doc); err != nil {
		observability.RecordSideEffectFailure("pet_index")
		errutil.LogError(s.logger, "failed to index pet", err)
	}
}
