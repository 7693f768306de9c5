// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package search mirrors accounts and pets into a search index so the
// frontend can do instant and geo search. Indexing is best-effort: the
// database is the source of truth and callers log failures instead of
// propagating them.
package search

import "context"

// Geoloc is the coordinate attribute Algolia uses for geo queries.
type Geoloc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PetDocument is the indexed projection of a pet.
type PetDocument struct {
	ObjectID    string `json:"objectID"`
	OwnerID     string `json:"ownerID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ImageURL    string `json:"imageURL"`
	Geoloc      Geoloc `json:"_geoloc"`
}

// AccountDocument is the indexed projection of an account profile. Geoloc
// is nil until the account sets a location.
type AccountDocument struct {
	ObjectID string  `json:"objectID"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Geoloc   *Geoloc `json:"_geoloc,omitempty"`
}

// Indexer maintains the pet search index.
type Indexer interface {
	// IndexPet upserts a pet document.
	IndexPet(ctx context.Context, doc PetDocument) error

	// DeletePet removes a pet document by object ID.
	DeletePet(ctx context.Context, objectID string) error
}

// AccountIndexer maintains the account search index.
type AccountIndexer interface {
	// IndexAccount upserts an account document.
	IndexAccount(ctx context.Context, doc AccountDocument) error

	// DeleteAccount removes an account document by object ID.
	DeleteAccount(ctx context.Context, objectID string) error
}

// NoopIndexer discards every operation. Used when no search credentials
// are configured.
type NoopIndexer struct{}

// IndexPet does nothing.
func (NoopIndexer) IndexPet(_ context.Context, _ PetDocument) error { return nil }

// DeletePet does nothing.
func (NoopIndexer) DeletePet(_ context.Context, _ string) error { return nil }

// IndexAccount does nothing.
func (NoopIndexer) IndexAccount(_ context.Context, _ AccountDocument) error { return nil }

// DeleteAccount does nothing.
func (NoopIndexer) DeleteAccount(_ context.Context, _ string) error { return nil }

var (
	_ Indexer        = NoopIndexer{}
	_ AccountIndexer = NoopIndexer{}
)
