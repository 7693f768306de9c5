// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package search

import (
	"context"

	"github.com/algolia/algoliasearch-client-go/v4/algolia/search"
	"github.com/samber/oops"
)

// AlgoliaIndexer implements Indexer and AccountIndexer on a pair of
// Algolia indices.
type AlgoliaIndexer struct {
	client       *search.APIClient
	petIndex     string
	accountIndex string
}

// NewAlgoliaIndexer creates an AlgoliaIndexer writing to the named indices.
func NewAlgoliaIndexer(appID, apiKey, petIndex, accountIndex string) (*AlgoliaIndexer, error) {
	client, err := search.NewClient(appID, apiKey)
	if err != nil {
		return nil, oops.Code("SEARCH_CLIENT_FAILED").Wrap(err)
	}
	return &AlgoliaIndexer{
		client:       client,
		petIndex:     petIndex,
		accountIndex: accountIndex,
	}, nil
}

// IndexPet upserts a pet document.
func (a *AlgoliaIndexer) IndexPet(ctx context.Context, doc PetDocument) error {
	body := map[string]any{
		"objectID":    doc.ObjectID,
		"ownerID":     doc.OwnerID,
		"name":        doc.Name,
		"description": doc.Description,
		"status":      doc.Status,
		"imageURL":    doc.ImageURL,
		"_geoloc":     map[string]float64{"lat": doc.Geoloc.Lat, "lng": doc.Geoloc.Lng},
	}

	if err := a.save(ctx, a.petIndex, body); err != nil {
		return oops.Code("SEARCH_INDEX_FAILED").
			With("object_id", doc.ObjectID).
			With("index", a.petIndex).
			Wrap(err)
	}
	return nil
}

// DeletePet removes a pet document by object ID.
func (a *AlgoliaIndexer) DeletePet(ctx context.Context, objectID string) error {
	if err := a.delete(ctx, a.petIndex, objectID); err != nil {
		return oops.Code("SEARCH_DELETE_FAILED").
			With("object_id", objectID).
			With("index", a.petIndex).
			Wrap(err)
	}
	return nil
}

// IndexAccount upserts an account document.
func (a *AlgoliaIndexer) IndexAccount(ctx context.Context, doc AccountDocument) error {
	body := map[string]any{
		"objectID": doc.ObjectID,
		"name":     doc.Name,
		"location": doc.Location,
	}
	if doc.Geoloc != nil {
		body["_geoloc"] = map[string]float64{"lat": doc.Geoloc.Lat, "lng": doc.Geoloc.Lng}
	}

	if err := a.save(ctx, a.accountIndex, body); err != nil {
		return oops.Code("SEARCH_INDEX_FAILED").
			With("object_id", doc.ObjectID).
			With("index", a.accountIndex).
			Wrap(err)
	}
	return nil
}

// DeleteAccount removes an account document by object ID.
func (a *AlgoliaIndexer) DeleteAccount(ctx context.Context, objectID string) error {
	if err := a.delete(ctx, a.accountIndex, objectID); err != nil {
		return oops.Code("SEARCH_DELETE_FAILED").
			With("object_id", objectID).
			With("index", a.accountIndex).
			Wrap(err)
	}
	return nil
}

func (a *AlgoliaIndexer) save(ctx context.Context, index string, body map[string]any) error {
	_, err := a.client.SaveObject(a.client.NewApiSaveObjectRequest(index, body), search.WithContext(ctx))
	return err
}

func (a *AlgoliaIndexer) delete(ctx context.Context, index, objectID string) error {
	_, err := a.client.DeleteObject(a.client.NewApiDeleteObjectRequest(index, objectID), search.WithContext(ctx))
	return err
}

var (
	_ Indexer        = (*AlgoliaIndexer)(nil)
	_ AccountIndexer = (*AlgoliaIndexer)(nil)
)
