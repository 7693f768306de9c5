// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package mocks provides testify mocks for the pets package collaborators.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/pawradar/pawradar/internal/media"
	"github.com/pawradar/pawradar/internal/pets"
	"github.com/pawradar/pawradar/internal/search"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRepository mocks pets.Repository.
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a MockRepository that asserts its expectations
// at test cleanup.
func NewMockRepository(t testingT) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) Create(ctx context.Context, pet *pets.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id ulid.ULID) (*pets.Pet, error) {
	args := m.Called(ctx, id)
	var pet *pets.Pet
	if v := args.Get(0); v != nil {
		pet = v.(*pets.Pet)
	}
	return pet, args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*pets.Pet, error) {
	args := m.Called(ctx, ownerID)
	var list []*pets.Pet
	if v := args.Get(0); v != nil {
		list = v.([]*pets.Pet)
	}
	return list, args.Error(1)
}

func (m *MockRepository) FindNear(ctx context.Context, loc pets.Location, radiusKm float64, excludeOwner ulid.ULID) ([]*pets.Pet, error) {
	args := m.Called(ctx, loc, radiusKm, excludeOwner)
	var list []*pets.Pet
	if v := args.Get(0); v != nil {
		list = v.([]*pets.Pet)
	}
	return list, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, pet *pets.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id ulid.ULID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ pets.Repository = (*MockRepository)(nil)

// MockImageStore mocks media.ImageStore.
type MockImageStore struct {
	mock.Mock
}

// NewMockImageStore creates a MockImageStore that asserts its expectations
// at test cleanup.
func NewMockImageStore(t testingT) *MockImageStore {
	m := &MockImageStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockImageStore) Upload(ctx context.Context, contentType string, data []byte) (string, string, error) {
	args := m.Called(ctx, contentType, data)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var _ media.ImageStore = (*MockImageStore)(nil)

// MockIndexer mocks search.Indexer.
type MockIndexer struct {
	mock.Mock
}

// NewMockIndexer creates a MockIndexer that asserts its expectations at
// test cleanup.
func NewMockIndexer(t testingT) *MockIndexer {
	m := &MockIndexer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIndexer) IndexPet(ctx context.Context, doc search.PetDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockIndexer) DeletePet(ctx context.Context, objectID string) error {
	args := m.Called(ctx, objectID)
	return args.Error(0)
}

var _ search.Indexer = (*MockIndexer)(nil)
