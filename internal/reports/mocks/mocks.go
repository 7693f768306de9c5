// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package mocks provides a testify mock for the reports repository.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/pawradar/pawradar/internal/reports"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRepository mocks reports.Repository.
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

func (m *MockRepository) Create(ctx context.Context, report *reports.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockRepository) ListByPet(ctx context.Context, petID ulid.ULID) ([]*reports.Report, error) {
	args := m.Called(ctx, petID)
	var list []*reports.Report
	if v := args.Get(0); v != nil {
		list = v.([]*reports.Report)
	}
	return list, args.Error(1)
}

var _ reports.Repository = (*MockRepository)(nil)
