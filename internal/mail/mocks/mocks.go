// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package mocks provides a testify mock for the mail.Mailer interface.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pawradar/pawradar/internal/mail"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockMailer mocks mail.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a MockMailer that asserts its expectations at
// test cleanup.
func NewMockMailer(t testingT) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var _ mail.Mailer = (*MockMailer)(nil)
