// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package mocks provides testify mocks for the auth package interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/search"
)

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAccountRepository mocks auth.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a MockAccountRepository that asserts
// its expectations at test cleanup.
func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, account *auth.Account, passwordHash string) error {
	args := m.Called(ctx, account, passwordHash)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Account, error) {
	args := m.Called(ctx, id)
	var account *auth.Account
	if v := args.Get(0); v != nil {
		account = v.(*auth.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	args := m.Called(ctx, email)
	var account *auth.Account
	if v := args.Get(0); v != nil {
		account = v.(*auth.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *auth.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id ulid.ULID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ auth.AccountRepository = (*MockAccountRepository)(nil)

// MockCredentialRepository mocks auth.CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

// NewMockCredentialRepository creates a MockCredentialRepository that
// asserts its expectations at test cleanup.
func NewMockCredentialRepository(t testingT) *MockCredentialRepository {
	m := &MockCredentialRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCredentialRepository) GetByAccount(ctx context.Context, accountID ulid.ULID) (*auth.Credential, error) {
	args := m.Called(ctx, accountID)
	var cred *auth.Credential
	if v := args.Get(0); v != nil {
		cred = v.(*auth.Credential)
	}
	return cred, args.Error(1)
}

func (m *MockCredentialRepository) UpdatePassword(ctx context.Context, accountID ulid.ULID, passwordHash string) error {
	args := m.Called(ctx, accountID, passwordHash)
	return args.Error(0)
}

func (m *MockCredentialRepository) SetResetToken(ctx context.Context, accountID ulid.ULID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, accountID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockCredentialRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) error {
	args := m.Called(ctx, tokenHash, newPasswordHash)
	return args.Error(0)
}

var _ auth.CredentialRepository = (*MockCredentialRepository)(nil)

// MockPasswordHasher mocks auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations at test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// MockEmailVerifier mocks auth.EmailVerifier.
type MockEmailVerifier struct {
	mock.Mock
}

// NewMockEmailVerifier creates a MockEmailVerifier that asserts its
// expectations at test cleanup.
func NewMockEmailVerifier(t testingT) *MockEmailVerifier {
	m := &MockEmailVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEmailVerifier) Verify(ctx context.Context, email string) (auth.Deliverability, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(auth.Deliverability), args.Error(1)
}

var _ auth.EmailVerifier = (*MockEmailVerifier)(nil)

// MockAccountIndexer mocks search.AccountIndexer.
type MockAccountIndexer struct {
	mock.Mock
}

// NewMockAccountIndexer creates a MockAccountIndexer that asserts its
// expectations at test cleanup.
func NewMockAccountIndexer(t testingT) *MockAccountIndexer {
	m := &MockAccountIndexer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountIndexer) IndexAccount(ctx context.Context, doc search.AccountDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockAccountIndexer) DeleteAccount(ctx context.Context, objectID string) error {
	args := m.Called(ctx, objectID)
	return args.Error(0)
}

var _ search.AccountIndexer = (*MockAccountIndexer)(nil)
