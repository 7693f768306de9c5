// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Validation constraints for account fields.
const (
	MinPasswordLength = 6
	MaxNameLength     = 100
	MaxEmailLength    = 254
)

// emailRegex is a pragmatic check, not RFC 5322; the deliverability
// verifier catches what slips through.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Account is a registered PawRadar user. The password hash lives on the
// account's Credential, never here.
//
// Location is a free-form place name; Latitude and Longitude are nil
// until the account sets coordinates from its profile.
type Account struct {
	ID        ulid.ULID
	Name      string
	Email     string
	Phone     string
	Location  string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates an Account with a fresh ULID, validating the fields.
func NewAccount(name, email, phone string) (*Account, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Account{
		ID:        ulid.Make(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateName validates an account display name.
func ValidateName(name string) error {
	if name == "" {
		return oops.Code("AUTH_INVALID_NAME").Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return oops.Code("AUTH_INVALID_NAME").
			With("max", MaxNameLength).
			Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ValidateEmail validates an email address's shape.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("max", MaxEmailLength).
			Errorf("email must be at most %d characters", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email address is malformed")
	}
	return nil
}

// ValidateCoordinates validates an optional coordinate pair. Both values
// must be set together and fall within the WGS84 ranges.
func ValidateCoordinates(latitude, longitude *float64) error {
	if latitude == nil && longitude == nil {
		return nil
	}
	if latitude == nil || longitude == nil {
		return oops.Code("AUTH_INVALID_COORDINATES").
			Errorf("latitude and longitude must be set together")
	}
	if *latitude < -90 || *latitude > 90 {
		return oops.Code("AUTH_INVALID_COORDINATES").
			With("latitude", *latitude).
			Errorf("latitude must be between -90 and 90")
	}
	if *longitude < -180 || *longitude > 180 {
		return oops.Code("AUTH_INVALID_COORDINATES").
			With("longitude", *longitude).
			Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidatePassword validates a plaintext password before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return oops.Code("AUTH_INVALID_PASSWORD").Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLength {
		return oops.Code("AUTH_INVALID_PASSWORD").
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// AccountRepository manages account persistence.
type AccountRepository interface {
	// Create stores a new account and its credential atomically.
	// Returns ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, account *Account, passwordHash string) error

	// GetByID retrieves an account by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByEmail retrieves an account by email (case-insensitive).
	// Returns ErrNotFound if no account has the given email.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Update updates an existing account's profile fields.
	Update(ctx context.Context, account *Account) error

	// Delete removes an account and, via cascade, everything it owns.
	Delete(ctx context.Context, id ulid.ULID) error
}
