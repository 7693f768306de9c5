// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ResetTokenBytes is the entropy of a reset token: 32 bytes, 64 hex chars.
const ResetTokenBytes = 32

// Credential holds an account's password hash and, while a reset is
// pending, the hashed reset token.
type Credential struct {
	AccountID           ulid.ULID
	PasswordHash        string
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time
	UpdatedAt           time.Time
}

// GenerateResetToken creates a secure random token and its hash.
// The plaintext token goes into the reset email; only the hash is stored.
func GenerateResetToken() (token, hash string, err error) {
	tokenBytes := make([]byte, ResetTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", oops.Code("RESET_TOKEN_GENERATE_FAILED").Wrap(err)
	}

	token = hex.EncodeToString(tokenBytes)
	return token, HashResetToken(token), nil
}

// HashResetToken computes the SHA256 hash of a token.
func HashResetToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// CredentialRepository manages credential persistence.
type CredentialRepository interface {
	// GetByAccount retrieves the credential for an account.
	// Returns ErrNotFound if absent.
	GetByAccount(ctx context.Context, accountID ulid.ULID) (*Credential, error)

	// UpdatePassword replaces the password hash for an account.
	UpdatePassword(ctx context.Context, accountID ulid.ULID, passwordHash string) error

	// SetResetToken stores a hashed reset token and its expiry, replacing
	// any pending reset for the account.
	SetResetToken(ctx context.Context, accountID ulid.ULID, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken atomically looks up a credential by reset token
	// hash, replaces the password hash, and clears the token so it cannot
	// be replayed. Returns ErrNotFound for an unknown token and
	// ErrResetExpired for a known but expired one; neither mutates the row.
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) error
}
