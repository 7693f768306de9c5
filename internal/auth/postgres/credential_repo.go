// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/auth"
)

// CredentialRepository implements auth.CredentialRepository using PostgreSQL.
type CredentialRepository struct {
	db DB
}

// NewCredentialRepository creates a new CredentialRepository.
func NewCredentialRepository(db DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// GetByAccount retrieves the credential for an account.
func (r *CredentialRepository) GetByAccount(ctx context.Context, accountID ulid.ULID) (*auth.Credential, error) {
	row := r.db.QueryRow(ctx, `
		SELECT account_id, password_hash, reset_token_hash, reset_token_expires_at, updated_at
		FROM credentials
		WHERE account_id = $1
	`, accountID.String())

	var (
		idStr     string
		cred      auth.Credential
		updatedAt time.Time
	)
	err := row.Scan(&idStr, &cred.PasswordHash, &cred.ResetTokenHash, &cred.ResetTokenExpiresAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CREDENTIAL_NOT_FOUND").
			With("account_id", accountID.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CREDENTIAL_GET_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}

	cred.AccountID, err = ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("CREDENTIAL_INVALID_ID").
			With("account_id", idStr).
			Wrap(err)
	}
	cred.UpdatedAt = updatedAt
	return &cred, nil
}

// UpdatePassword replaces the password hash for an account.
func (r *CredentialRepository) UpdatePassword(ctx context.Context, accountID ulid.ULID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE credentials SET password_hash = $2, updated_at = $3
		WHERE account_id = $1
	`, accountID.String(), passwordHash, time.Now())
	if err != nil {
		return oops.Code("CREDENTIAL_UPDATE_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CREDENTIAL_NOT_FOUND").
			With("account_id", accountID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// SetResetToken stores a hashed reset token and its expiry, replacing any
// pending reset for the account.
func (r *CredentialRepository) SetResetToken(ctx context.Context, accountID ulid.ULID, tokenHash string, expiresAt time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE credentials SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = $4
		WHERE account_id = $1
	`, accountID.String(), tokenHash, expiresAt, time.Now())
	if err != nil {
		return oops.Code("RESET_TOKEN_STORE_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CREDENTIAL_NOT_FOUND").
			With("account_id", accountID.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// ConsumeResetToken atomically swaps the password hash and clears the reset
// token. The row is locked for the duration of the transaction so two
// concurrent attempts with the same token cannot both succeed.
func (r *CredentialRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return oops.Code("RESET_CONSUME_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var (
		accountID string
		expiresAt *time.Time
	)
	err = tx.QueryRow(ctx, `
		SELECT account_id, reset_token_expires_at
		FROM credentials
		WHERE reset_token_hash = $1
		FOR UPDATE
	`, tokenHash).Scan(&accountID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.Code("RESET_TOKEN_UNKNOWN").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return oops.Code("RESET_CONSUME_FAILED").
			With("operation", "lock credential row").
			Wrap(err)
	}

	// An expired token is left in place untouched; the next RequestPasswordReset
	// overwrites it.
	if expiresAt == nil || time.Now().After(*expiresAt) {
		return oops.Code("RESET_TOKEN_STALE").
			With("account_id", accountID).
			Wrap(auth.ErrResetExpired)
	}

	_, err = tx.Exec(ctx, `
		UPDATE credentials
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = $3
		WHERE account_id = $1
	`, accountID, newPasswordHash, time.Now())
	if err != nil {
		return oops.Code("RESET_CONSUME_FAILED").
			With("operation", "update credential").
			Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("RESET_CONSUME_FAILED").
			With("operation", "commit transaction").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.CredentialRepository = (*CredentialRepository)(nil)
