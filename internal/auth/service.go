// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/observability"
	"github.com/pawradar/pawradar/internal/search"
	"github.com/pawradar/pawradar/pkg/errutil"
)

// dummyPasswordHash is verified when no account matches the login email so
// that response time does not reveal whether the address is registered.
// It is a bcrypt hash of a throwaway string, not a real credential.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service provides account and authentication operations. The account
// search index is a best-effort mirror; failures are logged, never
// surfaced.
type Service struct {
	accounts    AccountRepository
	credentials CredentialRepository
	hasher      PasswordHasher
	tokens      *TokenIssuer
	verifier    EmailVerifier
	index       search.AccountIndexer
	resetTTL    time.Duration
	logger      *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(
	accounts AccountRepository,
	credentials CredentialRepository,
	hasher PasswordHasher,
	tokens *TokenIssuer,
	verifier EmailVerifier,
	index search.AccountIndexer,
	resetTTL time.Duration,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		accounts:    accounts,
		credentials: credentials,
		hasher:      hasher,
		tokens:      tokens,
		verifier:    verifier,
		index:       index,
		resetTTL:    resetTTL,
		logger:      logger,
	}
}

// SignupParams are the fields required to register an account. Location
// and the coordinate pair are optional; when set they are stored on the
// account and mirrored into the search index.
type SignupParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Location string

	Latitude  *float64
	Longitude *float64
}

// Signup registers a new account and returns it with a session token so
// the client is logged in immediately.
//
// The email is checked for deliverability before anything is stored; a
// verifier failure blocks the signup rather than letting a bad address in.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*Account, string, error) {
	if err := ValidatePassword(params.Password); err != nil {
		return nil, "", err
	}
	if err := ValidateCoordinates(params.Latitude, params.Longitude); err != nil {
		return nil, "", err
	}

	account, err := NewAccount(params.Name, params.Email, params.Phone)
	if err != nil {
		return nil, "", err
	}
	account.Location = params.Location
	account.Latitude = params.Latitude
	account.Longitude = params.Longitude

	result, err := s.verifier.Verify(ctx, params.Email)
	if err != nil {
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "verify email deliverability").
			Wrap(err)
	}
	if result != Deliverable {
		return nil, "", oops.Code("AUTH_EMAIL_UNDELIVERABLE").
			With("email", params.Email).
			With("result", string(result)).
			Errorf("email address cannot be verified as deliverable")
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	if err := s.accounts.Create(ctx, account, passwordHash); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", oops.Code("AUTH_EMAIL_TAKEN").
				With("email", params.Email).
				Wrap(err)
		}
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "create account").
			Wrap(err)
	}

	s.indexAccount(ctx, account)

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "issue session token").
			Wrap(err)
	}
	return account, token, nil
}

// Login authenticates an account by email and password and returns it with
// a fresh session token. An unknown email and a wrong password produce the
// same AUTH_INVALID_CREDENTIALS error, and password verification runs
// either way to keep response times uniform.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, string, error) {
	account, lookupErr := s.accounts.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	accountExists := false
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get account by email").
				Wrap(lookupErr)
		}
	} else {
		cred, credErr := s.credentials.GetByAccount(ctx, account.ID)
		if credErr != nil {
			if !errors.Is(credErr, ErrNotFound) {
				return nil, "", oops.Code("AUTH_LOGIN_FAILED").
					With("operation", "get credential").
					Wrap(credErr)
			}
		} else {
			targetHash = cred.PasswordHash
			accountExists = true
		}
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !accountExists {
			return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}
	if !accountExists || !valid {
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue session token").
			Wrap(err)
	}
	return account, token, nil
}

// ResolveToken validates a session token and loads the account it names.
// A token for a deleted account is invalid.
func (s *Service) ResolveToken(ctx context.Context, token string) (*Account, error) {
	accountID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("AUTH_TOKEN_INVALID").
				With("account_id", accountID.String()).
				Errorf("account no longer exists")
		}
		return nil, oops.Code("AUTH_RESOLVE_FAILED").
			With("operation", "get account by id").
			Wrap(err)
	}
	return account, nil
}

// ProfileParams are the mutable profile fields of an account.
type ProfileParams struct {
	Name     string
	Phone    string
	Location string

	// Latitude and Longitude must be set together; nil clears the
	// account's coordinates.
	Latitude  *float64
	Longitude *float64
}

// UpdateProfile updates an account's profile and mirrors it into the
// account search index. The email is the account's login identity and
// cannot be changed here.
func (s *Service) UpdateProfile(ctx context.Context, accountID ulid.ULID, params ProfileParams) (*Account, error) {
	if err := ValidateName(params.Name); err != nil {
		return nil, err
	}
	if err := ValidateCoordinates(params.Latitude, params.Longitude); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("ACCOUNT_NOT_FOUND").
				With("account_id", accountID.String()).
				Wrap(err)
		}
		return nil, oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "get account by id").
			Wrap(err)
	}

	account.Name = params.Name
	account.Phone = params.Phone
	account.Location = params.Location
	account.Latitude = params.Latitude
	account.Longitude = params.Longitude
	account.UpdatedAt = time.Now()

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "update account").
			Wrap(err)
	}

	s.indexAccount(ctx, account)
	return account, nil
}

// indexAccount mirrors an account into the search index, logging failures.
func (s *Service) indexAccount(ctx context.Context, account *Account) {
	doc := search.AccountDocument{
		ObjectID: account.ID.String(),
		Name:     account.Name,
		Location: account.Location,
	}
	if account.Latitude != nil && account.Longitude != nil {
		doc.Geoloc = &search.Geoloc{Lat: *account.Latitude, Lng: *account.Longitude}
	}
	if err := s.index.IndexAccount(ctx, doc); err != nil {
		observability.RecordSideEffectFailure("account_index")
		errutil.LogError(s.logger, "failed to index account", err)
	}
}

// ChangePassword replaces an account's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, accountID ulid.ULID, current, next string) error {
	if err := ValidatePassword(next); err != nil {
		return err
	}

	cred, err := s.credentials.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("ACCOUNT_NOT_FOUND").
				With("account_id", accountID.String()).
				Wrap(err)
		}
		return oops.Code("AUTH_PASSWORD_CHANGE_FAILED").
			With("operation", "get credential").
			Wrap(err)
	}

	valid, err := s.hasher.Verify(current, cred.PasswordHash)
	if err != nil {
		return oops.Code("AUTH_PASSWORD_CHANGE_FAILED").
			With("operation", "verify current password").
			Wrap(err)
	}
	if !valid {
		return oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("current password is incorrect")
	}

	newHash, err := s.hasher.Hash(next)
	if err != nil {
		return oops.Code("AUTH_PASSWORD_CHANGE_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	if err := s.credentials.UpdatePassword(ctx, accountID, newHash); err != nil {
		return oops.Code("AUTH_PASSWORD_CHANGE_FAILED").
			With("operation", "update password").
			Wrap(err)
	}
	return nil
}

// EmailRegistered reports whether an account exists for the email.
func (s *Service) EmailRegistered(ctx context.Context, email string) (bool, error) {
	_, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, oops.Code("AUTH_EMAIL_CHECK_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	return true, nil
}

// RequestPasswordReset starts the reset flow for the account with the
// given email. It returns the plaintext token and the account so the
// caller can send the reset email; delivery is not this service's job.
//
// An unknown email returns ("", nil, nil) so callers can answer uniformly
// and not leak which addresses are registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, *Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, nil
		}
		return "", nil, oops.Code("RESET_REQUEST_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}

	token, hash, err := GenerateResetToken()
	if err != nil {
		return "", nil, oops.Code("RESET_REQUEST_FAILED").
			With("operation", "generate reset token").
			Wrap(err)
	}

	expiresAt := time.Now().Add(s.resetTTL)
	if err := s.credentials.SetResetToken(ctx, account.ID, hash, expiresAt); err != nil {
		return "", nil, oops.Code("RESET_REQUEST_FAILED").
			With("operation", "store reset token").
			Wrap(err)
	}
	return token, account, nil
}

// ResetPassword completes the reset flow: the token is consumed and the
// password replaced in one atomic step, so a token can never be used twice.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return oops.Code("RESET_TOKEN_INVALID").Errorf("reset token cannot be empty")
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("RESET_PASSWORD_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	err = s.credentials.ConsumeResetToken(ctx, HashResetToken(token), newHash)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return oops.Code("RESET_TOKEN_INVALID").Errorf("reset token not found")
		case errors.Is(err, ErrResetExpired):
			return oops.Code("RESET_TOKEN_EXPIRED").Errorf("reset token has expired")
		default:
			return oops.Code("RESET_PASSWORD_FAILED").
				With("operation", "consume reset token").
				Wrap(err)
		}
	}
	return nil
}
