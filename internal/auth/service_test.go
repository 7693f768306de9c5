// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/auth/mocks"
	"github.com/pawradar/pawradar/internal/search"
	"github.com/pawradar/pawradar/pkg/errutil"
)

type serviceFixture struct {
	accounts    *mocks.MockAccountRepository
	credentials *mocks.MockCredentialRepository
	hasher      *mocks.MockPasswordHasher
	verifier    *mocks.MockEmailVerifier
	index       *mocks.MockAccountIndexer
	issuer      *auth.TokenIssuer
	svc         *auth.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	f := &serviceFixture{
		accounts:    mocks.NewMockAccountRepository(t),
		credentials: mocks.NewMockCredentialRepository(t),
		hasher:      mocks.NewMockPasswordHasher(t),
		verifier:    mocks.NewMockEmailVerifier(t),
		index:       mocks.NewMockAccountIndexer(t),
		issuer:      auth.NewTokenIssuer("test-secret", time.Hour),
	}
	f.svc = auth.NewService(f.accounts, f.credentials, f.hasher, f.issuer, f.verifier,
		f.index, time.Hour, nil)
	return f
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()
	params := auth.SignupParams{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+44",
		Password: "secret123",
	}

	t.Run("success returns account and token", func(t *testing.T) {
		f := newServiceFixture(t)
		f.verifier.On("Verify", ctx, "ada@example.com").Return(auth.Deliverable, nil)
		f.hasher.On("Hash", "secret123").Return("hashed", nil)
		f.accounts.On("Create", ctx, mock.AnythingOfType("*auth.Account"), "hashed").Return(nil)
		f.index.On("IndexAccount", ctx, mock.AnythingOfType("search.AccountDocument")).Return(nil)

		account, token, err := f.svc.Signup(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", account.Email)
		assert.NotEmpty(t, token)

		parsed, err := f.issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, parsed)
	})

	t.Run("unknown deliverability is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		f.verifier.On("Verify", ctx, "ada@example.com").Return(auth.Unknown, nil)

		_, _, err := f.svc.Signup(ctx, params)
		require.Error(t, err, "only a deliverable verdict may create an account")
		errutil.AssertErrorCode(t, err, "AUTH_EMAIL_UNDELIVERABLE")
	})

	t.Run("location and coordinates are stored and indexed", func(t *testing.T) {
		f := newServiceFixture(t)
		lat, lng := 51.5074, -0.1278
		located := params
		located.Location = "London"
		located.Latitude = &lat
		located.Longitude = &lng

		f.verifier.On("Verify", ctx, "ada@example.com").Return(auth.Deliverable, nil)
		f.hasher.On("Hash", "secret123").Return("hashed", nil)
		f.accounts.On("Create", ctx, mock.AnythingOfType("*auth.Account"), "hashed").Return(nil)
		f.index.On("IndexAccount", ctx, mock.MatchedBy(func(doc search.AccountDocument) bool {
			return doc.Location == "London" &&
				doc.Geoloc != nil && doc.Geoloc.Lat == lat && doc.Geoloc.Lng == lng
		})).Return(nil)

		account, _, err := f.svc.Signup(ctx, located)
		require.NoError(t, err)
		assert.Equal(t, "London", account.Location)
		require.NotNil(t, account.Latitude)
		assert.Equal(t, lat, *account.Latitude)
	})

	t.Run("half a coordinate pair is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		lat := 51.5074
		bad := params
		bad.Latitude = &lat

		_, _, err := f.svc.Signup(ctx, bad)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_COORDINATES")
	})

	t.Run("index failure does not fail signup", func(t *testing.T) {
		f := newServiceFixture(t)
		f.verifier.On("Verify", ctx, "ada@example.com").Return(auth.Deliverable, nil)
		f.hasher.On("Hash", "secret123").Return("hashed", nil)
		f.accounts.On("Create", ctx, mock.AnythingOfType("*auth.Account"), "hashed").Return(nil)
		f.index.On("IndexAccount", ctx, mock.AnythingOfType("search.AccountDocument")).
			Return(errors.New("algolia down"))

		_, _, err := f.svc.Signup(ctx, params)
		require.NoError(t, err, "indexing is best-effort")
	})

	t.Run("undeliverable email is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		f.verifier.On("Verify", ctx, "ada@example.com").Return(auth.Undeliverable, nil)

		_, _, err := f.svc.Signup(ctx, params)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_EMAIL_UNDELIVERABLE")
	})

	t.Run("verifier failure blocks signup", func(t *testing.T) {
		f := newServiceFixture(t)
		f.verifier.On("Verify", ctx, "ada@example.com").
			Return(auth.Unknown, errors.New("hunter api down"))

		_, _, err := f.svc.Signup(ctx, params)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_SIGNUP_FAILED")
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newServiceFixture(t)
		f.verifier.On("Verify", ctx, "ada@example.com").Return(auth.Deliverable, nil)
		f.hasher.On("Hash", "secret123").Return("hashed", nil)
		f.accounts.On("Create", ctx, mock.AnythingOfType("*auth.Account"), "hashed").
			Return(auth.ErrEmailTaken)

		_, _, err := f.svc.Signup(ctx, params)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_EMAIL_TAKEN")
	})

	t.Run("invalid fields fail before any collaborator is called", func(t *testing.T) {
		f := newServiceFixture(t)

		bad := params
		bad.Password = "short"
		_, _, err := f.svc.Signup(ctx, bad)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_PASSWORD")

		bad = params
		bad.Email = "nope"
		_, _, err = f.svc.Signup(ctx, bad)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_EMAIL")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newServiceFixture(t)
		account := &auth.Account{ID: ulid.Make(), Email: "ada@example.com"}
		cred := &auth.Credential{AccountID: account.ID, PasswordHash: "hashed"}

		f.accounts.On("GetByEmail", ctx, "ada@example.com").Return(account, nil)
		f.credentials.On("GetByAccount", ctx, account.ID).Return(cred, nil)
		f.hasher.On("Verify", "secret123", "hashed").Return(true, nil)

		got, token, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("unknown email still verifies a hash", func(t *testing.T) {
		f := newServiceFixture(t)
		f.accounts.On("GetByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrNotFound)
		// The dummy hash is verified so timing does not reveal whether the
		// address is registered.
		f.hasher.On("Verify", "secret123", mock.AnythingOfType("string")).Return(false, nil)

		_, _, err := f.svc.Login(ctx, "ghost@example.com", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newServiceFixture(t)
		account := &auth.Account{ID: ulid.Make(), Email: "ada@example.com"}
		cred := &auth.Credential{AccountID: account.ID, PasswordHash: "hashed"}

		f.accounts.On("GetByEmail", ctx, "ada@example.com").Return(account, nil)
		f.credentials.On("GetByAccount", ctx, account.ID).Return(cred, nil)
		f.hasher.On("Verify", "wrong", "hashed").Return(false, nil)

		_, _, err := f.svc.Login(ctx, "ada@example.com", "wrong")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("repository failure is not invalid credentials", func(t *testing.T) {
		f := newServiceFixture(t)
		f.accounts.On("GetByEmail", ctx, "ada@example.com").
			Return(nil, errors.New("connection refused"))

		_, _, err := f.svc.Login(ctx, "ada@example.com", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_LOGIN_FAILED")
	})
}

func TestService_ResolveToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newServiceFixture(t)
		account := &auth.Account{ID: ulid.Make(), Email: "ada@example.com"}
		token, err := f.issuer.Issue(account.ID)
		require.NoError(t, err)

		f.accounts.On("GetByID", ctx, account.ID).Return(account, nil)

		got, err := f.svc.ResolveToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("token for deleted account is invalid", func(t *testing.T) {
		f := newServiceFixture(t)
		accountID := ulid.Make()
		token, err := f.issuer.Issue(accountID)
		require.NoError(t, err)

		f.accounts.On("GetByID", ctx, accountID).Return(nil, auth.ErrNotFound)

		_, err = f.svc.ResolveToken(ctx, token)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
	})

	t.Run("garbage token never hits the repository", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.ResolveToken(ctx, "garbage")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("success mirrors the profile into the index", func(t *testing.T) {
		f := newServiceFixture(t)
		account := &auth.Account{ID: ulid.Make(), Name: "Ada", Email: "ada@example.com"}
		lat, lng := 51.5074, -0.1278

		f.accounts.On("GetByID", ctx, account.ID).Return(account, nil)
		f.accounts.On("Update", ctx, mock.AnythingOfType("*auth.Account")).Return(nil)
		f.index.On("IndexAccount", ctx, mock.MatchedBy(func(doc search.AccountDocument) bool {
			return doc.ObjectID == account.ID.String() &&
				doc.Location == "London" &&
				doc.Geoloc != nil && doc.Geoloc.Lat == lat && doc.Geoloc.Lng == lng
		})).Return(nil)

		got, err := f.svc.UpdateProfile(ctx, account.ID, auth.ProfileParams{
			Name:      "Ada Lovelace",
			Phone:     "+44",
			Location:  "London",
			Latitude:  &lat,
			Longitude: &lng,
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Name)
		assert.Equal(t, "+44", got.Phone)
		assert.Equal(t, "London", got.Location)
	})

	t.Run("index failure does not fail the update", func(t *testing.T) {
		f := newServiceFixture(t)
		account := &auth.Account{ID: ulid.Make(), Name: "Ada", Email: "ada@example.com"}

		f.accounts.On("GetByID", ctx, account.ID).Return(account, nil)
		f.accounts.On("Update", ctx, mock.AnythingOfType("*auth.Account")).Return(nil)
		f.index.On("IndexAccount", ctx, mock.AnythingOfType("search.AccountDocument")).
			Return(errors.New("algolia down"))

		_, err := f.svc.UpdateProfile(ctx, account.ID, auth.ProfileParams{Name: "Ada"})
		require.NoError(t, err)
	})

	t.Run("half a coordinate pair is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		lat := 51.5074

		_, err := f.svc.UpdateProfile(ctx, ulid.Make(), auth.ProfileParams{
			Name:     "Ada",
			Latitude: &lat,
		})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_COORDINATES")
	})

	t.Run("missing account", func(t *testing.T) {
		f := newServiceFixture(t)
		accountID := ulid.Make()
		f.accounts.On("GetByID", ctx, accountID).Return(nil, auth.ErrNotFound)

		_, err := f.svc.UpdateProfile(ctx, accountID, auth.ProfileParams{Name: "Ada"})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	accountID := ulid.Make()

	t.Run("success", func(t *testing.T) {
		f := newServiceFixture(t)
		cred := &auth.Credential{AccountID: accountID, PasswordHash: "old-hash"}

		f.credentials.On("GetByAccount", ctx, accountID).Return(cred, nil)
		f.hasher.On("Verify", "oldpass", "old-hash").Return(true, nil)
		f.hasher.On("Hash", "newpass123").Return("new-hash", nil)
		f.credentials.On("UpdatePassword", ctx, accountID, "new-hash").Return(nil)

		require.NoError(t, f.svc.ChangePassword(ctx, accountID, "oldpass", "newpass123"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newServiceFixture(t)
		cred := &auth.Credential{AccountID: accountID, PasswordHash: "old-hash"}

		f.credentials.On("GetByAccount", ctx, accountID).Return(cred, nil)
		f.hasher.On("Verify", "wrong", "old-hash").Return(false, nil)

		err := f.svc.ChangePassword(ctx, accountID, "wrong", "newpass123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("new password too short", func(t *testing.T) {
		f := newServiceFixture(t)

		err := f.svc.ChangePassword(ctx, accountID, "oldpass", "x")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_PASSWORD")
	})
}

func TestService_EmailRegistered(t *testing.T) {
	ctx := context.Background()

	t.Run("registered", func(t *testing.T) {
		f := newServiceFixture(t)
		f.accounts.On("GetByEmail", ctx, "ada@example.com").
			Return(&auth.Account{ID: ulid.Make()}, nil)

		registered, err := f.svc.EmailRegistered(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, registered)
	})

	t.Run("not registered", func(t *testing.T) {
		f := newServiceFixture(t)
		f.accounts.On("GetByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrNotFound)

		registered, err := f.svc.EmailRegistered(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.False(t, registered)
	})
}

func TestService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("known email stores hashed token", func(t *testing.T) {
		f := newServiceFixture(t)
		account := &auth.Account{ID: ulid.Make(), Email: "ada@example.com"}

		var storedHash string
		f.accounts.On("GetByEmail", ctx, "ada@example.com").Return(account, nil)
		f.credentials.On("SetResetToken", ctx, account.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) { storedHash = args.String(2) }).
			Return(nil)

		token, got, err := f.svc.RequestPasswordReset(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotEmpty(t, token)
		// The plaintext token is never stored, only its hash.
		assert.NotEqual(t, token, storedHash)
		assert.Equal(t, auth.HashResetToken(token), storedHash)
	})

	t.Run("unknown email succeeds with no token", func(t *testing.T) {
		f := newServiceFixture(t)
		f.accounts.On("GetByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrNotFound)

		token, account, err := f.svc.RequestPasswordReset(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Nil(t, account)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success consumes the token", func(t *testing.T) {
		f := newServiceFixture(t)
		f.hasher.On("Hash", "newpass123").Return("new-hash", nil)
		f.credentials.On("ConsumeResetToken", ctx, auth.HashResetToken("some-token"), "new-hash").
			Return(nil)

		require.NoError(t, f.svc.ResetPassword(ctx, "some-token", "newpass123"))
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newServiceFixture(t)
		f.hasher.On("Hash", "newpass123").Return("new-hash", nil)
		f.credentials.On("ConsumeResetToken", ctx, mock.AnythingOfType("string"), "new-hash").
			Return(auth.ErrNotFound)

		err := f.svc.ResetPassword(ctx, "bogus", "newpass123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "RESET_TOKEN_INVALID")
	})

	t.Run("expired token", func(t *testing.T) {
		f := newServiceFixture(t)
		f.hasher.On("Hash", "newpass123").Return("new-hash", nil)
		f.credentials.On("ConsumeResetToken", ctx, mock.AnythingOfType("string"), "new-hash").
			Return(auth.ErrResetExpired)

		err := f.svc.ResetPassword(ctx, "stale", "newpass123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "RESET_TOKEN_EXPIRED")
	})

	t.Run("empty token", func(t *testing.T) {
		f := newServiceFixture(t)

		err := f.svc.ResetPassword(ctx, "", "newpass123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "RESET_TOKEN_INVALID")
	})
}
