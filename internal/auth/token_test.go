// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/pkg/errutil"
)

const testSecret = "test-secret"

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	accountID := ulid.Make()

	token, err := issuer.Issue(accountID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, parsed)
}

func TestTokenIssuer_Expired(t *testing.T) {
	// A negative TTL mints tokens that are already expired.
	issuer := auth.NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue(ulid.Make())
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TOKEN_EXPIRED")
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	other := auth.NewTokenIssuer("different-secret", time.Hour)

	token, err := issuer.Issue(ulid.Make())
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
}

func TestTokenIssuer_EmptyToken(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	_, err := issuer.Parse("")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := auth.NewTokenIssuer(testSecret, time.Hour)

	_, err := issuer.Parse("not.a.jwt")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
}

func TestTokenIssuer_MalformedAccountID(t *testing.T) {
	// A correctly signed token whose id claim is not a ULID must still be
	// rejected.
	claims := jwt.MapClaims{
		"id":  "not-a-ulid",
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	_, err = issuer.Parse(signed)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
}

func TestTokenIssuer_RejectsUnsignedAlg(t *testing.T) {
	// alg=none tokens must never validate, even with a matching payload.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  ulid.Make().String(),
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(testSecret, time.Hour)
	_, err = issuer.Parse(unsigned)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
}
