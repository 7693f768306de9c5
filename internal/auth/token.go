// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// sessionClaims are the JWT claims carried by a session token. The account
// ID is serialized as "id" for compatibility with existing clients.
type sessionClaims struct {
	AccountID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and parses HS256-signed session tokens. Every token
// carries an expiry; rotating the secret invalidates all outstanding tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer signing with secret and issuing
// tokens valid for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a signed session token for the account.
func (i *TokenIssuer) Issue(accountID ulid.ULID) (string, error) {
	now := i.now()
	claims := sessionClaims{
		AccountID: accountID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Parse validates a session token and returns the account ID it carries.
// Expired tokens get AUTH_TOKEN_EXPIRED; everything else that fails
// validation gets AUTH_TOKEN_INVALID.
func (i *TokenIssuer) Parse(token string) (ulid.ULID, error) {
	if token == "" {
		return ulid.ULID{}, oops.Code("AUTH_TOKEN_INVALID").Errorf("token cannot be empty")
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ulid.ULID{}, oops.Code("AUTH_TOKEN_EXPIRED").Wrap(err)
		}
		return ulid.ULID{}, oops.Code("AUTH_TOKEN_INVALID").Wrap(err)
	}

	id, err := ulid.Parse(claims.AccountID)
	if err != nil {
		return ulid.ULID{}, oops.Code("AUTH_TOKEN_INVALID").
			With("account_id", claims.AccountID).
			Wrap(err)
	}
	return id, nil
}
