// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrResetExpired is returned when a password reset token exists but its
	// expiry has passed.
	ErrResetExpired = errors.New("reset token expired")
)
