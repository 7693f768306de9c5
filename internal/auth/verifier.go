// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package auth

import "context"

// Deliverability classifies an email address ahead of signup.
type Deliverability string

// Deliverability results. Only Deliverable passes signup; Unknown means
// the verifier could not decide (e.g. catch-all domains) and is rejected
// the same as Undeliverable.
const (
	Deliverable   Deliverability = "deliverable"
	Undeliverable Deliverability = "undeliverable"
	Unknown       Deliverability = "unknown"
)

// EmailVerifier checks whether an address can actually receive mail.
// Implementations live outside this package; internal/verify provides one
// backed by the Hunter API.
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (Deliverability, error)
}

// NoopVerifier accepts every address. Used when no verifier is configured.
type NoopVerifier struct{}

// Verify always reports Deliverable.
func (NoopVerifier) Verify(_ context.Context, _ string) (Deliverability, error) {
	return Deliverable, nil
}

var _ EmailVerifier = NoopVerifier{}
