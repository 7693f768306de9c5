// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package mail sends transactional email: password reset links and
// found-pet reports. Sending is best-effort from the callers' point of
// view; they log failures instead of propagating them.
package mail

import "context"

// Message is a single outbound email. HTML carries the body; Text is the
// plaintext alternative for clients that want one.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NoopMailer discards every message. Used when no SMTP host is
// configured, which keeps development setups runnable.
type NoopMailer struct{}

// Send does nothing.
func (NoopMailer) Send(_ context.Context, _ Message) error { return nil }

var _ Mailer = NoopMailer{}
