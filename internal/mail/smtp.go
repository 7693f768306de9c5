// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package mail

import (
	"context"

	"github.com/samber/oops"
	gomail "github.com/wneessen/go-mail"
)

// Config holds SMTP settings for the sender.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements Mailer over SMTP with go-mail.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer creates an SMTPMailer. Authentication is used only when a
// username is configured, so local debug servers work without one.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, oops.Code("MAIL_CONFIG_INVALID").Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, oops.Code("MAIL_CONFIG_INVALID").Errorf("from address is required")
	}

	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, oops.Code("MAIL_CLIENT_FAILED").
			With("host", cfg.Host).
			Wrap(err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// Send delivers one message.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := gomail.NewMsg()
	if err := out.From(m.from); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("from", m.from).
			Wrap(err)
	}
	if err := out.AddToFormat(msg.ToName, msg.To); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("to", msg.To).
			Wrap(err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	if msg.Text != "" {
		out.AddAlternativeString(gomail.TypeTextPlain, msg.Text)
	}

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("to", msg.To).
			With("subject", msg.Subject).
			Wrap(err)
	}
	return nil
}

var _ Mailer = (*SMTPMailer)(nil)
