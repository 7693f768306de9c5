// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package mail

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/samber/oops"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ResetParams fill the password reset email.
type ResetParams struct {
	To       string
	Name     string
	ResetURL string
}

// ComposeReset builds the password reset message. ResetURL already
// carries the plaintext token; it is never logged here.
func ComposeReset(params ResetParams) (Message, error) {
	html, err := render("reset_password.html.tmpl", params)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      params.To,
		ToName:  params.Name,
		Subject: "Reset your PawRadar password",
		HTML:    html,
		Text: fmt.Sprintf(
			"Hi %s,\n\nReset your PawRadar password within the next hour:\n%s\n\nIf you didn't ask for this, ignore this email.\n",
			params.Name, params.ResetURL),
	}, nil
}

// ReportParams fill the found-pet report email sent to the pet's owner.
type ReportParams struct {
	To          string
	OwnerName   string
	PetName     string
	FinderName  string
	FinderPhone string
	Message     string
}

// ComposeReport builds the found-pet notification message.
func ComposeReport(params ReportParams) (Message, error) {
	html, err := render("pet_report.html.tmpl", params)
	if err != nil {
		return Message{}, err
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n%s reported a sighting of %s on PawRadar.\n",
		params.OwnerName, params.FinderName, params.PetName)
	if params.Message != "" {
		fmt.Fprintf(&text, "\nTheir message:\n%s\n", params.Message)
	}
	if params.FinderPhone != "" {
		fmt.Fprintf(&text, "\nYou can reach them at %s.\n", params.FinderPhone)
	}

	return Message{
		To:      params.To,
		ToName:  params.OwnerName,
		Subject: fmt.Sprintf("Someone may have found %s!", params.PetName),
		HTML:    html,
		Text:    text.String(),
	}, nil
}

func render(name string, data any) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", oops.Code("MAIL_TEMPLATE_FAILED").
			With("template", name).
			Wrap(err)
	}
	return buf.String(), nil
}
