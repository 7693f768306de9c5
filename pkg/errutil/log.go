// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package errutil provides helpers for logging and asserting on
// oops-decorated errors.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// Code extracts the oops error code from err, or "" for plain errors and
// non-string codes. Handlers use it to map service errors onto HTTP
// statuses and metric labels without unwrapping by hand.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code, ok := oopsErr.Code().(string); ok && code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}
