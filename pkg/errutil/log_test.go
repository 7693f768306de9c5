// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package errutil_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawradar/pawradar/pkg/errutil"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "oops error with code",
			err:  oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("nope"),
			want: "AUTH_INVALID_CREDENTIALS",
		},
		{
			name: "oops error without code",
			err:  oops.Errorf("nope"),
			want: "",
		},
		{
			name: "plain error",
			err:  errors.New("nope"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errutil.Code(tt.err))
		})
	}
}

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("TEST_ERROR").
		With("key", "value").
		Errorf("something failed")

	errutil.LogError(logger, "operation failed", err)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "operation failed", logEntry["msg"])
	assert.Equal(t, "TEST_ERROR", logEntry["code"])
	assert.Contains(t, logEntry["error"], "something failed")
}

func TestLogError_WithPlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(logger, "operation failed", errors.New("plain failure"))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "operation failed", logEntry["msg"])
	assert.Equal(t, "plain failure", logEntry["error"])
	assert.NotContains(t, logEntry, "code")
}
