// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package verify_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/verify"
	"github.com/pawradar/pawradar/pkg/errutil"
)

func hunterServer(t *testing.T, result string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email-verifier", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("email"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":{"result":%q,"status":"valid"}}`, result)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHunterVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		result string
		want   auth.Deliverability
	}{
		{"deliverable", auth.Deliverable},
		{"undeliverable", auth.Undeliverable},
		{"risky", auth.Unknown},
		{"unknown", auth.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			srv := hunterServer(t, tt.result)
			v, err := verify.NewHunterVerifier("test-key", srv.URL, time.Second)
			require.NoError(t, err)

			got, err := v.Verify(ctx, "ada@example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHunterVerifier_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	v, err := verify.NewHunterVerifier("test-key", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "ada@example.com")
	require.Error(t, err, "errors must surface so signup fails closed")
	errutil.AssertErrorCode(t, err, "VERIFY_BAD_STATUS")
}

func TestHunterVerifier_GarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	t.Cleanup(srv.Close)

	v, err := verify.NewHunterVerifier("test-key", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "ada@example.com")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "VERIFY_DECODE_FAILED")
}

func TestHunterVerifier_Unreachable(t *testing.T) {
	v, err := verify.NewHunterVerifier("test-key", "http://127.0.0.1:1", 200*time.Millisecond)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "ada@example.com")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "VERIFY_UNREACHABLE")
}

func TestNewHunterVerifier_RequiresKey(t *testing.T) {
	_, err := verify.NewHunterVerifier("", "", 0)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "VERIFY_CONFIG_INVALID")
}
