// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package verify implements the signup email deliverability check against
// the Hunter email verifier API.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/auth"
)

// DefaultBaseURL is the production Hunter API root.
const DefaultBaseURL = "https://api.hunter.io/v2"

// HunterVerifier implements auth.EmailVerifier using the Hunter
// email-verifier endpoint. Any transport or decode failure is returned as
// an error; the auth service treats that as a blocked signup (fail
// closed).
type HunterVerifier struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHunterVerifier creates a HunterVerifier. An empty baseURL falls back
// to DefaultBaseURL; a zero timeout falls back to 5s.
func NewHunterVerifier(apiKey, baseURL string, timeout time.Duration) (*HunterVerifier, error) {
	if apiKey == "" {
		return nil, oops.Code("VERIFY_CONFIG_INVALID").Errorf("api key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HunterVerifier{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// hunterResponse is the subset of the Hunter payload we read.
type hunterResponse struct {
	Data struct {
		Result string `json:"result"`
		Status string `json:"status"`
	} `json:"data"`
}

// Verify checks an address with Hunter and maps its verdict onto the auth
// package's Deliverability scale. Hunter's "risky" means a catch-all or
// disposable domain and maps to Unknown; signup only accepts Deliverable.
func (v *HunterVerifier) Verify(ctx context.Context, email string) (auth.Deliverability, error) {
	endpoint := fmt.Sprintf("%s/email-verifier?email=%s&api_key=%s",
		v.baseURL, url.QueryEscape(email), url.QueryEscape(v.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return auth.Unknown, oops.Code("VERIFY_REQUEST_FAILED").Wrap(err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return auth.Unknown, oops.Code("VERIFY_UNREACHABLE").Wrap(err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return auth.Unknown, oops.Code("VERIFY_BAD_STATUS").
			With("status", resp.StatusCode).
			Errorf("verifier returned HTTP %d", resp.StatusCode)
	}

	var payload hunterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return auth.Unknown, oops.Code("VERIFY_DECODE_FAILED").Wrap(err)
	}

	switch payload.Data.Result {
	case "deliverable":
		return auth.Deliverable, nil
	case "undeliverable":
		return auth.Undeliverable, nil
	default:
		return auth.Unknown, nil
	}
}

var _ auth.EmailVerifier = (*HunterVerifier)(nil)
