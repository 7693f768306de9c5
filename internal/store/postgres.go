// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package store manages the PostgreSQL connection pool and schema migrations.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// connectAttempts bounds the startup retry loop. With fibonacci backoff
// starting at 500ms this gives the database roughly ten seconds to come up.
const connectAttempts = 6

// Connect opens a pgx connection pool and verifies it with a ping.
// Transient connection failures are retried with fibonacci backoff so the
// server can start before the database is ready. A malformed URL fails
// immediately without retrying.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, oops.Code("STORE_CONFIG_INVALID").Wrap(err)
	}

	var pool *pgxpool.Pool
	backoff := retry.WithMaxRetries(connectAttempts, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return retry.RetryableError(err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, oops.Code("STORE_CONNECT_FAILED").With("attempts", connectAttempts+1).Wrap(err)
	}
	return pool, nil
}
