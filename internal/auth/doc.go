// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package auth provides account management and authentication for PawRadar:
// signup with email deliverability checks, login with signed session tokens,
// password changes, and the password reset flow.
//
// The package defines repository interfaces; PostgreSQL implementations live
// in the postgres subpackage.
package auth
