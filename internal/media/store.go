// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package media stores pet images in S3-compatible object storage.
package media

import "context"

// ImageStore uploads and deletes pet images.
type ImageStore interface {
	// Upload stores an image and returns its public URL and storage key.
	Upload(ctx context.Context, contentType string, data []byte) (url, key string, err error)

	// Delete removes an image by storage key.
	Delete(ctx context.Context, key string) error
}

// NoopStore discards uploads. Used when no object storage is configured;
// pets simply have no image URL.
type NoopStore struct{}

// Upload discards the image.
func (NoopStore) Upload(_ context.Context, _ string, _ []byte) (string, string, error) {
	return "", "", nil
}

// Delete does nothing.
func (NoopStore) Delete(_ context.Context, _ string) error { return nil }

var _ ImageStore = NoopStore{}
