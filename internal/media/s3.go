// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/samber/oops"
)

// Config configures the S3 image store. Endpoint is optional; when set
// (e.g. MinIO) path-style addressing is used.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	KeyPrefix string
}

// S3Store implements ImageStore on S3-compatible object storage.
type S3Store struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
	prefix   string
}

// NewS3Store creates an S3Store.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, oops.Code("MEDIA_CONFIG_FAILED").Wrap(err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
		prefix:   cfg.KeyPrefix,
	}, nil
}

// extensions for the image types the API accepts.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Upload stores an image under a random key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, contentType string, data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", oops.Code("MEDIA_EMPTY_IMAGE").Errorf("image data cannot be empty")
	}
	ext, ok := extByContentType[contentType]
	if !ok {
		return "", "", oops.Code("MEDIA_UNSUPPORTED_TYPE").
			With("content_type", contentType).
			Errorf("unsupported image content type")
	}

	key := s.prefix + "/" + uuid.NewString() + ext
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", oops.Code("MEDIA_UPLOAD_FAILED").
			With("bucket", s.bucket).
			With("key", key).
			Wrap(err)
	}
	return s.objectURL(key), key, nil
}

// Delete removes an image by storage key.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return oops.Code("MEDIA_DELETE_FAILED").
			With("bucket", s.bucket).
			With("key", key).
			Wrap(err)
	}
	return nil
}

// objectURL builds the public URL for a stored object. With a custom
// endpoint, path-style addressing is assumed.
func (s *S3Store) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

var _ ImageStore = (*S3Store)(nil)
