// Package storage provides the optional S3-compatible mirror for generated
// audio. The local asset store stays the source of truth; the mirror exists
// so a CDN can front the audio files.
package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the mirror operations used by the generation pipeline.
type ObjectStorage interface {
	// Upload uploads an object to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the URL for accessing an object
	GetURL(key string) string

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)
}
