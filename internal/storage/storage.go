package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage defines the interface for file storage backends
type Storage interface {
	// Save stores an object at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves an object from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes an object at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if an object exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the object
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL returns a temporary signed URL for private objects
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetSize returns the size of an object in bytes
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for s3/r2
	Region    string // for s3
	AccessKey string // for s3/r2
	SecretKey string // for s3/r2
	Endpoint  string // for r2 or custom s3
}

// NewStorage creates a storage backend based on configuration.
// Cloudflare R2 is S3-compatible and shares the S3 implementation.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
