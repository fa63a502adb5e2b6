package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when no object is stored under the key.
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidKey is returned for keys that would escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Storage resolves asset keys stored on content records into bytes and URLs.
type Storage interface {
	// Get opens the object stored under key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns a URL for key. It is either absolute or a
	// site-relative path the caller joins with the request base URL.
	GetURL(ctx context.Context, key string) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type         string // local, s3, cloudflare_r2
	BasePath     string // For local storage
	BaseURL      string // Public URL base
	Bucket       string // For S3/R2
	Region       string // For S3
	AccessKey    string // For S3/R2
	SecretKey    string // For S3/R2
	Endpoint     string // For R2 or custom S3
	UsePathStyle bool
	SignedURLTTL time.Duration // presigned GET lifetime when BaseURL is empty
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "cloudflare_r2":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("endpoint is required for Cloudflare R2")
		}
		cfg.Region = "auto"
		cfg.UsePathStyle = true
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// CleanKey normalizes a stored key and rejects anything pointing outside the root.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + escapeKey(key)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
