// Package blob provides the blob storage used for store images: a minimal
// S3-like Store interface with filesystem (default), in-memory (tests) and
// S3 drivers.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default, dev)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string // MIME type, optional
}

// Info describes a stored blob.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Store is the blob storage abstraction consumed by the catalog service
// and the image-serving endpoint. Semantics mirror a minimal subset of S3
// so the S3 driver is nearly 1:1 while the filesystem driver emulates them.
type Store interface {
	// Put stores a new blob at key. Fails if the key already exists.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get retrieves blob contents and metadata. The error wraps
	// fs.ErrNotExist when the key is missing.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Delete removes a blob. Returns (false, nil) when not found.
	Delete(ctx context.Context, key string) (bool, error)
	// URL returns a time-limited download URL for the key. Drivers without
	// presigning return ErrUnsupported.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Driver returns the configured backend driver.
	Driver() Driver
}

// ErrUnsupported is returned when an optional capability is not available.
var ErrUnsupported = errors.New("blob: unsupported operation")
