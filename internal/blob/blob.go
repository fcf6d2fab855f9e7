package blob

import (
	"context"
	"errors"
)

// Driver identifies a concrete attachment storage backend.
type Driver string

const (
	// DriverFilesystem stores payloads under a local directory (default, dev).
	DriverFilesystem Driver = "fs"
	// DriverGCS stores payloads in a Google Cloud Storage bucket.
	DriverGCS Driver = "gcs"
	// DriverS3 stores payloads in an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps payloads in process memory (tests).
	DriverMemory Driver = "memory"
)

// ErrNotFound is returned when a stored object no longer exists.
var ErrNotFound = errors.New("blob not found")

// Store keeps attachment payloads outside the metadata rows. Put returns a
// stable URL that is persisted on the attachment; Get and Delete address
// objects by that URL.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, url string) ([]byte, error)
	Delete(ctx context.Context, url string) error
	Driver() Driver
}
