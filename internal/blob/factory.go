package blob

import (
	"context"
	"fmt"
)

// Config selects and parameterizes the attachment storage backend.
type Config struct {
	Driver             Driver
	FSRoot             string
	GCSBucket          string
	GCSCredentialsFile string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	S3PathStyle        bool
}

// Open selects a Store implementation for the configured driver. An empty
// driver falls back to the local filesystem.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFileStore(cfg.FSRoot)
	case DriverGCS:
		return NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
