package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore implements Store in a Google Cloud Storage bucket. Credentials
// come from the configured service-account file, or from application
// default credentials when none is set.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCS builds a GCS-backed store for the bucket.
func NewGCS(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Driver() Driver { return DriverGCS }

func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

func (s *GCSStore) Get(ctx context.Context, url string) ([]byte, error) {
	rc, err := s.client.Bucket(s.bucket).Object(s.objectKey(url)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	err := s.client.Bucket(s.bucket).Object(s.objectKey(url)).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

// Close releases the underlying client.
func (s *GCSStore) Close() error { return s.client.Close() }

func (s *GCSStore) objectKey(url string) string {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	return strings.TrimPrefix(url, prefix)
}
