package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewClient(cfg Config) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return client, nil
}

// ObjectStore wraps the minio client with the single bucket the portal
// writes exports into.
type ObjectStore struct {
	client *minio.Client
	bucket string
}

func NewObjectStore(client *minio.Client, bucket string) (*ObjectStore, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	return &ObjectStore{
		client: client,
		bucket: bucket,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Safe to call
// on every startup.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

func (s *ObjectStore) Upload(ctx context.Context, objectName, contentType string, data []byte) error {
	if objectName == "" {
		return fmt.Errorf("object name is required")
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", objectName, err)
	}

	return nil
}

// PresignedURL returns a time-limited download link for the object.
func (s *ObjectStore) PresignedURL(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	if objectName == "" {
		return "", fmt.Errorf("object name is required")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", objectName, err)
	}

	return u.String(), nil
}
