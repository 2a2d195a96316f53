package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore keeps uploaded files as objects in a MinIO/S3 bucket.
type MinIOStore struct {
	mc     *minio.Client
	bucket string
}

func NewMinIOStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOStore, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("minio access key and secret key are required")
	}
	if bucket == "" {
		bucket = "submissions"
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOStore{mc: mc, bucket: bucket}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinIOStore) Save(ctx context.Context, r io.Reader, size int64, originalName, contentType string) (*File, error) {
	resolvedType, err := checkAllowed(originalName, contentType)
	if err != nil {
		return nil, err
	}

	key := storedName(originalName)
	info, err := s.mc.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: resolvedType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return &File{
		Path:         key,
		OriginalName: originalName,
		ContentType:  resolvedType,
		Size:         info.Size,
	}, nil
}

func (s *MinIOStore) Open(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	obj, err := s.mc.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to download %s: %w", path, err)
	}

	// GetObject defers errors until the first read; Stat surfaces them now.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return obj, info.Size, nil
}

func (s *MinIOStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.mc.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinIOStore) Remove(ctx context.Context, path string) error {
	return s.mc.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}
