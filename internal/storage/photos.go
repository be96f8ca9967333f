// Package storage owns door-photo persistence. Production uses a MinIO
// bucket; demo mode uses a stub that only fabricates URLs.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// PhotoStore uploads captured door photos and returns a public URL
type PhotoStore interface {
	UploadPhoto(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore returns a PhotoStore backed by a MinIO bucket. publicURL is
// the externally reachable base (scheme + host) used to build photo links.
func NewMinioStore(client *minio.Client, bucket, publicURL string) PhotoStore {
	return &minioStore{client: client, bucket: bucket, publicURL: publicURL}
}

func (s *minioStore) UploadPhoto(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	key := "assessments/" + objectName
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

type localStore struct {
	baseURL string
}

// NewLocalStore returns a demo-mode PhotoStore that discards the bytes and
// returns a synthetic URL.
func NewLocalStore(baseURL string) PhotoStore {
	return &localStore{baseURL: baseURL}
}

func (s *localStore) UploadPhoto(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	return s.baseURL + "/photos/assessments/" + objectName, nil
}
