package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gallerio/internal/models"
	"gallerio/internal/scanner"
)

// ObjectStore is the subset of the MinIO client the gallery uses.
type ObjectStore interface {
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	GetObjectReader(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, int64, error)
}

// WrappedObjectStore adapts *minio.Client to the ObjectStore interface.
type WrappedObjectStore struct {
	client *minio.Client
}

func (s *WrappedObjectStore) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return s.client.ListObjects(ctx, bucket, opts)
}

func (s *WrappedObjectStore) GetObjectReader(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, opts)
	if err != nil {
		return nil, 0, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, 0, err
	}
	return obj, info.Size, nil
}

// NewObjectStore connects to an S3-compatible endpoint.
func NewObjectStore(endpoint, accessKey, secretKey string, secure bool) (ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}
	return &WrappedObjectStore{client: client}, nil
}

// BucketSource lists images held in an S3 bucket instead of the local
// filesystem. Object keys already use forward slashes, so they map directly
// onto descriptor relative paths.
type BucketSource struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewBucketSource creates a source over bucket. A non-empty prefix scopes the
// listing and is stripped from descriptor paths.
func NewBucketSource(store ObjectStore, bucket, prefix string) *BucketSource {
	return &BucketSource{store: store, bucket: bucket, prefix: normalizePrefix(prefix)}
}

// Scan lists the bucket recursively and returns a descriptor for every image
// object. A listing error aborts the scan; there is no per-object failure
// mode below the listing itself.
func (b *BucketSource) Scan(ctx context.Context) ([]models.ImageDescriptor, error) {
	images := []models.ImageDescriptor{}
	opts := minio.ListObjectsOptions{Prefix: b.prefix, Recursive: true}
	for obj := range b.store.ListObjects(ctx, b.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list bucket %s: %w", b.bucket, obj.Err)
		}
		rel := strings.TrimPrefix(obj.Key, b.prefix)
		if rel == "" || strings.HasSuffix(rel, "/") {
			// Folder marker objects carry no bytes.
			continue
		}
		if !scanner.IsImagePath(rel) {
			continue
		}
		images = append(images, models.NewImageDescriptor(rel, obj.Size))
	}
	return images, nil
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return strings.TrimSuffix(prefix, "/") + "/"
}
