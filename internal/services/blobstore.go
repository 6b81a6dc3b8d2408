package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
)

var (
	// ErrBlobNotFound means the requested path resolves to nothing servable.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrInvalidPath means the requested path escapes the image root.
	ErrInvalidPath = errors.New("invalid blob path")
)

// BlobInfo carries the metadata needed to serve a blob over HTTP.
type BlobInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// BlobStore resolves a descriptor's relative path to raw bytes. The caller
// owns the returned reader and must close it.
type BlobStore interface {
	Open(ctx context.Context, relPath string) (io.ReadCloser, BlobInfo, error)
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ContentTypeForExt maps a file name to its MIME type by extension.
func ContentTypeForExt(name string) string {
	if t, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}

// cleanRelPath normalizes a slash-separated request path and rejects anything
// that would climb out of the root.
func cleanRelPath(relPath string) (string, error) {
	rel := path.Clean(strings.TrimLeft(relPath, "/"))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrInvalidPath
	}
	return rel, nil
}

// DirStore serves blobs out of the local image directory.
type DirStore struct {
	root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

func (s *DirStore) Open(ctx context.Context, relPath string) (io.ReadCloser, BlobInfo, error) {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return nil, BlobInfo{}, err
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, BlobInfo{}, ErrBlobNotFound
		}
		return nil, BlobInfo{}, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, BlobInfo{}, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, BlobInfo{}, ErrBlobNotFound
	}
	return f, BlobInfo{
		Name:        path.Base(rel),
		Size:        info.Size(),
		ContentType: ContentTypeForExt(rel),
	}, nil
}

// BucketStore serves blobs out of the S3 bucket.
type BucketStore struct {
	store  ObjectStore
	bucket string
	prefix string
}

func NewBucketStore(store ObjectStore, bucket, prefix string) *BucketStore {
	return &BucketStore{store: store, bucket: bucket, prefix: normalizePrefix(prefix)}
}

func (s *BucketStore) Open(ctx context.Context, relPath string) (io.ReadCloser, BlobInfo, error) {
	rel, err := cleanRelPath(relPath)
	if err != nil {
		return nil, BlobInfo{}, err
	}
	rc, size, err := s.store.GetObjectReader(ctx, s.bucket, s.prefix+rel, minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, BlobInfo{}, ErrBlobNotFound
		}
		return nil, BlobInfo{}, err
	}
	return rc, BlobInfo{
		Name:        path.Base(rel),
		Size:        size,
		ContentType: ContentTypeForExt(rel),
	}, nil
}
