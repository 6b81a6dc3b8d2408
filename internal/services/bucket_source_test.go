package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectStore implements ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucket, opts)
	return args.Get(0).(<-chan minio.ObjectInfo)
}

func (m *MockObjectStore) GetObjectReader(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, bucket, key, opts)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(int64), args.Error(2)
}

func objectChan(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestBucketSourceScanFiltersAndMaps(t *testing.T) {
	store := new(MockObjectStore)
	store.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(objectChan(
		minio.ObjectInfo{Key: "a.png", Size: 10},
		minio.ObjectInfo{Key: "b/c.JPG", Size: 20},
		minio.ObjectInfo{Key: "b/notes.txt", Size: 5},
		minio.ObjectInfo{Key: "b/", Size: 0}, // folder marker
	))

	source := NewBucketSource(store, "photos", "")
	images, err := source.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, images, 2)
	assert.Equal(t, "a.png", images[0].RelativePath)
	assert.Equal(t, "/images/a.png", images[0].URL)
	assert.Equal(t, "b/c.JPG", images[1].RelativePath)
	assert.Equal(t, "b", images[1].Directory)
	assert.Equal(t, int64(20), images[1].Size)
}

func TestBucketSourceScanStripsPrefix(t *testing.T) {
	store := new(MockObjectStore)
	store.On("ListObjects", mock.Anything, "photos", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "gallery/" && opts.Recursive
	})).Return(objectChan(
		minio.ObjectInfo{Key: "gallery/x/y.png", Size: 3},
	))

	source := NewBucketSource(store, "photos", "gallery")
	images, err := source.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, images, 1)
	assert.Equal(t, "x/y.png", images[0].RelativePath)
	assert.Equal(t, "x", images[0].Directory)
}

func TestBucketSourceScanPropagatesListingError(t *testing.T) {
	store := new(MockObjectStore)
	store.On("ListObjects", mock.Anything, "photos", mock.Anything).Return(objectChan(
		minio.ObjectInfo{Err: errors.New("access denied")},
	))

	source := NewBucketSource(store, "photos", "")
	_, err := source.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list bucket photos")
}
