package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallerio/internal/models"
)

func writeFile(t *testing.T, root, rel string, size int) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, make([]byte, size), 0o644))
}

func scanPaths(t *testing.T, root string) map[string]models.ImageDescriptor {
	t.Helper()
	images, err := New(root).Scan(context.Background())
	require.NoError(t, err)
	byPath := make(map[string]models.ImageDescriptor, len(images))
	for _, img := range images {
		byPath[img.RelativePath] = img
	}
	return byPath
}

func TestIsImagePath(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"icon.png", true},
		{"anim.gif", true},
		{"pic.webp", true},
		{"logo.SVG", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"raw.cr2", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsImagePath(tt.name))
		})
	}
}

func TestScanFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "photo.jpg", 1)
	writeFile(t, root, "PHOTO2.JPG", 1)
	writeFile(t, root, "vector.svg", 1)
	writeFile(t, root, "anim.webp", 1)
	writeFile(t, root, "notes.txt", 1)
	writeFile(t, root, "doc.pdf", 1)

	byPath := scanPaths(t, root)

	assert.Len(t, byPath, 4)
	assert.Contains(t, byPath, "photo.jpg")
	assert.Contains(t, byPath, "PHOTO2.JPG")
	assert.Contains(t, byPath, "vector.svg")
	assert.Contains(t, byPath, "anim.webp")
	assert.NotContains(t, byPath, "notes.txt")
	assert.NotContains(t, byPath, "doc.pdf")
}

func TestScanRecursesToArbitraryDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "top.png", 1)
	writeFile(t, root, "one/mid.png", 1)
	writeFile(t, root, "one/two/three/deep.png", 1)

	byPath := scanPaths(t, root)

	require.Len(t, byPath, 3)
	assert.Equal(t, models.RootDirectoryLabel, byPath["top.png"].Directory)
	assert.Equal(t, "one", byPath["one/mid.png"].Directory)
	assert.Equal(t, "one/two/three", byPath["one/two/three/deep.png"].Directory)
}

func TestScanExampleInventory(t *testing.T) {
	// Worked scenario: a.png (10 bytes) plus b/ holding c.jpg (20 bytes)
	// and a non-image.
	root := t.TempDir()
	writeFile(t, root, "a.png", 10)
	writeFile(t, root, "b/c.jpg", 20)
	writeFile(t, root, "b/notes.txt", 5)

	byPath := scanPaths(t, root)
	require.Len(t, byPath, 2)

	a := byPath["a.png"]
	assert.Equal(t, "a.png", a.Name)
	assert.Equal(t, models.RootDirectoryLabel, a.Directory)
	assert.Equal(t, "/images/a.png", a.URL)
	assert.Equal(t, int64(10), a.Size)
	assert.Equal(t, "10 B", a.FormattedSize)

	c := byPath["b/c.jpg"]
	assert.Equal(t, "c.jpg", c.Name)
	assert.Equal(t, "b", c.Directory)
	assert.Equal(t, "/images/b/c.jpg", c.URL)
	assert.Equal(t, int64(20), c.Size)
}

func TestScanMissingRootYieldsEmptyInventory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))

	// Querying twice must be quiet both times.
	for i := 0; i < 2; i++ {
		images, err := s.Scan(context.Background())
		require.NoError(t, err)
		assert.Empty(t, images)
		assert.NotNil(t, images)
	}
}

func TestScanRelativePathsAreUnique(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.png", 1)
	writeFile(t, root, "x/a.png", 1)
	writeFile(t, root, "y/a.png", 1)

	images, err := New(root).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 3)

	seen := make(map[string]bool)
	for _, img := range images {
		assert.False(t, seen[img.RelativePath], "duplicate relativePath %q", img.RelativePath)
		seen[img.RelativePath] = true
	}
}

func TestScanSkipsUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; directory permissions are not enforced")
	}

	root := t.TempDir()
	writeFile(t, root, "ok/visible.png", 1)
	writeFile(t, root, "bad/hidden.png", 1)

	badDir := filepath.Join(root, "bad")
	require.NoError(t, os.Chmod(badDir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(badDir, 0o755) })

	var skipped []string
	s := NewWithDiagnostics(root, func(path string, err error) {
		skipped = append(skipped, path)
	})

	images, err := s.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, images, 1)
	assert.Equal(t, "ok/visible.png", images[0].RelativePath)
	assert.NotEmpty(t, skipped, "expected a skip diagnostic for the unreadable subtree")
}
