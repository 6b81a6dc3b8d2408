// Package scanner discovers image files under a directory tree.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gallerio/internal/models"
)

// imageExtensions is the fixed allow-list of recognized image types. Matching
// is case-insensitive and purely extension-based; file contents are never
// inspected.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".svg":  {},
}

// IsImagePath reports whether name carries a recognized image extension.
func IsImagePath(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// SkipFunc receives a diagnostic for every entry the scanner had to skip.
type SkipFunc func(path string, err error)

// Scanner walks a directory tree and produces image descriptors.
type Scanner struct {
	root   string
	onSkip SkipFunc
}

// New creates a Scanner for root that logs skipped entries.
func New(root string) *Scanner {
	return NewWithDiagnostics(root, func(path string, err error) {
		log.Printf("scanner: skipping %s: %v", path, err)
	})
}

// NewWithDiagnostics creates a Scanner that reports skipped entries to onSkip
// instead of the log.
func NewWithDiagnostics(root string, onSkip SkipFunc) *Scanner {
	return &Scanner{root: root, onSkip: onSkip}
}

// Scan walks the root depth-first and returns a descriptor for every image
// file found. A missing root is not an error and yields an empty inventory.
// Failures below the root (unreadable subdirectory, stat error on one entry)
// are reported to the skip callback and the rest of the tree is still
// scanned; only a failure on the root itself aborts the scan.
func (s *Scanner) Scan(ctx context.Context) ([]models.ImageDescriptor, error) {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return []models.ImageDescriptor{}, nil
	}

	images := []models.ImageDescriptor{}
	walkErr := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == s.root {
				return err
			}
			s.onSkip(p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !IsImagePath(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			s.onSkip(p, err)
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			s.onSkip(p, err)
			return nil
		}
		images = append(images, models.NewImageDescriptor(filepath.ToSlash(rel), info.Size()))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", s.root, walkErr)
	}
	return images, nil
}
