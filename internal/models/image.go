// Package models contains data structures used across handlers
package models

import (
	"path"

	"gallerio/internal/utils"
)

// RootDirectoryLabel is the directory value for images sitting directly in the
// scan root.
const RootDirectoryLabel = "root"

// ImageURLPrefix is the route prefix under which raw image bytes are served.
const ImageURLPrefix = "/images/"

// ImageDescriptor describes one discovered image file. RelativePath always
// uses forward slashes, regardless of the host path convention.
type ImageDescriptor struct {
	Name          string `json:"name"`
	RelativePath  string `json:"relativePath"`
	URL           string `json:"url"`
	Directory     string `json:"directory"`
	Size          int64  `json:"size"`
	FormattedSize string `json:"formattedSize"`
}

// NewImageDescriptor builds a descriptor from a root-relative, slash-separated
// path and the file size in bytes.
func NewImageDescriptor(relPath string, size int64) ImageDescriptor {
	dir := path.Dir(relPath)
	if dir == "." {
		dir = RootDirectoryLabel
	}
	return ImageDescriptor{
		Name:          path.Base(relPath),
		RelativePath:  relPath,
		URL:           ImageURLPrefix + relPath,
		Directory:     dir,
		Size:          size,
		FormattedSize: utils.FormatBytes(size),
	}
}

// InventoryResponse is the JSON envelope for the inventory query.
type InventoryResponse struct {
	Images []ImageDescriptor `json:"images"`
	Count  int               `json:"count"`
}

// GalleryStats summarizes the current inventory for the dashboard header.
type GalleryStats struct {
	Count          int    `json:"count"`
	TotalSize      int64  `json:"totalSize"`
	FormattedSize  string `json:"formattedSize"`
	DirectoryCount int    `json:"directoryCount"`
}
