// Package utils provides shared utility functions
package utils

import "fmt"

// FormatBytes converts a byte count to human-readable form (e.g., "1.5 MB").
// Negative sizes are clamped to "0 B".
func FormatBytes(size int64) string {
	const unit = 1024
	if size < 0 {
		return "0 B"
	}
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
