// Package services holds the inventory cache and the storage backends it
// draws from.
package services

import (
	"context"
	"sync"
	"time"

	"gallerio/internal/models"
)

// DefaultCacheTTL is the freshness window for a computed inventory.
const DefaultCacheTTL = 30 * time.Second

// InventorySource produces a fresh image inventory.
type InventorySource interface {
	Scan(ctx context.Context) ([]models.ImageDescriptor, error)
}

// InventoryService serves the image inventory through a time-bounded cache so
// repeated queries inside the freshness window do not re-walk the backend.
type InventoryService struct {
	source InventorySource
	ttl    time.Duration

	mu        sync.Mutex
	cached    []models.ImageDescriptor
	scannedAt time.Time
}

// NewInventoryService wraps source with a cache. A non-positive ttl falls
// back to DefaultCacheTTL.
func NewInventoryService(source InventorySource, ttl time.Duration) *InventoryService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &InventoryService{source: source, ttl: ttl}
}

// CacheTTL returns the freshness window, for callers that advertise it.
func (s *InventoryService) CacheTTL() time.Duration {
	return s.ttl
}

// Images returns the current inventory, rescanning only when the cached copy
// is older than the freshness window. Concurrent misses coalesce on the lock,
// so one scan serves all waiters. A scan failure is returned to the caller
// and leaves any previous cache entry intact, so a later retry can succeed.
func (s *InventoryService) Images(ctx context.Context) ([]models.ImageDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil && time.Since(s.scannedAt) < s.ttl {
		return s.cached, nil
	}
	return s.rescanLocked(ctx)
}

// Refresh rescans immediately, bypassing the freshness window.
func (s *InventoryService) Refresh(ctx context.Context) ([]models.ImageDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rescanLocked(ctx)
}

func (s *InventoryService) rescanLocked(ctx context.Context) ([]models.ImageDescriptor, error) {
	images, err := s.source.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if images == nil {
		// An empty inventory (including a missing root) is cached like any
		// other result.
		images = []models.ImageDescriptor{}
	}
	s.cached = images
	s.scannedAt = time.Now()
	return images, nil
}
