package services

import (
	"context"
	"log"
	"time"

	"gallerio/internal/models"
)

// Refresher keeps the inventory cache warm and reports content changes, so
// connected browsers can be told to re-fetch instead of polling.
type Refresher struct {
	inventory *InventoryService
	interval  time.Duration
	notify    func(count int)

	last []models.ImageDescriptor
	stop chan struct{}
}

// NewRefresher rescans every interval and calls notify with the new image
// count whenever the inventory content changed since the previous pass.
func NewRefresher(inventory *InventoryService, interval time.Duration, notify func(count int)) *Refresher {
	if interval <= 0 {
		interval = DefaultCacheTTL
	}
	return &Refresher{
		inventory: inventory,
		interval:  interval,
		notify:    notify,
		stop:      make(chan struct{}),
	}
}

// Run blocks, rescanning on a ticker until Stop is called.
func (r *Refresher) Run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.tick(context.Background())
		}
	}
}

// Stop ends the refresh loop.
func (r *Refresher) Stop() {
	close(r.stop)
}

func (r *Refresher) tick(ctx context.Context) {
	images, err := r.inventory.Refresh(ctx)
	if err != nil {
		log.Printf("refresher: inventory refresh failed: %v", err)
		return
	}
	if r.last == nil {
		// First pass establishes the baseline without notifying.
		r.last = images
		return
	}
	if inventoryEqual(r.last, images) {
		return
	}
	r.last = images
	if r.notify != nil {
		r.notify(len(images))
	}
}

// inventoryEqual compares two inventories by path and size, ignoring order.
func inventoryEqual(a, b []models.ImageDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	sizes := make(map[string]int64, len(a))
	for _, d := range a {
		sizes[d.RelativePath] = d.Size
	}
	for _, d := range b {
		size, ok := sizes[d.RelativePath]
		if !ok || size != d.Size {
			return false
		}
	}
	return true
}
