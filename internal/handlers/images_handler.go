package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gallerio/internal/models"
	"gallerio/internal/utils"
)

// InventoryProvider is the service surface the image handlers need.
type InventoryProvider interface {
	Images(ctx context.Context) ([]models.ImageDescriptor, error)
	CacheTTL() time.Duration
}

type ImagesHandler struct {
	inventory InventoryProvider
}

func NewImagesHandler(inventory InventoryProvider) *ImagesHandler {
	return &ImagesHandler{inventory: inventory}
}

// ListImages returns the current inventory as JSON. The response advertises
// the service's freshness window so intermediate layers may cache it too.
func (h *ImagesHandler) ListImages(c echo.Context) error {
	images, err := h.inventory.Images(c.Request().Context())
	if err != nil {
		log.Printf("inventory scan failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to scan image library")
	}

	h.setCacheControl(c)
	return c.JSON(http.StatusOK, models.InventoryResponse{
		Images: images,
		Count:  len(images),
	})
}

// GetStats returns summary figures for the gallery header.
func (h *ImagesHandler) GetStats(c echo.Context) error {
	images, err := h.inventory.Images(c.Request().Context())
	if err != nil {
		log.Printf("inventory scan failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to scan image library")
	}

	var totalSize int64
	directories := make(map[string]bool)
	for _, img := range images {
		totalSize += img.Size
		directories[img.Directory] = true
	}

	h.setCacheControl(c)
	return c.JSON(http.StatusOK, models.GalleryStats{
		Count:          len(images),
		TotalSize:      totalSize,
		FormattedSize:  utils.FormatBytes(totalSize),
		DirectoryCount: len(directories),
	})
}

func (h *ImagesHandler) setCacheControl(c echo.Context) {
	maxAge := int(h.inventory.CacheTTL().Seconds())
	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
}
