package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type GalleryHandler struct{}

func NewGalleryHandler() *GalleryHandler {
	return &GalleryHandler{}
}

// GalleryPage renders the gallery shell; the grid itself is populated
// client-side from /api/images.
func (h *GalleryHandler) GalleryPage(c echo.Context) error {
	return c.Render(http.StatusOK, "gallery", map[string]interface{}{
		"Title": "Gallery",
	})
}
