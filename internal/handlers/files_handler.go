package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"gallerio/internal/services"
)

type FilesHandler struct {
	store services.BlobStore
}

func NewFilesHandler(store services.BlobStore) *FilesHandler {
	return &FilesHandler{store: store}
}

// ServeImage streams raw image bytes for inline display.
func (h *FilesHandler) ServeImage(c echo.Context) error {
	return h.serve(c, false)
}

// DownloadImage streams the same bytes as an attachment.
func (h *FilesHandler) DownloadImage(c echo.Context) error {
	return h.serve(c, true)
}

func (h *FilesHandler) serve(c echo.Context, attachment bool) error {
	relPath := c.Param("*")
	if unescaped, err := url.PathUnescape(relPath); err == nil {
		relPath = unescaped
	}

	rc, info, err := h.store.Open(c.Request().Context(), relPath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPath):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid image path")
		case errors.Is(err, services.ErrBlobNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image")
		}
	}
	defer rc.Close()

	if attachment {
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", info.Name))
	}
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))

	return c.Stream(http.StatusOK, info.ContentType, rc)
}
