package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// MediaHandler streams uploaded event media back out of the blob store.
type MediaHandler struct {
	blobs ports.BlobStore
}

func NewMediaHandler(blobs ports.BlobStore) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// Serve handles GET /media/*, streaming the latest revision of the blob.
func (h *MediaHandler) Serve(c echo.Context) error {
	path := c.Param("*")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing media path")
	}

	blob, err := h.blobs.Open(c.Request().Context(), path)
	if err != nil {
		return err
	}
	defer blob.Close()

	return c.Stream(http.StatusOK, echo.MIMEOctetStream, blob)
}
