package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/api/metrics"
	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// EventHandler serves the merged catalog and the organizer's event
// management operations. Ownership checks here are advisory: the remote
// store's own rules must enforce them in a real deployment.
type EventHandler struct {
	catalog ports.Catalog
	blobs   ports.BlobStore
}

func NewEventHandler(catalog ports.Catalog, blobs ports.BlobStore) *EventHandler {
	return &EventHandler{catalog: catalog, blobs: blobs}
}

// List returns the merged view, optionally filtered by category and capped.
//
// @Summary      List merged events
// @Tags         events
// @Produce      json
// @Param        category  query     string  false  "Exact category filter"
// @Param        limit     query     int     false  "Maximum entries returned"
// @Success      200       {object}  eventListResponse
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	var events []domain.Event
	if cat := c.QueryParam("category"); cat != "" {
		if !domain.Category(cat).Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
		}
		events = h.catalog.ByCategory(domain.Category(cat))
	} else {
		events = h.catalog.Events()
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		if limit < len(events) {
			events = events[:limit]
		}
	}

	return c.JSON(http.StatusOK, eventListResponse{Events: events, Count: len(events)})
}

// Get returns one merged event.
//
// @Summary      Get one event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Categories lists the closed category set.
//
// @Summary      List event categories
// @Tags         events
// @Produce      json
// @Success      200  {array}  string
// @Router       /v1/categories [get]
func (h *EventHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Categories())
}

// Mine lists the caller's own events.
//
// @Summary      List the organizer's own events
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Router       /v1/organizer/events [get]
func (h *EventHandler) Mine(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	events := h.catalog.OwnedBy(uid)
	return c.JSON(http.StatusOK, eventListResponse{Events: events, Count: len(events)})
}

// Others lists every merged event the caller does not own.
//
// @Summary      List other organizers' events
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eventListResponse
// @Router       /v1/organizer/events/others [get]
func (h *EventHandler) Others(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	events := h.catalog.NotOwnedBy(uid)
	return c.JSON(http.StatusOK, eventListResponse{Events: events, Count: len(events)})
}

// Create writes a new event owned by the caller.
//
// @Summary      Create an event
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      422   {object}  errorResponse
// @Router       /v1/organizer/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := bindEventRequest(c)
	if err != nil {
		return err
	}

	event := req.toEvent(newEventID(), uid)
	if err := h.catalog.Save(c.Request().Context(), event); err != nil {
		metrics.EventsSavedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.EventsSavedTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, event)
}

// Update replaces an event the caller owns. Editing another organizer's
// event is rejected.
//
// @Summary      Update an owned event
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event ID"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  domain.Event
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/organizer/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	existing, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		return err
	}
	if !existing.OwnedBy(uid) {
		return domain.ErrForbidden
	}

	req, err := bindEventRequest(c)
	if err != nil {
		return err
	}

	event := req.toEvent(existing.ID, existing.CreatedByUID)
	if err := h.catalog.Save(c.Request().Context(), event); err != nil {
		metrics.EventsSavedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.EventsSavedTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, event)
}

// Sync pushes the entire merged view to the remote store.
//
// @Summary      Sync the merged view to the remote store
// @Tags         organizer
// @Security     BearerAuth
// @Success      204  "synced"
// @Router       /v1/organizer/events/sync [post]
func (h *EventHandler) Sync(c echo.Context) error {
	if err := h.catalog.SyncAll(c.Request().Context()); err != nil {
		metrics.EventsSavedTotal.WithLabelValues("error").Inc()
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an owned event from the local merged view only. The
// remote document is untouched, so the event returns on the next snapshot.
//
// @Summary      Remove an owned event from the local view
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      202  {object}  removedResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/organizer/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	event, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		return err
	}
	if !event.OwnedBy(uid) {
		return domain.ErrForbidden
	}

	h.catalog.Remove(event.ID)
	return c.JSON(http.StatusAccepted, removedResponse{
		Message: "event removed from the local view; the remote record is retained",
	})
}

// UploadPoster stores an uploaded poster for an owned event and returns
// the URL to reference from the event form.
//
// @Summary      Upload an event poster
// @Tags         organizer
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Event ID"
// @Param        file  formData  file    true  "Poster image"
// @Success      201   {object}  uploadResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/organizer/events/{id}/poster [post]
func (h *EventHandler) UploadPoster(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	event, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		return err
	}
	if !event.OwnedBy(uid) {
		return domain.ErrForbidden
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	path := fmt.Sprintf("events/%s/%s", event.ID, fileHeader.Filename)
	if err := h.blobs.Upload(c.Request().Context(), path, src); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadResponse{URL: h.blobs.URL(path)})
}

func bindEventRequest(c echo.Context) (eventRequest, error) {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if !domain.Category(req.Category).Valid() {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, "category must be one of the known categories")
	}
	return req, nil
}

// newEventID stamps a new ID from the current millisecond clock.
func newEventID() string {
	return fmt.Sprintf("ev-%d", time.Now().UnixMilli())
}
