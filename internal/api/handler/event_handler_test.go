package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

type stubCatalog struct {
	events  []domain.Event
	saved   []domain.Event
	removed []string
	saveErr error
}

func (s *stubCatalog) Start(context.Context) (ports.Unsubscribe, error) {
	return func() {}, nil
}

func (s *stubCatalog) Events() []domain.Event { return s.events }

func (s *stubCatalog) Get(id string) (domain.Event, error) {
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Event{}, domain.ErrEventNotFound
}

func (s *stubCatalog) ByCategory(cat domain.Category) []domain.Event {
	var out []domain.Event
	for _, e := range s.events {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

func (s *stubCatalog) OwnedBy(id string) []domain.Event {
	var out []domain.Event
	for _, e := range s.events {
		if e.OwnedBy(id) {
			out = append(out, e)
		}
	}
	return out
}

func (s *stubCatalog) NotOwnedBy(id string) []domain.Event {
	var out []domain.Event
	for _, e := range s.events {
		if !e.OwnedBy(id) {
			out = append(out, e)
		}
	}
	return out
}

func (s *stubCatalog) Save(_ context.Context, event domain.Event) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, event)
	return nil
}

func (s *stubCatalog) SyncAll(context.Context) error { return s.saveErr }

func (s *stubCatalog) Remove(id string) { s.removed = append(s.removed, id) }

type stubBlobStore struct{}

func (stubBlobStore) Upload(context.Context, string, io.Reader) error { return nil }
func (stubBlobStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, domain.ErrBlobNotFound
}
func (stubBlobStore) URL(path string) string { return "/media/" + path }

const validEventBody = `{
	"title": "Robotics Rumble",
	"category": "Tech Events",
	"date": "2026-10-01",
	"time": "10:00 AM",
	"location": "Main Auditorium",
	"organizer_name": "Tech Club",
	"organizer_contact": "tech@example.com",
	"description": "A robotics showdown."
}`

func newEventContext(t *testing.T, method, target, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set("uid", uid)
		c.Set("role", "organizer")
	}
	return c, rec
}

func TestEventHandler_Create_SetsOwner(t *testing.T) {
	catalog := &stubCatalog{}
	h := NewEventHandler(catalog, stubBlobStore{})

	c, rec := newEventContext(t, http.MethodPost, "/v1/organizer/events", validEventBody, "org-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(catalog.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(catalog.saved))
	}
	if catalog.saved[0].CreatedByUID != "org-1" {
		t.Fatalf("owner not set from caller: %q", catalog.saved[0].CreatedByUID)
	}
	if catalog.saved[0].ID == "" {
		t.Fatalf("new event must receive an ID")
	}
}

func TestEventHandler_Update_RejectsForeignEvent(t *testing.T) {
	catalog := &stubCatalog{events: []domain.Event{
		{ID: "ev1", CreatedByUID: "org-1"},
	}}
	h := NewEventHandler(catalog, stubBlobStore{})

	c, _ := newEventContext(t, http.MethodPut, "/v1/organizer/events/ev1", validEventBody, "org-2")
	c.SetParamNames("id")
	c.SetParamValues("ev1")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(catalog.saved) != 0 {
		t.Fatalf("foreign update must not be saved")
	}
}

func TestEventHandler_Update_PreservesOwner(t *testing.T) {
	catalog := &stubCatalog{events: []domain.Event{
		{ID: "ev1", CreatedByUID: "org-1", Title: "Old Title"},
	}}
	h := NewEventHandler(catalog, stubBlobStore{})

	c, _ := newEventContext(t, http.MethodPut, "/v1/organizer/events/ev1", validEventBody, "org-1")
	c.SetParamNames("id")
	c.SetParamValues("ev1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if catalog.saved[0].CreatedByUID != "org-1" || catalog.saved[0].ID != "ev1" {
		t.Fatalf("identity fields must survive the update: %+v", catalog.saved[0])
	}
}

func TestEventHandler_Delete_RemovesLocallyOnly(t *testing.T) {
	catalog := &stubCatalog{events: []domain.Event{
		{ID: "ev1", CreatedByUID: "org-1"},
	}}
	h := NewEventHandler(catalog, stubBlobStore{})

	c, rec := newEventContext(t, http.MethodDelete, "/v1/organizer/events/ev1", "", "org-1")
	c.SetParamNames("id")
	c.SetParamValues("ev1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(catalog.removed) != 1 || catalog.removed[0] != "ev1" {
		t.Fatalf("expected local removal of ev1, got %v", catalog.removed)
	}
}

func TestEventHandler_List_RejectsUnknownCategory(t *testing.T) {
	h := NewEventHandler(&stubCatalog{}, stubBlobStore{})

	c, _ := newEventContext(t, http.MethodGet, "/v1/events?category=Cooking", "", "")

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestEventHandler_List_FiltersByCategory(t *testing.T) {
	catalog := &stubCatalog{events: []domain.Event{
		{ID: "ev1", Category: domain.CategoryHackathons},
		{ID: "ev2", Category: domain.CategoryTech},
	}}
	h := NewEventHandler(catalog, stubBlobStore{})

	c, rec := newEventContext(t, http.MethodGet, "/v1/events?category=Tech+Events", "", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp eventListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || resp.Events[0].ID != "ev2" {
		t.Fatalf("unexpected filter result: %+v", resp)
	}
}
