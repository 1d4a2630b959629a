package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

type stubSessionService struct {
	signUpFn       func(ctx context.Context, email, password string, role domain.Role) (*ports.SessionResult, error)
	signInFn       func(ctx context.Context, email, password string) (*ports.SessionResult, error)
	federatedURLFn func(state string) string
	signInFedFn    func(ctx context.Context, code string, pendingRole domain.Role) (*ports.SessionResult, error)
	assignRoleFn   func(ctx context.Context, role domain.Role) error
	assignRoleToFn func(ctx context.Context, identityID string, role domain.Role) error
	currentSession domain.Session
	signOutCalled  bool
}

func (s *stubSessionService) Restore(context.Context) (ports.Unsubscribe, error) {
	return func() {}, nil
}

func (s *stubSessionService) Current() domain.Session { return s.currentSession }

func (s *stubSessionService) SignUp(ctx context.Context, email, password string, role domain.Role) (*ports.SessionResult, error) {
	return s.signUpFn(ctx, email, password, role)
}

func (s *stubSessionService) SignInPassword(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubSessionService) FederatedURL(state string) string {
	if s.federatedURLFn == nil {
		return ""
	}
	return s.federatedURLFn(state)
}

func (s *stubSessionService) SignInFederated(ctx context.Context, code string, pendingRole domain.Role) (*ports.SessionResult, error) {
	return s.signInFedFn(ctx, code, pendingRole)
}

func (s *stubSessionService) AssignRole(ctx context.Context, role domain.Role) error {
	return s.assignRoleFn(ctx, role)
}

func (s *stubSessionService) AssignRoleTo(ctx context.Context, identityID string, role domain.Role) error {
	return s.assignRoleToFn(ctx, identityID, role)
}

func (s *stubSessionService) SignOut(context.Context) error {
	s.signOutCalled = true
	return nil
}

func newAuthContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubSessionService{
		signUpFn: func(_ context.Context, email, _ string, role domain.Role) (*ports.SessionResult, error) {
			if email != "alice@example.com" || role != domain.RoleOrganizer {
				t.Fatalf("unexpected args: %s %s", email, role)
			}
			return &ports.SessionResult{
				Token:    "tok",
				Identity: &domain.Identity{ID: "id-1", Email: email},
				Role:     role,
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"secret1","role":"organizer"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var result ports.SessionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Token != "tok" || result.Role != domain.RoleOrganizer {
		t.Fatalf("unexpected response: %+v", result)
	}
}

func TestAuthHandler_SignUp_RejectsUnknownRole(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"secret1","role":"admin"}`)

	err := h.SignUp(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestAuthHandler_FederatedStart_CarriesPendingRole(t *testing.T) {
	stub := &stubSessionService{
		federatedURLFn: func(state string) string {
			if state != "participant" {
				t.Fatalf("pending role not carried as state: %q", state)
			}
			return "https://consent.example/authorize?state=" + state
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodGet, "/auth/federated?role=participant", "")

	if err := h.FederatedStart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_FederatedStart_Unconfigured(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	c, _ := newAuthContext(t, http.MethodGet, "/auth/federated", "")

	err := h.FederatedStart(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 HTTPError, got %v", err)
	}
}

func TestAuthHandler_FederatedCallback_FlagsMissingRole(t *testing.T) {
	stub := &stubSessionService{
		signInFedFn: func(_ context.Context, code string, pendingRole domain.Role) (*ports.SessionResult, error) {
			if code != "code-1" || pendingRole != "" {
				t.Fatalf("unexpected args: %s %s", code, pendingRole)
			}
			return &ports.SessionResult{
				Token:    "tok",
				Identity: &domain.Identity{ID: "fed-1"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodGet, "/auth/federated/callback?code=code-1", "")

	if err := h.FederatedCallback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var result struct {
		RoleRequired bool `json:"role_required"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.RoleRequired {
		t.Fatalf("expected role_required=true when no role resolved")
	}
}

func TestAuthHandler_AssignRole_TargetsCaller(t *testing.T) {
	var targetID string
	var assigned domain.Role
	stub := &stubSessionService{
		assignRoleToFn: func(_ context.Context, identityID string, role domain.Role) error {
			targetID = identityID
			assigned = role
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/role", `{"role":"organizer"}`)
	c.Set("uid", "id-caller")
	c.Set("role", "")

	if err := h.AssignRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if targetID != "id-caller" {
		t.Fatalf("role must be assigned to the request's identity, got %q", targetID)
	}
	if assigned != domain.RoleOrganizer {
		t.Fatalf("unexpected role: %s", assigned)
	}
}

func TestAuthHandler_AssignRole_RequiresClaims(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{})

	c, _ := newAuthContext(t, http.MethodPost, "/auth/role", `{"role":"organizer"}`)

	err := h.AssignRole(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	stub := &stubSessionService{
		currentSession: domain.Session{
			Identity: &domain.Identity{ID: "id-1", Email: "a@b.c"},
			Role:     domain.RoleParticipant,
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodGet, "/auth/session", "")

	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.State != "authenticated_with_role" {
		t.Fatalf("unexpected state: %s", resp.State)
	}
}
