package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/api/metrics"
	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// AuthHandler exposes the session manager's operations.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// SignUp creates an identity with a chosen role.
//
// @Summary      Sign up with email, password, and role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Sign-up details"
// @Success      201   {object}  ports.SessionResult
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.sessions.SignUp(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("signup", "error").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("signup", "ok").Inc()
	return c.JSON(http.StatusCreated, result)
}

// SignIn authenticates with email and password.
//
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  ports.SessionResult
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.sessions.SignInPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("password", "error").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("password", "ok").Inc()
	return c.JSON(http.StatusOK, result)
}

// FederatedStart returns the third-party consent URL. An optional role
// query parameter is carried through the OAuth state as the pending role.
//
// @Summary      Start the federated sign-in flow
// @Tags         auth
// @Produce      json
// @Param        role  query     string  false  "Pending role for first-time identities"
// @Success      200   {object}  federatedStartResponse
// @Router       /auth/federated [get]
func (h *AuthHandler) FederatedStart(c echo.Context) error {
	pending := c.QueryParam("role")
	if pending != "" && !domain.Role(pending).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	url := h.sessions.FederatedURL(pending)
	if url == "" {
		return echo.NewHTTPError(http.StatusNotImplemented, "federated sign-in not configured")
	}
	return c.JSON(http.StatusOK, federatedStartResponse{URL: url})
}

// FederatedCallback completes the federated flow. The state parameter
// carries the pending role chosen before the redirect, if any.
//
// @Summary      Complete the federated sign-in flow
// @Tags         auth
// @Produce      json
// @Param        code   query     string  true   "Authorization code"
// @Param        state  query     string  false  "Pending role"
// @Success      200    {object}  federatedResult
// @Failure      401    {object}  errorResponse
// @Router       /auth/federated/callback [get]
func (h *AuthHandler) FederatedCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	pendingRole := domain.Role(c.QueryParam("state"))
	result, err := h.sessions.SignInFederated(c.Request().Context(), code, pendingRole)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("federated", "error").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("federated", "ok").Inc()
	return c.JSON(http.StatusOK, federatedResult{
		SessionResult: result,
		RoleRequired:  result.Role == "",
	})
}

// AssignRole persists the role for the authenticated caller; the one-time
// "finish setup" action after a first federated sign-in. The target
// identity comes from the request's claims, not the process-wide session.
//
// @Summary      Assign a role to the current identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRoleRequest  true  "Role"
// @Success      204   "role stored"
// @Failure      401   {object}  errorResponse
// @Router       /auth/role [post]
func (h *AuthHandler) AssignRole(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.sessions.AssignRoleTo(c.Request().Context(), uid, domain.Role(req.Role)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session snapshot.
//
// @Summary      Current session snapshot
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	s := h.sessions.Current()
	return c.JSON(http.StatusOK, sessionResponse{
		Identity: s.Identity,
		Role:     s.Role,
		Loading:  s.Loading,
		State:    string(s.State()),
	})
}

// SignOut terminates the provider session.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204  "signed out"
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.sessions.SignOut(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
