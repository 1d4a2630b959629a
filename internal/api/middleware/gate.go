package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/gate"
)

type gateResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Gate applies the access decision before a protected handler runs. An
// empty requiredRole only demands authentication. HTTP requests carry no
// loading state, so the placeholder outcome cannot occur here; it belongs
// to clients still waiting on their first auth callback.
func Gate(requiredRole domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := sessionFromContext(c)

			switch gate.Decide(session, requiredRole) {
			case gate.Render:
				return next(c)
			case gate.RedirectSignIn:
				return c.JSON(http.StatusUnauthorized, gateResponse{
					Error:    "sign in required",
					Redirect: "/auth",
				})
			default:
				return c.JSON(http.StatusForbidden, gateResponse{
					Error:    "role not permitted",
					Redirect: "/",
				})
			}
		}
	}
}

// sessionFromContext rebuilds a session snapshot from the claims the
// Identify middleware injected. Loading is always false: by the time a
// request carries (or omits) a token, the client has resolved its session.
func sessionFromContext(c echo.Context) domain.Session {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return domain.Session{}
	}

	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	return domain.Session{
		Identity: &domain.Identity{ID: uid, Email: email},
		Role:     domain.Role(role),
	}
}
