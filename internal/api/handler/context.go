package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// ctxIdentity extracts the claims injected by the Identify middleware and
// fast-fails when they are missing: a non-empty uid proves the middleware
// ran and the caller authenticated.
func ctxIdentity(c echo.Context) (uid string, role domain.Role, err error) {
	uid, _ = c.Get("uid").(string)
	if uid == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleStr, _ := c.Get("role").(string)
	return uid, domain.Role(roleStr), nil
}
