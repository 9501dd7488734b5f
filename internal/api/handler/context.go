package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ga-Alves/open-flag/internal/api/middleware"
	"github.com/Ga-Alves/open-flag/internal/core/domain"
)

// ctxSession extracts the session resolved by the Session middleware and
// fast-fails before any service call when it is missing. Handlers behind
// RequireSession should never hit the error branch; this is the guard for
// a misconfigured route.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := c.Get(middleware.SessionKey).(domain.Session)
	if !ok {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
