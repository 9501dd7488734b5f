package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Ga-Alves/open-flag/internal/api/middleware"
	"github.com/Ga-Alves/open-flag/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Redirect, when set, tells the browser where to navigate (login after a
// session failure, home from public-only routes).
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Forwards flags-server rejections (status and detail) unchanged so
//     form views can render them inline.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, errorResponse{Error: "session expired", Redirect: middleware.LoginPath}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "not authenticated", Redirect: middleware.LoginPath}
	case errors.Is(err, domain.ErrAlreadyAuthenticated):
		return http.StatusForbidden, errorResponse{Error: "already authenticated", Redirect: middleware.HomePath}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrFlagNotFound):
		return http.StatusNotFound, errorResponse{Error: "flag not found"}
	case errors.Is(err, domain.ErrFlagExists):
		return http.StatusConflict, errorResponse{Error: "flag already exists"}
	case errors.Is(err, domain.ErrUpstreamUnreachable):
		return http.StatusBadGateway, errorResponse{Error: "flags server unreachable"}
	}

	// The flags server said no: relay its status and detail verbatim so the
	// form shows the same message the server produced.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status, errorResponse{Error: ue.Detail}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
