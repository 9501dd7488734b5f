package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ga-Alves/open-flag/internal/core/domain"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// SessionKey is the echo context key holding the resolved domain.Session.
const SessionKey = "session"

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// HomePath is where already-authenticated browsers are sent from
// public-only routes.
const HomePath = "/"

// guardResponse tells the browser where to go along with the refusal.
type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Session resolves the caller's session, when present, and stores it in the
// echo context. It validates the gateway JWT and loads the token/email pair
// from the store; any failure along the way simply leaves the request
// anonymous — the route guards decide whether that is acceptable.
func Session(jwtSecret string, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := sessionID(c, jwtSecret)
			if sid == "" {
				return next(c)
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				return next(c)
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// RequireSession guards protected routes: without a resolved session the
// request is refused with 401 and a redirect to the login view.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(SessionKey).(domain.Session); !ok {
				return c.JSON(http.StatusUnauthorized, guardResponse{
					Error:    domain.ErrUnauthenticated.Error(),
					Redirect: LoginPath,
				})
			}
			return next(c)
		}
	}
}

// RequireAnonymous guards public-only routes (login, register): a caller
// that already has a session is sent home instead.
func RequireAnonymous() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(SessionKey).(domain.Session); ok {
				return c.JSON(http.StatusForbidden, guardResponse{
					Error:    domain.ErrAlreadyAuthenticated.Error(),
					Redirect: HomePath,
				})
			}
			return next(c)
		}
	}
}

// sessionID extracts and verifies the gateway session token from the
// Authorization header, returning the sid claim or "".
func sessionID(c echo.Context, jwtSecret string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}

	sid, _ := claims["sid"].(string)
	return sid
}
