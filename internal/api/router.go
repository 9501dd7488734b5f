package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ga-Alves/open-flag/internal/api/handler"
	"github.com/Ga-Alves/open-flag/internal/api/middleware"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	FlagService  ports.FlagService
	AuthService  ports.AuthService
	SessionStore ports.SessionStore
	Upstream     handler.UpstreamPinger
	Redis        *redis.Client
	JWTSecret    string
	Logger       zerolog.Logger
	// Metrics overrides the Prometheus registerer for the HTTP middleware.
	// Nil means the default registry.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	registerer := deps.Metrics
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "openflag",
		Registerer: registerer,
	}))
	e.Use(middleware.Session(deps.JWTSecret, deps.SessionStore))

	protected := middleware.RequireSession()
	publicOnly := middleware.RequireAnonymous()

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/auth/login", authHandler.Login, publicOnly)
	e.POST("/auth/register", authHandler.Register, publicOnly)
	e.POST("/auth/logout", authHandler.Logout, protected)
	e.GET("/me", authHandler.Me, protected)

	// --- Flag routes ---
	flagHandler := handler.NewFlagHandler(deps.FlagService)
	e.GET("/flags", flagHandler.List, protected)
	e.POST("/flags", flagHandler.Create, protected)
	e.PUT("/flags/:name", flagHandler.Update, protected)
	e.DELETE("/flags/:name", flagHandler.Delete, protected)
	e.PUT("/flags/:name/toggle", flagHandler.Toggle, protected)
	e.GET("/flags/:name/check", flagHandler.Check, protected)

	// --- Analytics ---
	analyticsHandler := handler.NewAnalyticsHandler(deps.FlagService)
	e.GET("/flags/:name/analytics", analyticsHandler.Usage, protected)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.Upstream)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
