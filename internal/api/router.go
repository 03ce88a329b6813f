package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/moviemaker/movie-api/docs"
	"github.com/moviemaker/movie-api/internal/api/handler"
	"github.com/moviemaker/movie-api/internal/api/middleware"
	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

// Deps groups everything the HTTP layer needs.
type Deps struct {
	Auth        ports.AuthService
	Users       ports.UserService
	Movies      ports.MovieService
	Tokens      ports.TokenIssuer
	Revocations ports.RevocationStore

	// Health holds the readiness probes by dependency name.
	Health map[string]handler.PingFunc

	Logger zerolog.Logger

	// Registerer receives the HTTP metrics; Gatherer backs /metrics.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "movies",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Users)
	userHandler := handler.NewUserHandler(d.Users, d.Movies)
	movieHandler := handler.NewMovieHandler(d.Movies)
	healthHandler := handler.NewHealthHandler(d.Health, d.Logger)

	requireAuth := middleware.Auth(d.Tokens, d.Revocations)
	requireAdmin := middleware.RequireRole(d.Users, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Users ---
	e.POST("/users", authHandler.CreateUser)
	e.GET("/users", userHandler.List, requireAuth, requireAdmin)
	e.PUT("/users/:id", userHandler.Update, requireAuth)
	e.DELETE("/users/:id", userHandler.Delete, requireAuth)
	e.GET("/users/:id/movies", userHandler.Movies)

	// --- Movies ---
	e.GET("/movies", movieHandler.List)
	e.GET("/movies/search", movieHandler.Search)
	e.GET("/movies/:id", movieHandler.Get)
	e.POST("/movies", movieHandler.Create, requireAuth)
	e.PUT("/movies/:id", movieHandler.Update, requireAuth)
	e.DELETE("/movies/:id", movieHandler.Delete, requireAuth)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
