package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cinelog/movie-catalog/docs"
	"github.com/cinelog/movie-catalog/internal/api/handler"
	"github.com/cinelog/movie-catalog/internal/api/middleware"
	"github.com/cinelog/movie-catalog/internal/core/ports"
	infrahttp "github.com/cinelog/movie-catalog/internal/infrastructure/http"
	"github.com/cinelog/movie-catalog/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log          zerolog.Logger
	CORSOrigins  []string
	HealthChecks map[string]handlers.Check

	Tokens   ports.TokenService
	Auth     ports.AuthService
	Accounts ports.AccountService
	Movies   ports.MovieService

	// Registry receives the per-route HTTP metrics and backs /metrics.
	// Nil uses the process-wide default registry.
	Registry interface {
		prometheus.Registerer
		prometheus.Gatherer
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := infrahttp.NewRouter(infrahttp.Options{
		Logger:       d.Log,
		ErrorHandler: NewHTTPErrorHandler(d.Log),
		Validator:    handler.NewValidator(),
		CORSOrigins:  d.CORSOrigins,
		HealthChecks: d.HealthChecks,
	})

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// --- Docs ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Movie Catalog API is running. Documentation: /api-docs/index.html")
	})
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	authMiddleware := middleware.Auth(d.Tokens)
	authHandler := handler.NewAuthHandler(d.Auth)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	movieHandler := handler.NewMovieHandler(d.Movies)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.Google)

	// --- Account routes ---
	users := api.Group("/users", authMiddleware)
	users.GET("/me", accountHandler.Profile)
	users.PUT("/me", accountHandler.UpdateProfile)
	users.PUT("/me/password", accountHandler.ChangePassword)
	users.DELETE("/me", accountHandler.Delete)

	// --- Movie routes (listing is public) ---
	api.GET("/movies", movieHandler.List)
	api.POST("/movies", movieHandler.Create, authMiddleware)
	api.GET("/movies/:id", movieHandler.Get, authMiddleware)
	api.PUT("/movies/:id", movieHandler.Update, authMiddleware)
	api.DELETE("/movies/:id", movieHandler.Delete, authMiddleware)

	return e
}
