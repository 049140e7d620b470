package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/campusevents/event-platform/docs"
	"github.com/campusevents/event-platform/internal/api/handler"
	"github.com/campusevents/event-platform/internal/api/middleware"
	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed by the
// caller so the router never reaches for a global handle.
type Deps struct {
	Auth            ports.AuthService
	Users           ports.UserService
	Events          ports.EventService
	Registrations   ports.RegistrationService
	Recommendations ports.RecommendationService

	JWTSecret     string
	AuthRateLimit float64
	Logger        zerolog.Logger

	// HealthChecks backs GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.DependencyCheck

	// Registerer and Gatherer default to the global Prometheus registry.
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

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ContextLogger(d.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "campus_events",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	eventHandler := handler.NewEventHandler(d.Events, d.Registrations, d.Recommendations)
	userHandler := handler.NewUserHandler(d.Users)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	authMW := middleware.Auth(d.JWTSecret)
	studentOnly := middleware.RBAC(domain.RoleStudent)
	organizerOnly := middleware.RBAC(domain.RoleOrganizer)

	// --- Operational routes (no auth required) ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "College Event Platform API running")
	})
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth", middleware.RateLimit(d.AuthRateLimit))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Events ---
	// Static paths are registered before /:eventId so they never shadow it.
	events := api.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/available", eventHandler.Available)
	events.POST("", eventHandler.Create, authMW, organizerOnly)
	events.GET("/my-events", eventHandler.MyEvents, authMW, organizerOnly)
	events.GET("/my-registrations", eventHandler.MyRegistrations, authMW, studentOnly)
	events.GET("/recommended", eventHandler.Recommended, authMW, studentOnly)
	events.POST("/:eventId/register", eventHandler.Register, authMW, studentOnly)

	// --- Users ---
	users := api.Group("/users", authMW)
	users.GET("/me", userHandler.Me, studentOnly)
	users.PUT("/interests", userHandler.UpdateInterests, studentOnly)
	users.PUT("/me", userHandler.UpdateMe)

	return e
}

// requestLogger writes one structured access log entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
