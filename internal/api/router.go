package api

import (
	"context"
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/syncro4/taskboard/docs"
	"github.com/syncro4/taskboard/internal/api/handler"
	"github.com/syncro4/taskboard/internal/api/middleware"
	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
	"github.com/syncro4/taskboard/internal/infrastructure/http/handlers"
)

// Dependencies is everything the HTTP layer needs.
type Dependencies struct {
	Store         ports.BoardStore
	Sessions      ports.SessionService
	Events        handler.ChangeSource
	Storage       handlers.Pinger
	StorageDriver string
	FocusLimit    int
	Logger        zerolog.Logger

	// BaseContext is the parent of every request context. Cancelling it ends
	// open event streams.
	BaseContext context.Context

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	if base := deps.BaseContext; base != nil {
		e.Server.BaseContext = func(net.Listener) context.Context { return base }
	}

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "taskboard",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/v1/events"
		},
	}))
	e.Use(middleware.Session(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Store)
	taskHandler := handler.NewTaskHandler(deps.Store)
	userHandler := handler.NewUserHandler(deps.Store)
	viewHandler := handler.NewViewHandler(deps.Store, deps.FocusLimit)
	eventHandler := handler.NewEventHandler(deps.Events)

	// --- Operational endpoints ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.Storage, deps.StorageDriver).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.GET("/auth/accounts", authHandler.Accounts)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, middleware.RequireSession())

	// --- Views (anonymous callers are redirected, not rejected) ---
	e.GET("/views", viewHandler.Show)
	e.GET("/views/:destination", viewHandler.Show)
	e.GET("/nav", viewHandler.Nav)

	// --- API (session required) ---
	v1 := e.Group("/v1", middleware.RequireSession())

	v1.POST("/tasks", taskHandler.Create)
	v1.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)

	v1.POST("/users", userHandler.Add, middleware.RBAC(domain.RoleAdmin))
	v1.DELETE("/users/:id", userHandler.Remove, middleware.RBAC(domain.RoleAdmin))
	v1.PATCH("/users/:id", userHandler.Update)

	v1.GET("/events", eventHandler.Stream)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
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
