package api

import (
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/backoffice/docs"
	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// Dependencies are the use cases and probes the router exposes.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService
	Activity ports.ActivityService

	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.PingFunc
	Log       zerolog.Logger
}

// The Prometheus collectors behind the HTTP middleware register globally,
// so the middleware is built once per process.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("backoffice")
})

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(deps.Log))
	e.Use(httpMetrics())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	productHandler := handler.NewProductHandler(deps.Products)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	activityHandler := handler.NewActivityHandler(deps.Activity)

	authMiddleware := middleware.Auth(deps.Auth)
	catalogEditors := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)
	adminsOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/auth/me", authHandler.Me, authMiddleware)
	api.POST("/auth/logout", authHandler.Logout, authMiddleware)
	api.PUT("/auth/password", authHandler.ChangePassword, authMiddleware)
	api.PUT("/profile", userHandler.UpdateProfile, authMiddleware)

	// --- Users (admin) ---
	users := api.Group("/users", authMiddleware, adminsOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Products ---
	products := api.Group("/products", authMiddleware)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, catalogEditors)
	products.PUT("/:id", productHandler.Update, catalogEditors)
	products.DELETE("/:id", productHandler.Delete, catalogEditors)

	// --- Orders ---
	orders := api.Group("/orders", authMiddleware)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, catalogEditors)

	api.GET("/activity", activityHandler.Recent, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

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
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
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
