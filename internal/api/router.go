package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/halolight/admin-backend/docs"
	"github.com/halolight/admin-backend/internal/api/handler"
	"github.com/halolight/admin-backend/internal/api/middleware"
	"github.com/halolight/admin-backend/internal/core/ports"
	"github.com/halolight/admin-backend/internal/core/token"
	"github.com/halolight/admin-backend/internal/infrastructure/http/handlers"
)

// Deps carries the wired components the router needs. All construction
// happens in cmd/server; the router only registers routes.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	UserRepo    ports.UserRepository
	Ledger      ports.RefreshTokenRepository
	AccessCodec *token.Codec
	CronSecret  string
	Logger      zerolog.Logger
	Mongo       *mongo.Database
	Redis       *redis.Client
}

// permission names the (resource, action) a route requires.
type permission struct {
	resource string
	action   string
}

// route is the explicit per-route access configuration consumed by the
// guard middleware: public routes skip authentication entirely, protected
// routes verify the bearer token, and routes with a permission additionally
// consult the permission resolver.
type route struct {
	method     string
	path       string
	handler    echo.HandlerFunc
	protected  bool
	permission *permission
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
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("admin_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	maintHandler := handler.NewMaintenanceHandler(deps.Ledger, deps.CronSecret, deps.Logger)
	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadinessHandler(deps.Mongo, deps.Redis)

	guard := middleware.Auth(deps.AccessCodec, deps.UserRepo)

	routes := []route{
		// Session lifecycle.
		{method: http.MethodPost, path: "/auth/register", handler: authHandler.Register},
		{method: http.MethodPost, path: "/auth/login", handler: authHandler.Login},
		{method: http.MethodPost, path: "/auth/refresh", handler: authHandler.Refresh},
		{method: http.MethodPost, path: "/auth/logout", handler: authHandler.Logout, protected: true},
		{method: http.MethodGet, path: "/auth/me", handler: authHandler.Me, protected: true},

		// User management.
		{method: http.MethodGet, path: "/users", handler: userHandler.List, protected: true,
			permission: &permission{"users", "read"}},
		{method: http.MethodGet, path: "/users/:id", handler: userHandler.Get, protected: true,
			permission: &permission{"users", "read"}},
		{method: http.MethodPost, path: "/users", handler: userHandler.Create, protected: true,
			permission: &permission{"users", "create"}},
		{method: http.MethodPatch, path: "/users/:id", handler: userHandler.Update, protected: true,
			permission: &permission{"users", "update"}},
		{method: http.MethodDelete, path: "/users/:id", handler: userHandler.Delete, protected: true,
			permission: &permission{"users", "delete"}},

		// Scheduled maintenance (CRON_SECRET guarded inside the handler).
		{method: http.MethodPost, path: "/internal/cron/purge-tokens", handler: maintHandler.PurgeTokens},

		// Probes (no auth required).
		{method: http.MethodGet, path: "/health", handler: healthHandler.Liveness},
		{method: http.MethodGet, path: "/health/ready", handler: readyHandler.Readiness},
	}

	for _, r := range routes {
		var mw []echo.MiddlewareFunc
		if r.protected {
			mw = append(mw, guard)
		}
		if r.permission != nil {
			mw = append(mw, middleware.RequirePermission(r.permission.resource, r.permission.action))
		}
		e.Add(r.method, r.path, r.handler, mw...)
	}

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
