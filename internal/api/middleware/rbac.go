package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halolight/admin-backend/internal/api/metrics"
	"github.com/halolight/admin-backend/internal/core/domain"
)

// RequirePermission gates a route on (resource, action). It consults the
// effective permission set of the user loaded by Auth, so it must run after
// the access guard.
func RequirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextUserKey).(*domain.User)
			if !ok {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !user.Can(resource, action) {
				metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
