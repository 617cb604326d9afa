package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/halolight/admin-backend/internal/api/metrics"
	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
	"github.com/halolight/admin-backend/internal/core/token"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserKey   = "auth_user"
	ContextUserIDKey = "auth_user_id"
)

// Auth is the access guard for protected routes. It verifies the bearer
// access token statelessly, then re-checks that the owning account is still
// ACTIVE — a user suspended after issuance is rejected even though the
// token signature is still valid. Access tokens are never looked up in the
// refresh ledger.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := codec.Verify(parts[1])
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				metrics.AuthDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if user.Status != domain.StatusActive {
				metrics.AuthDeniedTotal.WithLabelValues("inactive_user").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "account is not active")
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextUserIDKey, user.ID)

			return next(c)
		}
	}
}
