package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/halolight/admin-backend/internal/api/middleware"
	"github.com/halolight/admin-backend/internal/core/domain"
)

// currentUser extracts the user injected by the Auth middleware. A missing
// user means the route was wired without the access guard — reject with 401
// rather than trusting the request.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
