package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/halolight/admin-backend/internal/core/ports"
)

// MaintenanceHandler serves internal scheduled-job endpoints, guarded by a
// shared CRON_SECRET bearer rather than a user session.
type MaintenanceHandler struct {
	ledger     ports.RefreshTokenRepository
	cronSecret string
	logger     zerolog.Logger
}

func NewMaintenanceHandler(ledger ports.RefreshTokenRepository, cronSecret string, logger zerolog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{ledger: ledger, cronSecret: cronSecret, logger: logger}
}

// PurgeTokens deletes refresh-token ledger entries past their expiry.
// A missing secret, a wrong secret and an unconfigured secret all produce
// the same 401.
//
// @Summary      Purge expired refresh tokens
// @Tags         internal
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /internal/cron/purge-tokens [post]
func (h *MaintenanceHandler) PurgeTokens(c echo.Context) error {
	if !h.authorized(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	purged, err := h.ledger.DeleteExpired(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}

	h.logger.Info().Int64("purged", purged).Msg("expired refresh tokens purged")
	return c.JSON(http.StatusOK, messageResponse{Message: "purge complete"})
}

func (h *MaintenanceHandler) authorized(c echo.Context) bool {
	if h.cronSecret == "" {
		return false
	}
	header := c.Request().Header.Get("Authorization")
	want := "Bearer " + h.cronSecret
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(header)), []byte(want)) == 1
}
