package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// stubLedger only tracks DeleteExpired calls.
type stubLedger struct {
	purged int64
	called bool
}

func (l *stubLedger) Insert(_ context.Context, _ *domain.RefreshTokenRecord) error { return nil }

func (l *stubLedger) FindByToken(_ context.Context, _ string) (*domain.RefreshTokenRecord, error) {
	return nil, domain.ErrInvalidRefreshToken
}

func (l *stubLedger) Rotate(_ context.Context, _ string, _ *domain.RefreshTokenRecord) error {
	return nil
}

func (l *stubLedger) DeleteByToken(_ context.Context, _, _ string) error { return nil }

func (l *stubLedger) DeleteByUser(_ context.Context, _ string) error { return nil }

func (l *stubLedger) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	l.called = true
	return l.purged, nil
}

func purgeRequest(h *MaintenanceHandler, authHeader string) (error, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/internal/cron/purge-tokens", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return h.PurgeTokens(e.NewContext(req, rec)), rec
}

func TestPurgeTokensRequiresCronSecret(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
		allow  bool
	}{
		{"correct secret", "s3cret", "Bearer s3cret", true},
		{"wrong secret", "s3cret", "Bearer nope", false},
		{"missing header", "s3cret", "", false},
		{"user-style token", "s3cret", "Bearer eyJhbGciOi.abc.def", false},
		{"unconfigured secret", "", "Bearer ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &stubLedger{purged: 3}
			h := NewMaintenanceHandler(ledger, tc.secret, zerolog.Nop())

			err, rec := purgeRequest(h, tc.header)
			if tc.allow {
				if err != nil {
					t.Fatalf("PurgeTokens: %v", err)
				}
				if rec.Code != http.StatusOK || !ledger.called {
					t.Fatalf("status = %d, ledger called = %v", rec.Code, ledger.called)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("err = %v, want HTTP 401", err)
			}
			if ledger.called {
				t.Fatal("purge ran without authorization")
			}
		})
	}
}
