package ports

import (
	"context"
	"time"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// RefreshTokenRepository is the ledger of issued refresh tokens.
//
// Rotate is the single cross-call synchronization point in the system: the
// delete of the old record must be atomic on the unique token key, so that
// of two concurrent rotations exactly one observes the delete and the other
// gets domain.ErrInvalidRefreshToken.
type RefreshTokenRepository interface {
	Insert(ctx context.Context, rec *domain.RefreshTokenRecord) error
	// FindByToken returns domain.ErrInvalidRefreshToken when no record
	// matches. Callers must still check the stored expiry.
	FindByToken(ctx context.Context, token string) (*domain.RefreshTokenRecord, error)
	// Rotate deletes the record for oldToken and inserts newRec. A zero-row
	// delete (token already rotated or revoked) fails the whole operation
	// with domain.ErrInvalidRefreshToken.
	Rotate(ctx context.Context, oldToken string, newRec *domain.RefreshTokenRecord) error
	// DeleteByToken removes a single record scoped to its owner.
	DeleteByToken(ctx context.Context, userID, token string) error
	// DeleteByUser removes every record owned by userID (global logout).
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteExpired purges records past their expiry, returning the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
