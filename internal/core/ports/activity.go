package ports

import (
	"context"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// ActivityRepository persists audit-trail entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
}

// ActivityRecorder accepts audit entries for asynchronous persistence.
// Implementations must never block request handling.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}
