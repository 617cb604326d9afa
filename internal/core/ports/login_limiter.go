package ports

import "context"

// LoginLimiter throttles repeated failed logins per email. A nil limiter
// disables throttling.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
