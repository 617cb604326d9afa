package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/halolight/admin-backend/internal/api/metrics"
	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/ports"
	"github.com/halolight/admin-backend/internal/core/token"
)

// AuthService orchestrates the credential store, password hasher, token
// issuer and refresh-token ledger to implement the session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	ledger   ports.RefreshTokenRepository
	hasher   *PasswordHasher
	issuer   *token.Issuer
	limiter  ports.LoginLimiter
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	ledger ports.RefreshTokenRepository,
	hasher *PasswordHasher,
	issuer *token.Issuer,
	limiter ports.LoginLimiter,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		ledger:   ledger,
		hasher:   hasher,
		issuer:   issuer,
		limiter:  limiter,
		activity: activity,
		logger:   logger,
	}
}

// Register creates an account and signs it in. The repository enforces
// email/username uniqueness and reports domain.ErrUserExists on conflict.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	pair, err := s.issueSession(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	s.record(user.ID, domain.ActivityRegister, user.Email)
	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")

	return &ports.AuthResult{Tokens: pair, User: user}, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password fail identically so responses never reveal account existence.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, email)
		if err != nil {
			// Throttle outages must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != domain.StatusActive {
		metrics.LoginsTotal.WithLabelValues("not_active").Inc()
		return nil, domain.ErrAccountNotActive
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.loginFailed(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	now := time.Now().UTC()
	pair, err := s.issueSession(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(user.ID, domain.ActivityLogin, user.Email)
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{Tokens: pair, User: user}, nil
}

// Refresh redeems a refresh token exactly once. Signature failure, expiry,
// a missing ledger entry and a lost rotation race are all collapsed into
// domain.ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if _, err := s.issuer.Refresh.Verify(refreshToken); err != nil {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	rec, err := s.ledger.FindByToken(ctx, refreshToken)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("revoked").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	now := time.Now().UTC()
	if rec.Expired(now) {
		metrics.RefreshTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	pair, err := s.issuer.Pair(rec.UserID, now)
	if err != nil {
		return nil, err
	}

	// The ledger's atomic delete of the old token decides concurrent
	// redemptions: losing the race is an authoritative failure, not a
	// condition to retry.
	err = s.ledger.Rotate(ctx, refreshToken, &domain.RefreshTokenRecord{
		UserID:    rec.UserID,
		Token:     pair.RefreshToken,
		ExpiresAt: now.Add(s.issuer.Refresh.TTL()),
		CreatedAt: now,
	})
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("lost_race").Inc()
		return nil, domain.ErrInvalidRefreshToken
	}

	metrics.RefreshTotal.WithLabelValues("success").Inc()
	s.record(rec.UserID, domain.ActivityRefresh, "")
	return &pair, nil
}

// Logout revokes the given refresh token, or every token owned by the user
// when refreshToken is empty. Logout never fails over an unknown token.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	var err error
	if refreshToken != "" {
		err = s.ledger.DeleteByToken(ctx, userID, refreshToken)
	} else {
		err = s.ledger.DeleteByUser(ctx, userID)
	}
	if err != nil {
		return err
	}

	s.record(userID, domain.ActivityLogout, "")
	s.logger.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// CurrentUser loads the user with roles and effective permissions.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// issueSession issues a token pair and inserts the refresh-token ledger
// entry, then bumps the last-login timestamp.
func (s *AuthService) issueSession(ctx context.Context, userID string, now time.Time) (domain.TokenPair, error) {
	pair, err := s.issuer.Pair(userID, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = s.ledger.Insert(ctx, &domain.RefreshTokenRecord{
		UserID:    userID,
		Token:     pair.RefreshToken,
		ExpiresAt: now.Add(s.issuer.Refresh.TTL()),
		CreatedAt: now,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.users.UpdateLastLogin(ctx, userID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("last-login update failed")
	}
	return pair, nil
}

// loginFailed counts a failed attempt in both the metric and the throttle
// before the caller reports the collapsed InvalidCredentials error.
func (s *AuthService) loginFailed(ctx context.Context, email string) {
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) record(userID, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(domain.ActivityEntry{
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
}
