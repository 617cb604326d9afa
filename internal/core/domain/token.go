package domain

import "time"

// TokenPair is the credential set returned by every successful
// authentication: a short-lived access token and a longer-lived refresh
// token, signed with independent secrets.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenRecord is the ledger entry backing an issued refresh token.
// Exactly one live record exists per token; it is deleted on rotation or
// logout, which is what makes refresh tokens revocable even while their
// signature is still valid.
type RefreshTokenRecord struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the ledger entry has passed its stored expiry.
// An expired record must be treated as absent.
func (r *RefreshTokenRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
