// Package token signs and verifies the stateless bearer tokens used for
// authentication. Access and refresh tokens are issued by two independent
// Codec instances with their own secrets and lifetimes, so a leaked access
// secret cannot forge refresh tokens.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/halolight/admin-backend/internal/core/domain"
)

// ErrInvalidToken is returned for any verification failure: bad signature,
// wrong algorithm, malformed token or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload: subject (user id), a unique jti, iat and exp.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies one class of token (access or refresh).
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing HS256 tokens valid for ttl.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject, valid from now until now+ttl.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        tokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// tokenID gives every token a unique jti so that two pairs issued for the
// same subject within the same second still differ on the wire.
func tokenID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

// Verify checks signature and expiry and returns the subject. Verification
// is purely cryptographic; no store lookup happens here.
func (c *Codec) Verify(tokenStr string) (string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Issuer pairs the access and refresh codecs.
type Issuer struct {
	Access  *Codec
	Refresh *Codec
}

// NewIssuer builds an Issuer from the two signing contexts.
func NewIssuer(access, refresh *Codec) *Issuer {
	return &Issuer{Access: access, Refresh: refresh}
}

// Pair issues a fresh access/refresh token pair for subject.
func (i *Issuer) Pair(subject string, now time.Time) (domain.TokenPair, error) {
	access, err := i.Access.Issue(subject, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := i.Refresh.Issue(subject, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
