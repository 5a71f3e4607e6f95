// Package auth provides the credential primitives of the vault server:
// bcrypt password hashing and HS256 bearer tokens. Both are pure
// computation; neither touches storage.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token unless
// configuration overrides it. Expiry is mandatory; there is no way to
// mint a non-expiring token.
const DefaultTokenTTL = time.Hour

var (
	// ErrTokenExpired is returned by ParseToken when the signature is
	// valid but the expiry has elapsed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for every other defect: structural
	// tamper, signature mismatch, or unexpected signing method.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the identity facts embedded in a signed token. A Claims
// value is trusted only when it was produced by ParseToken.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"uid"`
	Role   string `json:"role"`
}

// NewToken builds and signs an HS256 JWT carrying the user's id and
// role. Issue time and expiry are always set; a zero ttl falls back to
// DefaultTokenTTL.
func NewToken(secret []byte, userID uint64, role string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ParseToken verifies a token string and returns its claims. It fails
// closed: any parse or verification problem yields ErrTokenInvalid,
// except an elapsed expiry which is reported as ErrTokenExpired so
// callers can distinguish the two in logs.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC, e.g. "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
