package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := NewToken(secret, 42, "user", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	claims, err := ParseToken(secret, tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "user" {
		t.Fatalf("Role = %q, want %q", claims.Role, "user")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not set in the future: %v", claims.ExpiresAt)
	}
	if claims.IssuedAt == nil {
		t.Fatalf("issued-at not set")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := NewToken(secret, 1, "user", -time.Minute)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = ParseToken(secret, tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewToken([]byte("right-secret"), 1, "user", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = ParseToken([]byte("wrong-secret"), tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	for _, tc := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := ParseToken([]byte("secret"), tc); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tc, err)
		}
	}
}

func TestParseToken_RejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	claims := Claims{UserID: 7, Role: "user"}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none: %v", err)
	}

	if _, err := ParseToken([]byte("secret"), raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for alg=none, got %v", err)
	}
}
