// Package middleware contains the request guards applied before
// handlers run: the bearer-token auth gate and the credential-endpoint
// rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/vault-api/internal/auth"
)

// identityKey is the context key the auth gate stores the resolved
// Identity under. Handlers must go through IdentityFrom rather than
// reading the raw value.
const identityKey = "identity"

// Identity is the typed result of token verification bound to the
// request context. It is the only claim data handlers ever see.
type Identity struct {
	UserID uint64
	Role   string
}

// TokenAuth returns the auth gate middleware. The Authorization header
// carries the token verbatim (the vault client does not use a
// "Bearer " prefix). A missing header is 401; a token that fails
// verification for any reason, including expiry, is 403. The
// distinction is deliberate and mirrored by the client.
func TokenAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
			}
			claims, err := auth.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}
			c.Set(identityKey, Identity{UserID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}

// IdentityFrom retrieves the Identity bound by TokenAuth. The boolean
// is false when the middleware did not run, which on a protected route
// means a wiring bug.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
