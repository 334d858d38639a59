// Package middleware provides reusable HTTP middleware: bearer-token
// authentication, access-policy gates and rate limiting.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/auth"
)

// identityKey is the context key under which the verified identity is
// stored for downstream middleware and handlers.
const identityKey = "identity"

// Authenticate returns middleware that validates the Bearer access token
// and re-resolves its subject against the user store on every request.
// A token for a deleted or deactivated account is rejected here even if
// it is still within its validity window.  Token failures and unknown
// subjects share one response body so the caller learns nothing beyond
// "unauthorized"; an inactive account is reported as such because the
// credential itself was valid.
func Authenticate(a *auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			ident, err := a.AuthenticateByToken(c.Request().Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrExpired):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				case errors.Is(err, auth.ErrInactiveAccount):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account is inactive"})
				case errors.Is(err, auth.ErrInvalidSignature),
					errors.Is(err, auth.ErrMalformed),
					errors.Is(err, auth.ErrUnknownSubject):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				default:
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication failed"})
				}
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by Authenticate.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	ident, ok := c.Get(identityKey).(auth.Identity)
	return ident, ok
}
