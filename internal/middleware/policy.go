package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/auth"
)

// RequireAction returns middleware that consults the access policy for
// actions whose outcome does not depend on resource ownership.  It must
// run after Authenticate.  Ownership-scoped actions (task status updates)
// are checked in the handler once the resource has been loaded.
func RequireAction(action auth.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := CurrentIdentity(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			if !auth.CanPerform(ident.Role, action, false) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
