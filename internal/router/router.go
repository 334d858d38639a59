// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/auth"
	"github.com/taskflow/taskflow-api/internal/handler"
	"github.com/taskflow/taskflow-api/internal/middleware"
)

// RegisterRoutes registers the routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// refresh and logout live under /v1/auth and carry their own credential
// handling; /v1/me and the password change require a valid bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authn *auth.Authenticator) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1/me")
	me.Use(middleware.Authenticate(authn))
	me.GET("", a.Me)
	me.POST("/password", a.ChangePassword)
}

// RegisterUsers registers the manager-only user endpoints.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, authn *auth.Authenticator) {
	g := e.Group("/v1/users")
	g.Use(middleware.Authenticate(authn))
	g.Use(middleware.RequireAction(auth.ActionListUsers))
	g.GET("", u.List)
	g.GET("/:id", u.GetByID)
}

// RegisterTasks registers the task endpoints.  Role gates that do not
// depend on ownership are enforced per route through the access policy;
// ownership-scoped checks happen in the handlers.
func RegisterTasks(e *echo.Echo, t *handler.TaskHandler, authn *auth.Authenticator) {
	g := e.Group("/v1/tasks")
	g.Use(middleware.Authenticate(authn))

	g.POST("", t.Create, middleware.RequireAction(auth.ActionCreateTask))
	g.GET("", t.ListMine, middleware.RequireAction(auth.ActionListOwnTasks))
	g.GET("/all", t.ListAll, middleware.RequireAction(auth.ActionListAllTasks))
	g.GET("/:id", t.GetByID)
	g.PUT("/:id", t.Update, middleware.RequireAction(auth.ActionUpdateTaskFull))
	g.PUT("/:id/status", t.UpdateStatus)
	g.DELETE("/:id", t.Delete, middleware.RequireAction(auth.ActionDeleteTask))
}
