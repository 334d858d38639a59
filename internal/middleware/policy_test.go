package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/auth"
)

func doPolicyRequest(t *testing.T, action auth.Action, ident *auth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		c.Set(identityKey, *ident)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireAction(action)(next)(c)
	require.NoError(t, err)
	return rec
}

func TestRequireAction_ManagerAllowed(t *testing.T) {
	rec := doPolicyRequest(t, auth.ActionCreateTask,
		&auth.Identity{ID: 1, Role: auth.RoleManager, Active: true})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAction_DeveloperForbidden(t *testing.T) {
	for _, action := range []auth.Action{
		auth.ActionCreateTask,
		auth.ActionUpdateTaskFull,
		auth.ActionDeleteTask,
		auth.ActionListAllTasks,
		auth.ActionListUsers,
	} {
		rec := doPolicyRequest(t, action,
			&auth.Identity{ID: 2, Role: auth.RoleDeveloper, Active: true})
		assert.Equal(t, http.StatusForbidden, rec.Code, "action %d", action)
	}
}

func TestRequireAction_DeveloperOwnTasksAllowed(t *testing.T) {
	rec := doPolicyRequest(t, auth.ActionListOwnTasks,
		&auth.Identity{ID: 2, Role: auth.RoleDeveloper, Active: true})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAction_NoIdentity(t *testing.T) {
	rec := doPolicyRequest(t, auth.ActionListOwnTasks, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
