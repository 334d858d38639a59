package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanPerform_TruthTable(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		action  Action
		isOwner bool
		want    bool
	}{
		{"manager create", RoleManager, ActionCreateTask, false, true},
		{"manager full update", RoleManager, ActionUpdateTaskFull, false, true},
		{"manager delete", RoleManager, ActionDeleteTask, false, true},
		{"manager list all", RoleManager, ActionListAllTasks, false, true},
		{"manager list users", RoleManager, ActionListUsers, false, true},
		{"manager list own", RoleManager, ActionListOwnTasks, false, true},
		{"manager status any task", RoleManager, ActionUpdateTaskStatusOwn, false, true},
		{"manager status own task", RoleManager, ActionUpdateTaskStatusOwn, true, true},

		{"developer create", RoleDeveloper, ActionCreateTask, false, false},
		{"developer create even as owner", RoleDeveloper, ActionCreateTask, true, false},
		{"developer full update", RoleDeveloper, ActionUpdateTaskFull, true, false},
		{"developer delete", RoleDeveloper, ActionDeleteTask, true, false},
		{"developer list all", RoleDeveloper, ActionListAllTasks, false, false},
		{"developer list users", RoleDeveloper, ActionListUsers, false, false},
		{"developer list own", RoleDeveloper, ActionListOwnTasks, false, true},
		{"developer status not owner", RoleDeveloper, ActionUpdateTaskStatusOwn, false, false},
		{"developer status owner", RoleDeveloper, ActionUpdateTaskStatusOwn, true, true},

		{"unknown role denied", Role("INTERN"), ActionListOwnTasks, true, false},
		{"empty role denied", Role(""), ActionCreateTask, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanPerform(tc.role, tc.action, tc.isOwner))
		})
	}
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"MANAGER":    RoleManager,
		"manager":    RoleManager,
		" Developer": RoleDeveloper,
		"DEVELOPER":  RoleDeveloper,
	} {
		role, ok := ParseRole(raw)
		assert.True(t, ok, "raw %q", raw)
		assert.Equal(t, want, role)
	}

	for _, raw := range []string{"", "admin", "OWNER", "root"} {
		_, ok := ParseRole(raw)
		assert.False(t, ok, "raw %q", raw)
	}
}
