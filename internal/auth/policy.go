package auth

import "strings"

// Role is the closed set of roles a user can hold.  Every authorization
// decision in the service goes through CanPerform; no handler compares
// role strings on its own.
type Role string

const (
	RoleManager   Role = "MANAGER"
	RoleDeveloper Role = "DEVELOPER"
)

// ParseRole normalizes a raw role string into a Role.  The second return
// value is false for anything outside the closed set.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleManager:
		return RoleManager, true
	case RoleDeveloper:
		return RoleDeveloper, true
	}
	return "", false
}

// Action identifies a class of operation gated by the access policy.
type Action int

const (
	ActionCreateTask Action = iota
	ActionUpdateTaskFull
	ActionUpdateTaskStatusOwn
	ActionListAllTasks
	ActionListOwnTasks
	ActionListUsers
	ActionDeleteTask
)

// Identity is the authenticated subject as resolved from the user store.
type Identity struct {
	ID     uint64
	Role   Role
	Active bool
}

// CanPerform is the single access-control truth table.  Managers may do
// everything; developers may list their own tasks, and may change the
// status of a task only when they own it (task.assignee == identity).
// Unknown roles and unknown actions are denied.
func CanPerform(role Role, action Action, isOwner bool) bool {
	switch role {
	case RoleManager:
		switch action {
		case ActionCreateTask, ActionUpdateTaskFull, ActionDeleteTask,
			ActionListAllTasks, ActionListUsers, ActionListOwnTasks,
			ActionUpdateTaskStatusOwn:
			return true
		}
		return false
	case RoleDeveloper:
		switch action {
		case ActionListOwnTasks:
			return true
		case ActionUpdateTaskStatusOwn:
			return isOwner
		}
		return false
	}
	return false
}
