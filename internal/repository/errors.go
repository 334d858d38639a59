// Package repository contains the database/sql data access layer.  This
// file defines sentinel errors shared across repositories so handlers can
// translate failure modes into HTTP responses without inspecting driver
// errors.
package repository

import "errors"

// ErrUserExists is returned when an insert collides with an existing
// username or email.
var ErrUserExists = errors.New("username or email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when a task lookup or mutation matches no
// row.  Scoped queries (task id + assignee) return it as well, so a
// developer cannot distinguish "does not exist" from "not yours".
var ErrTaskNotFound = errors.New("task not found")
