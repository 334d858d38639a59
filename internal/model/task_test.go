package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string   { return &s }
func intptr(n int) *int         { return &n }
func f64ptr(f float64) *float64 { return &f }
func u64ptr(n uint64) *uint64   { return &n }

func TestTaskPatch_Validate(t *testing.T) {
	cases := []struct {
		name  string
		patch TaskPatch
		ok    bool
	}{
		{"empty patch", TaskPatch{}, true},
		{"valid title", TaskPatch{Title: strptr("fix login")}, true},
		{"empty title", TaskPatch{Title: strptr("")}, false},
		{"valid status", TaskPatch{Status: strptr(TaskStatusInProgress)}, true},
		{"bogus status", TaskPatch{Status: strptr("DONE")}, false},
		{"priority low bound", TaskPatch{Priority: intptr(1)}, true},
		{"priority high bound", TaskPatch{Priority: intptr(4)}, true},
		{"priority too high", TaskPatch{Priority: intptr(5)}, false},
		{"priority zero", TaskPatch{Priority: intptr(0)}, false},
		{"score in range", TaskPatch{Score: f64ptr(7.5)}, true},
		{"score too low", TaskPatch{Score: f64ptr(0.5)}, false},
		{"score too high", TaskPatch{Score: f64ptr(11)}, false},
		{"zero assignee", TaskPatch{AssigneeID: u64ptr(0)}, false},
		{"valid assignee", TaskPatch{AssigneeID: u64ptr(3)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := tc.patch.Validate()
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestTaskPatch_Empty(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())
	assert.False(t, TaskPatch{Title: strptr("x")}.Empty())
	assert.False(t, TaskPatch{Score: f64ptr(5)}.Empty())
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range []string{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked} {
		assert.True(t, ValidTaskStatus(s))
	}
	for _, s := range []string{"", "pending", "DONE", "ARCHIVED"} {
		assert.False(t, ValidTaskStatus(s))
	}
}
