package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/model"
)

func taskRow(id, assignee uint64, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "status", "priority", "assignee_id",
		"created_by", "feedback", "score", "due_date", "created_at",
		"updated_at", "completed_at",
	}).AddRow(id, "task title", nil, status, 2, assignee, 1, nil, nil, nil, now, nil, nil)
}

func TestTaskRepo_GetByIDForAssignee_ScopesOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Task 5 exists but belongs to user 3; user 4's scoped query matches
	// no row and must come back as not-found.
	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id=\\? AND assignee_id=\\? LIMIT 1").
		WithArgs(uint64(5), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewTaskRepo(db).GetByIDForAssignee(context.Background(), 5, 4)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepo_GetByIDForAssignee_OwnerSees(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id=\\? AND assignee_id=\\? LIMIT 1").
		WithArgs(uint64(5), uint64(3)).
		WillReturnRows(taskRow(5, 3, model.TaskStatusPending))

	task, err := NewTaskRepo(db).GetByIDForAssignee(context.Background(), 5, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), task.ID)
	assert.Equal(t, uint64(3), task.AssigneeID)
}

func TestTaskRepo_List_FiltersAndCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM tasks WHERE 1=1 AND status=? AND assignee_id=?")).
		WithArgs(model.TaskStatusPending, uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE 1=1 AND status=\\? AND assignee_id=\\? ORDER BY id LIMIT \\? OFFSET \\?").
		WithArgs(model.TaskStatusPending, uint64(3), 10, 10).
		WillReturnRows(taskRow(12, 3, model.TaskStatusPending))

	tasks, total, err := NewTaskRepo(db).List(context.Background(),
		TaskFilter{Status: model.TaskStatusPending, AssigneeID: 3}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, uint64(12), tasks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id=?")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewTaskRepo(db).Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepo_Update_BuildsPatchSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	status := model.TaskStatusCompleted
	score := 8.0
	completed := time.Now().UTC()

	mock.ExpectExec("UPDATE tasks SET status=\\?, score=\\?, completed_at=\\?, updated_at=\\? WHERE id=\\?").
		WithArgs(status, score, completed, sqlmock.AnyArg(), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id=\\? LIMIT 1").
		WithArgs(uint64(5)).
		WillReturnRows(taskRow(5, 3, status))

	task, err := NewTaskRepo(db).Update(context.Background(), 5,
		model.TaskPatch{Status: &status, Score: &score}, &completed)
	require.NoError(t, err)
	assert.Equal(t, status, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
