package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskflow/taskflow-api/internal/model"
)

// TaskRepo persists tasks.
type TaskRepo struct{ db *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = "id, title, description, status, priority, assignee_id, created_by, feedback, score, due_date, created_at, updated_at, completed_at"

func scanTask(scan func(dest ...any) error) (*model.Task, error) {
	var t model.Task
	err := scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssigneeID, &t.CreatedBy, &t.Feedback, &t.Score, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a task and reloads the row so DB defaults (status,
// created_at) are populated on t.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (title, description, priority, assignee_id, created_by, due_date) VALUES (?,?,?,?,?,?)",
		t.Title, t.Description, t.Priority, t.AssigneeID, t.CreatedBy, t.DueDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	loaded, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*t = *loaded
	return nil
}

// GetByID fetches a task by id.
func (r *TaskRepo) GetByID(ctx context.Context, id uint64) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id=? LIMIT 1", id)
	return scanTask(row.Scan)
}

// GetByIDForAssignee fetches a task only when it is assigned to the given
// user.  A task that exists but belongs to someone else comes back as
// ErrTaskNotFound.
func (r *TaskRepo) GetByIDForAssignee(ctx context.Context, id, assigneeID uint64) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id=? AND assignee_id=? LIMIT 1", id, assigneeID)
	return scanTask(row.Scan)
}

// TaskFilter narrows list queries.  Zero values mean "no filter".
type TaskFilter struct {
	Status     string
	AssigneeID uint64
}

func (f TaskFilter) where() (string, []any) {
	cond, args := "", []any{}
	if f.Status != "" {
		cond += " AND status=?"
		args = append(args, f.Status)
	}
	if f.AssigneeID != 0 {
		cond += " AND assignee_id=?"
		args = append(args, f.AssigneeID)
	}
	return cond, args
}

// List returns a page of tasks matching the filter plus the total match
// count for pagination.
func (r *TaskRepo) List(ctx context.Context, f TaskFilter, offset, limit int) ([]model.Task, int, error) {
	cond, args := f.where()

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE 1=1"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE 1=1"+cond+" ORDER BY id LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

// Update applies a validated patch to the task and returns the reloaded
// row.  completedAt, when non-nil, stamps the completion time alongside
// the other fields.
func (r *TaskRepo) Update(ctx context.Context, id uint64, p model.TaskPatch, completedAt *time.Time) (*model.Task, error) {
	set, args := "", []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Priority != nil {
		add("priority", *p.Priority)
	}
	if p.AssigneeID != nil {
		add("assignee_id", *p.AssigneeID)
	}
	if p.Feedback != nil {
		add("feedback", *p.Feedback)
	}
	if p.Score != nil {
		add("score", *p.Score)
	}
	if p.DueDate != nil {
		add("due_date", *p.DueDate)
	}
	if completedAt != nil {
		add("completed_at", *completedAt)
	}
	if set == "" {
		return r.GetByID(ctx, id)
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, "UPDATE tasks SET "+set+" WHERE id=?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero affected rows for a no-op update as well,
		// so confirm existence via the reload below.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus sets only the status (and completion stamp) of a task.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id uint64, status string, completedAt *time.Time) (*model.Task, error) {
	patch := model.TaskPatch{Status: &status}
	return r.Update(ctx, id, patch, completedAt)
}

// Delete removes a task.  ErrTaskNotFound when nothing was deleted.
func (r *TaskRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
