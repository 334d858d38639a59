package model

import "time"

// Task statuses.  CompletedAt is stamped the first time a task reaches
// COMPLETED.
const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusBlocked    = "BLOCKED"
)

// Priority bounds (1=Low .. 4=Critical) and manager score bounds.
const (
	TaskPriorityMin = 1
	TaskPriorityMax = 4
	TaskScoreMin    = 1
	TaskScoreMax    = 10
)

// ValidTaskStatus reports whether s is one of the task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

// Task mirrors the `tasks` table.  Nullable columns are pointers.
type Task struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	AssigneeID  uint64     `json:"assignee_id"`
	CreatedBy   uint64     `json:"created_by"`
	Feedback    *string    `json:"feedback"`
	Score       *float64   `json:"score"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TaskPatch is the partial-update structure for a full task update.  Each
// field is independently nullable; nil means "leave unchanged".  It is
// validated centrally by Validate before any field is applied.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *int       `json:"priority"`
	AssigneeID  *uint64    `json:"assignee_id"`
	Feedback    *string    `json:"feedback"`
	Score       *float64   `json:"score"`
	DueDate     *time.Time `json:"due_date"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssigneeID == nil && p.Feedback == nil &&
		p.Score == nil && p.DueDate == nil
}

// Validate checks every supplied field against its constraints and
// returns a human-readable reason when one fails.
func (p TaskPatch) Validate() (string, bool) {
	if p.Title != nil && *p.Title == "" {
		return "title must not be empty", false
	}
	if p.Status != nil && !ValidTaskStatus(*p.Status) {
		return "invalid status", false
	}
	if p.Priority != nil && (*p.Priority < TaskPriorityMin || *p.Priority > TaskPriorityMax) {
		return "priority must be between 1 and 4", false
	}
	if p.AssigneeID != nil && *p.AssigneeID == 0 {
		return "assignee_id must not be zero", false
	}
	if p.Score != nil && (*p.Score < TaskScoreMin || *p.Score > TaskScoreMax) {
		return "score must be between 1 and 10", false
	}
	return "", true
}
