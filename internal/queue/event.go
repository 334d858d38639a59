// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// Event types published to the task.events queue.
const (
	EventTaskCreated       = "task.created"
	EventTaskUpdated       = "task.updated"
	EventTaskStatusChanged = "task.status_changed"
	EventTaskDeleted       = "task.deleted"
)

// TaskEvent is published after a task mutation commits.  It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type TaskEvent struct {
	Type       string `json:"type"`
	TaskID     uint64 `json:"task_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	AssigneeID uint64 `json:"assignee_id"`
	ActorID    uint64 `json:"actor_id"`
	OccurredAt string `json:"occurred_at"`
}
