package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/auth"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/model"
	"github.com/taskflow/taskflow-api/internal/queue"
	"github.com/taskflow/taskflow-api/internal/repository"
	queue_publisher "github.com/taskflow/taskflow-api/internal/service"
)

// TaskHandler implements the task CRUD endpoints.
type TaskHandler struct {
	Tasks *repository.TaskRepo
	Users *repository.UserRepo
}

func NewTaskHandler(t *repository.TaskRepo, u *repository.UserRepo) *TaskHandler {
	if t == nil || u == nil {
		panic("nil repository passed to NewTaskHandler")
	}
	return &TaskHandler{Tasks: t, Users: u}
}

type createTaskReq struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    int        `json:"priority"`
	AssigneeID  uint64     `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type statusUpdateReq struct {
	Status string `json:"status"`
}

type taskListResp struct {
	Tasks   []model.Task `json:"tasks"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Pages   int          `json:"pages"`
}

// publish emits a task event, best effort.
func publish(ctx context.Context, typ string, t *model.Task, actorID uint64) {
	_ = queue_publisher.PublishTaskEvent(ctx, queue.TaskEvent{
		Type:       typ,
		TaskID:     t.ID,
		Title:      t.Title,
		Status:     t.Status,
		AssigneeID: t.AssigneeID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Create handles POST /v1/tasks (manager only, gated by RequireAction).
func (h *TaskHandler) Create(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.AssigneeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assignee_id is required"})
	}
	if req.Priority == 0 {
		req.Priority = model.TaskPriorityMin
	}
	if req.Priority < model.TaskPriorityMin || req.Priority > model.TaskPriorityMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "priority must be between 1 and 4"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.AssigneeID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "assignee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify assignee failed"})
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   ident.ID,
		DueDate:     req.DueDate,
	}
	if err := h.Tasks.Create(ctx, task); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	publish(ctx, queue.EventTaskCreated, task, ident.ID)
	return c.JSON(http.StatusCreated, task)
}

// listParams extracts the shared pagination/status filter query params.
func listParams(c echo.Context) (status string, page, perPage int, errMsg string) {
	status = strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.ValidTaskStatus(status) {
		return "", 0, 0, "invalid status"
	}
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage = queryInt(c, "per_page", 10)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > 100 {
		perPage = 100
	}
	return status, page, perPage, ""
}

func (h *TaskHandler) list(c echo.Context, f repository.TaskFilter, page, perPage int) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tasks, total, err := h.Tasks.List(ctx, f, (page-1)*perPage, perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tasks failed"})
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, taskListResp{
		Tasks:   tasks,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   (total + perPage - 1) / perPage,
	})
}

// ListMine handles GET /v1/tasks: the caller's own tasks.
func (h *TaskHandler) ListMine(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status, page, perPage, errMsg := listParams(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	return h.list(c, repository.TaskFilter{Status: status, AssigneeID: ident.ID}, page, perPage)
}

// ListAll handles GET /v1/tasks/all (manager only); supports an extra
// assignee_id filter.
func (h *TaskHandler) ListAll(c echo.Context) error {
	status, page, perPage, errMsg := listParams(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	var assignee uint64
	if raw := c.QueryParam("assignee_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignee_id"})
		}
		assignee = n
	}
	return h.list(c, repository.TaskFilter{Status: status, AssigneeID: assignee}, page, perPage)
}

// loadScoped fetches a task with visibility scoped to the caller:
// managers see any task, developers only tasks assigned to them.  Both
// "does not exist" and "not yours" come back as ErrTaskNotFound.
func (h *TaskHandler) loadScoped(ctx context.Context, ident auth.Identity, id uint64) (*model.Task, error) {
	if auth.CanPerform(ident.Role, auth.ActionListAllTasks, false) {
		return h.Tasks.GetByID(ctx, id)
	}
	return h.Tasks.GetByIDForAssignee(ctx, id, ident.ID)
}

// GetByID handles GET /v1/tasks/:id.
func (h *TaskHandler) GetByID(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	task, err := h.loadScoped(ctx, ident, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load task failed"})
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /v1/tasks/:id (manager only): a partial update with
// independently optional fields, validated before anything is applied.
func (h *TaskHandler) Update(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if reason, ok := patch.Validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load task failed"})
	}
	if patch.AssigneeID != nil {
		if _, err := h.Users.GetByID(ctx, *patch.AssigneeID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "assignee not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify assignee failed"})
		}
	}

	var completedAt *time.Time
	if patch.Status != nil && *patch.Status == model.TaskStatusCompleted && task.CompletedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	statusChanged := patch.Status != nil && *patch.Status != task.Status

	updated, err := h.Tasks.Update(ctx, id, patch, completedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update task failed"})
	}
	if statusChanged {
		publish(ctx, queue.EventTaskStatusChanged, updated, ident.ID)
	} else {
		publish(ctx, queue.EventTaskUpdated, updated, ident.ID)
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateStatus handles PUT /v1/tasks/:id/status.  A manager may move any
// task; a developer only a task assigned to them.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	var req statusUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidTaskStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	task, err := h.loadScoped(ctx, ident, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load task failed"})
	}
	if !auth.CanPerform(ident.Role, auth.ActionUpdateTaskStatusOwn, task.AssigneeID == ident.ID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var completedAt *time.Time
	if status == model.TaskStatusCompleted && task.CompletedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	updated, err := h.Tasks.UpdateStatus(ctx, id, status, completedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	publish(ctx, queue.EventTaskStatusChanged, updated, ident.ID)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/tasks/:id (manager only).
func (h *TaskHandler) Delete(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load task failed"})
	}
	if err := h.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete task failed"})
	}
	publish(ctx, queue.EventTaskDeleted, task, ident.ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "task deleted"})
}
