package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/policy"
	"github.com/syncro4/taskboard/internal/core/ports"
)

// TaskHandler handles the task mutations. Every signed-in account may use
// them; there are no per-task ownership checks.
type TaskHandler struct {
	store ports.BoardStore
	newID func() string
	now   func() time.Time
}

func NewTaskHandler(store ports.BoardStore) *TaskHandler {
	return &TaskHandler{store: store, newID: uuid.NewString, now: time.Now}
}

// Create captures a new task at the top of the board.
//
// @Summary      Capture a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	session, err := h.authorize(c, policy.ActionCreateTask)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	clearDueDate(&req.DueDate)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task := toNewTask(req, h.newID(), h.now().UnixMilli(), session)
	h.store.CreateTask(c.Request().Context(), task)

	return c.JSON(http.StatusCreated, toTaskResponse(task, h.store.Snapshot().Users))
}

// UpdateStatus moves a task to another pipeline stage.
//
// @Summary      Change task status
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string               true  "Task id"
// @Param        body  body  updateStatusRequest  true  "New status"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	if _, err := h.authorize(c, policy.ActionUpdateTaskStatus); err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.store.UpdateTaskStatus(c.Request().Context(), c.Param("id"), domain.TaskStatus(req.Status))
	return c.NoContent(http.StatusNoContent)
}

// Update replaces every field of a task.
//
// @Summary      Replace a task
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string             true  "Task id"
// @Param        body  body  updateTaskRequest  true  "Task"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	if _, err := h.authorize(c, policy.ActionUpdateTask); err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	clearDueDate(&req.DueDate)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.store.UpdateTask(c.Request().Context(), toReplacementTask(c.Param("id"), req))
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a task.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if _, err := h.authorize(c, policy.ActionDeleteTask); err != nil {
		return err
	}
	h.store.DeleteTask(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) authorize(c echo.Context, action policy.Action) (*domain.User, error) {
	session, err := currentSession(c)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(session, action, ""); err != nil {
		return nil, err
	}
	return session, nil
}
