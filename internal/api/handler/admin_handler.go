package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-management-api/internal/api/metrics"
	"github.com/taskhive/task-management-api/internal/core/ports"
)

// AdminHandler handles the admin-only /api/admin routes. Route-level
// protection (Auth + AdminOnly) is applied by the router; the target-user
// protections (admin account immunity) live in the service.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List all users with their tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.UserWithTasks
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PlatformStats
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// DeleteUser handles DELETE /api/admin/users/:id — cascade delete.
//
// @Summary      Delete a user and all their tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListUserTasks handles GET /api/admin/users/:id/tasks.
//
// @Summary      List a user's tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {array}   domain.Task
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/tasks [get]
func (h *AdminHandler) ListUserTasks(c echo.Context) error {
	tasks, err := h.service.ListUserTasks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTaskForUser handles POST /api/admin/users/:id/tasks.
//
// @Summary      Create a task on behalf of a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id}/tasks [post]
func (h *AdminHandler) CreateTaskForUser(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.CreateTaskForUser(c.Request().Context(), c.Param("id"), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// UpdateUserTask handles PUT /api/admin/users/:id/tasks/:taskId.
//
// @Summary      Update a user's task
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string             true  "User id"
// @Param        taskId  path      string             true  "Task id"
// @Param        body    body      updateTaskRequest  true  "Fields to patch"
// @Success      200     {object}  domain.Task
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/admin/users/{id}/tasks/{taskId} [put]
func (h *AdminHandler) UpdateUserTask(c echo.Context) error {
	var req updateTaskRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateUserTask(c.Request().Context(), c.Param("id"), c.Param("taskId"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteUserTask handles DELETE /api/admin/users/:id/tasks/:taskId.
//
// @Summary      Delete a user's task
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string  true  "User id"
// @Param        taskId  path  string  true  "Task id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/tasks/{taskId} [delete]
func (h *AdminHandler) DeleteUserTask(c echo.Context) error {
	if err := h.service.DeleteUserTask(c.Request().Context(), c.Param("id"), c.Param("taskId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleUserTask handles PATCH /api/admin/users/:id/tasks/:taskId/toggle.
//
// @Summary      Flip a user's task completion flag
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "User id"
// @Param        taskId  path      string  true  "Task id"
// @Success      200     {object}  domain.Task
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/admin/users/{id}/tasks/{taskId}/toggle [patch]
func (h *AdminHandler) ToggleUserTask(c echo.Context) error {
	task, err := h.service.ToggleUserTask(c.Request().Context(), c.Param("id"), c.Param("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
