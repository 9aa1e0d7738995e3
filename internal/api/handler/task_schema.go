package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-management-api/internal/core/domain"
	"github.com/taskhive/task-management-api/internal/core/ports"
)

// errorResponse documents the standard error envelope in swag annotations.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// updateTaskRequest is the allow-listed partial update. Pointer fields
// distinguish "absent" from zero values.
type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Read        *bool      `json:"read"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r updateTaskRequest) toPatch() ports.TaskPatch {
	patch := ports.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Read:        r.Read,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	return patch
}

// bindStrict decodes a JSON body rejecting unknown fields, so a patch
// cannot smuggle attributes past the allow-list. Echo's default binder
// silently drops unknown keys, which is not strict enough here.
func bindStrict(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}
