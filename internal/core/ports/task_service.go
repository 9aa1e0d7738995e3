package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-management-api/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task. Priority is the
// raw client value; the service normalises and validates it.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// TaskService defines caller-scoped task operations. Every operation taking
// a task id reports ErrTaskNotFound when the task does not exist or is not
// owned by the caller.
type TaskService interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (*domain.Task, error)
	Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}
