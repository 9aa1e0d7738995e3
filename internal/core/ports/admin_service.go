package ports

import (
	"context"

	"github.com/taskhive/task-management-api/internal/core/domain"
)

// UserWithTasks pairs a user with all tasks they own, for the admin panel.
type UserWithTasks struct {
	domain.User
	Tasks []domain.Task `json:"tasks"`
}

// PlatformStats is the aggregate shown on the admin dashboard.
type PlatformStats struct {
	UserCount int64 `json:"userCount"`
	TaskCount int64 `json:"taskCount"`
}

// AdminService defines cross-user operations. Targeting the distinguished
// admin account yields ErrForbidden; an unknown target yields
// ErrUserNotFound.
type AdminService interface {
	ListUsers(ctx context.Context) ([]UserWithTasks, error)
	// DeleteUser cascades: the target's tasks are removed first, then the
	// user record.
	DeleteUser(ctx context.Context, userID string) error
	Stats(ctx context.Context) (*PlatformStats, error)

	ListUserTasks(ctx context.Context, userID string) ([]domain.Task, error)
	CreateTaskForUser(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error)
	UpdateUserTask(ctx context.Context, userID, taskID string, patch TaskPatch) (*domain.Task, error)
	ToggleUserTask(ctx context.Context, userID, taskID string) (*domain.Task, error)
	DeleteUserTask(ctx context.Context, userID, taskID string) error
}
