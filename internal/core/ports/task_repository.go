package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-management-api/internal/core/domain"
)

// TaskPatch is a partial update over a task's mutable fields. Nil fields
// are left untouched; this is the full allow-list — OwnerID and the
// timestamps are never patchable.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Read        *bool
	Priority    *domain.Priority
	DueDate     *time.Time
}

// TaskRepository defines the persistence interface for tasks. Every
// single-task operation is filtered by owner id, so a task owned by someone
// else is indistinguishable from a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	// ListByOwners returns the tasks of all given owners, grouped by owner id.
	ListByOwners(ctx context.Context, ownerIDs []string) (map[string][]domain.Task, error)
	Update(ctx context.Context, id, ownerID string, patch TaskPatch) (*domain.Task, error)
	// ToggleCompleted atomically flips the completed flag and returns the
	// updated task.
	ToggleCompleted(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	// DeleteByOwner removes every task of the given owner and returns the
	// number deleted.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
