package ports

import (
	"context"

	"github.com/taskhive/task-management-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListNonAdmins returns every user without the admin flag.
	ListNonAdmins(ctx context.Context) ([]domain.User, error)
	// PromoteToAdmin sets the admin flag on the user with the given email.
	PromoteToAdmin(ctx context.Context, email string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
