package ports

import (
	"context"

	"github.com/taskhive/task-management-api/internal/core/domain"
)

// AdminSeed carries the configured identity of the distinguished admin
// account, applied once at startup.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// AuthService defines registration, login and admin seeding.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// EnsureAdminSeeded is idempotent: it creates the admin account when
	// absent, promotes a same-email non-admin, and leaves an existing admin
	// untouched.
	EnsureAdminSeeded(ctx context.Context, seed AdminSeed) error
}
