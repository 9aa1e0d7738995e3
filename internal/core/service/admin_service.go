package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-management-api/internal/core/domain"
	"github.com/taskhive/task-management-api/internal/core/ports"
)

// StatsCache abstracts the platform stats cache (Redis).
type StatsCache interface {
	Get(ctx context.Context) (*ports.PlatformStats, error)
	Set(ctx context.Context, stats *ports.PlatformStats) error
}

// AdminService implements cross-user management. The distinguished admin
// account (IsAdmin=true) can never be deleted or have its tasks managed
// here.
type AdminService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	cache  StatsCache
	logger zerolog.Logger
}

func NewAdminService(users ports.UserRepository, tasks ports.TaskRepository, cache StatsCache, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, tasks: tasks, cache: cache, logger: logger}
}

// ListUsers returns every non-admin user with their tasks attached. The
// admin account itself is excluded from the panel.
func (s *AdminService) ListUsers(ctx context.Context) ([]ports.UserWithTasks, error) {
	users, err := s.users.ListNonAdmins(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	tasksByOwner, err := s.tasks.ListByOwners(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]ports.UserWithTasks, 0, len(users))
	for _, u := range users {
		tasks := tasksByOwner[u.ID]
		if tasks == nil {
			tasks = []domain.Task{}
		}
		result = append(result, ports.UserWithTasks{User: u, Tasks: tasks})
	}
	return result, nil
}

// DeleteUser cascades: dependents first, then the parent. A failure between
// the two phases leaves a retryable partial state, never an orphaned task.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return err
	}

	deleted, err := s.tasks.DeleteByOwner(ctx, target.ID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", target.ID).Int64("tasks_deleted", deleted).Msg("user cascade-deleted")
	return nil
}

// Stats returns user/task counts, served from the cache when fresh.
func (s *AdminService) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	taskCount, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.PlatformStats{UserCount: userCount, TaskCount: taskCount}
	if err := s.cache.Set(ctx, stats); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache platform stats")
	}
	return stats, nil
}

func (s *AdminService) ListUserTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListByOwner(ctx, target.ID)
}

func (s *AdminService) CreateTaskForUser(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return nil, err
	}

	task, err := buildTask(target.ID, input)
	if err != nil {
		return nil, err
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", target.ID).Msg("task created on behalf of user")
	return created, nil
}

func (s *AdminService) UpdateUserTask(ctx context.Context, userID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}
	return s.tasks.Update(ctx, taskID, target.ID, patch)
}

func (s *AdminService) ToggleUserTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ToggleCompleted(ctx, taskID, target.ID)
}

func (s *AdminService) DeleteUserTask(ctx context.Context, userID, taskID string) error {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID, target.ID)
}

// resolveTarget loads the target user and rejects the admin account. Every
// admin operation goes through here, so the protection cannot be bypassed.
func (s *AdminService) resolveTarget(ctx context.Context, userID string) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return target, nil
}
