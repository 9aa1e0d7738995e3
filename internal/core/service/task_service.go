package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-management-api/internal/core/domain"
	"github.com/taskhive/task-management-api/internal/core/ports"
)

// TaskService implements caller-scoped task operations. Ownership is
// enforced at the repository level: every single-task query filters by
// owner id, so foreign tasks surface as ErrTaskNotFound.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	task, err := buildTask(ownerID, input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", ownerID).Msg("task created")
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, taskID, ownerID, patch)
}

func (s *TaskService) Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.repo.ToggleCompleted(ctx, taskID, ownerID)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.repo.Delete(ctx, taskID, ownerID)
}

// buildTask validates a create input and assembles the task with its
// defaults: completed=false, read=false, priority=medium.
func buildTask(ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.Task{
		Title:       title,
		Description: input.Description,
		Completed:   false,
		Priority:    priority,
		DueDate:     input.DueDate,
		Read:        false,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// validatePatch normalises patch fields in place. A patched title must stay
// non-empty; a patched priority must parse.
func validatePatch(patch *ports.TaskPatch) error {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return domain.ErrInvalidInput
		}
		patch.Title = &trimmed
	}
	if patch.Priority != nil {
		parsed, err := domain.ParsePriority(string(*patch.Priority))
		if err != nil {
			return err
		}
		patch.Priority = &parsed
	}
	return nil
}
