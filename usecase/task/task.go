package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	appLogger "github.com/taskdeck/backend/pkg/logger"
	"github.com/taskdeck/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListTasks returns the owner's tasks. Filtering, search and sorting all run
// in the storage layer; there is no pagination.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// CreateTask persists a new pending task for the owner.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.UserID == "" {
		return nil, domain.ErrInvalidPayload
	}
	task.Status = domain.StatusPending

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("task created", zap.String("task_id", created.ID), zap.String("user_id", created.UserID))
	return created, nil
}

// UpdateTask overwrites title, description, category, due date and priority.
// Status only changes through ToggleComplete.
func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleComplete flips the task between pending and completed.
func (uc *UseCase) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.tasks.ToggleStatus(ctx, id)
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidPayload
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("task deleted", zap.String("task_id", id))
	return nil
}

// ListCategories returns the distinct category values across the owner's tasks.
func (uc *UseCase) ListCategories(ctx context.Context, userID string) ([]string, error) {
	return uc.tasks.Categories(ctx, userID)
}
