package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// Task list sort keys. Anything else leaves the result unordered.
const (
	SortNone     = ""
	SortPriority = "priority"
	SortDueDate  = "dueDate"
)

// TaskFilter narrows task listings. UserID is an equality match; Category and
// Status are optional equality matches; Search is an optional case-insensitive
// substring match against title or description.
type TaskFilter struct {
	UserID   string
	Category string
	Status   string
	Search   string
	SortBy   string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// ToggleStatus atomically flips pending<->completed and returns the
	// updated record.
	ToggleStatus(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// Categories returns the distinct category values across a user's tasks.
	Categories(ctx context.Context, userID string) ([]string, error)
}
