package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type mockTaskRepo struct {
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Task, error)
	ListFunc         func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error)
	CreateFunc       func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateFunc       func(ctx context.Context, task *domain.Task) error
	ToggleStatusFunc func(ctx context.Context, id string) (*domain.Task, error)
	DeleteFunc       func(ctx context.Context, id string) error
	CategoriesFunc   func(ctx context.Context, userID string) ([]string, error)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return m.ListFunc(ctx, filter)
}
func (m *mockTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return m.CreateFunc(ctx, task)
}
func (m *mockTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	return m.UpdateFunc(ctx, task)
}
func (m *mockTaskRepo) ToggleStatus(ctx context.Context, id string) (*domain.Task, error) {
	return m.ToggleStatusFunc(ctx, id)
}
func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTaskRepo) Categories(ctx context.Context, userID string) ([]string, error) {
	return m.CategoriesFunc(ctx, userID)
}

func TestCreateTask_ForcesPendingStatus(t *testing.T) {
	repo := &mockTaskRepo{
		CreateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			task.ID = "t1"
			return task, nil
		},
	}
	uc := New(repo, nil)

	due := time.Now().Add(48 * time.Hour)
	created, err := uc.CreateTask(context.Background(), &domain.Task{
		UserID:   "u1",
		Title:    "write report",
		DueDate:  &due,
		Priority: domain.PriorityHigh,
		Status:   domain.StatusCompleted, // client-supplied status is ignored
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "u1", created.UserID)
}

func TestCreateTask_RequiresOwner(t *testing.T) {
	uc := New(&mockTaskRepo{}, nil)

	_, err := uc.CreateTask(context.Background(), &domain.Task{Title: "orphan"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = uc.CreateTask(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestListTasks_PassesFilterThrough(t *testing.T) {
	var gotFilter repository.TaskFilter
	repo := &mockTaskRepo{
		ListFunc: func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
			gotFilter = filter
			return []domain.Task{{ID: "t1"}}, nil
		},
	}
	uc := New(repo, nil)

	filter := repository.TaskFilter{
		UserID:   "u1",
		Category: "work",
		Status:   domain.StatusPending,
		Search:   "report",
		SortBy:   repository.SortPriority,
	}
	tasks, err := uc.ListTasks(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, filter, gotFilter)
}

func TestUpdateTask_RequiresID(t *testing.T) {
	uc := New(&mockTaskRepo{}, nil)

	_, err := uc.UpdateTask(context.Background(), &domain.Task{Title: "no id"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestToggleComplete(t *testing.T) {
	repo := &mockTaskRepo{
		ToggleStatusFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			assert.Equal(t, "t1", id)
			return &domain.Task{ID: id, Status: domain.StatusCompleted}, nil
		},
	}
	uc := New(repo, nil)

	updated, err := uc.ToggleComplete(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = uc.ToggleComplete(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestDeleteTask_NotFound(t *testing.T) {
	repo := &mockTaskRepo{
		DeleteFunc: func(ctx context.Context, id string) error {
			return domain.ErrTaskNotFound
		},
	}
	uc := New(repo, nil)

	err := uc.DeleteTask(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestListCategories(t *testing.T) {
	repo := &mockTaskRepo{
		CategoriesFunc: func(ctx context.Context, userID string) ([]string, error) {
			assert.Equal(t, "u1", userID)
			return []string{"home", "work"}, nil
		},
	}
	uc := New(repo, nil)

	categories, err := uc.ListCategories(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "work"}, categories)
}
