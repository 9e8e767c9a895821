package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/middleware"
	"github.com/taskdeck/backend/repository"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

type taskRepoStub struct {
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Task, error)
	ListFunc         func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error)
	CreateFunc       func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateFunc       func(ctx context.Context, task *domain.Task) error
	ToggleStatusFunc func(ctx context.Context, id string) (*domain.Task, error)
	DeleteFunc       func(ctx context.Context, id string) error
	CategoriesFunc   func(ctx context.Context, userID string) ([]string, error)
}

func (s *taskRepoStub) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.GetByIDFunc(ctx, id)
}
func (s *taskRepoStub) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return s.ListFunc(ctx, filter)
}
func (s *taskRepoStub) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return s.CreateFunc(ctx, task)
}
func (s *taskRepoStub) Update(ctx context.Context, task *domain.Task) error {
	return s.UpdateFunc(ctx, task)
}
func (s *taskRepoStub) ToggleStatus(ctx context.Context, id string) (*domain.Task, error) {
	return s.ToggleStatusFunc(ctx, id)
}
func (s *taskRepoStub) Delete(ctx context.Context, id string) error {
	return s.DeleteFunc(ctx, id)
}
func (s *taskRepoStub) Categories(ctx context.Context, userID string) ([]string, error) {
	return s.CategoriesFunc(ctx, userID)
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) transport.Envelope {
	t.Helper()
	var envelope transport.Envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	return envelope
}

func TestTaskList_EmptyResultIsAnArray(t *testing.T) {
	repo := &taskRepoStub{
		ListFunc: func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
			return nil, nil
		},
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/tasks?userId=u1")
	h.List(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	// Clients iterate the result directly; an empty list must be [] not null.
	assert.Contains(t, string(ctx.Response.Body()), `"data":[]`)
}

func TestTaskList_PassesQueryFilters(t *testing.T) {
	var gotFilter repository.TaskFilter
	repo := &taskRepoStub{
		ListFunc: func(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
			gotFilter = filter
			return []domain.Task{{ID: "t1", Title: "report"}}, nil
		},
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/tasks?userId=u1&category=work&status=pending&search=rep&sortBy=priority")
	h.List(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, repository.TaskFilter{
		UserID:   "u1",
		Category: "work",
		Status:   "pending",
		Search:   "rep",
		SortBy:   "priority",
	}, gotFilter)
}

func TestTaskCreate_OwnerComesFromSession(t *testing.T) {
	var createdWith string
	repo := &taskRepoStub{
		CreateFunc: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
			createdWith = task.UserID
			task.ID = "t1"
			return task, nil
		},
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.Header.Set(middleware.HeaderUserID, "session-user")
	// The payload claims a different owner; it must be ignored.
	ctx.Request.SetBody([]byte(`{"title":"write report","priority":1,"user":"attacker"}`))
	h.Create(ctx)

	assert.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	assert.Equal(t, "session-user", createdWith)
}

func TestTaskCreate_MissingSessionIdentity(t *testing.T) {
	h := NewTaskHandler(taskUC.New(&taskRepoStub{}, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetBody([]byte(`{"title":"write report"}`))
	h.Create(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestTaskGet_NotFound(t *testing.T) {
	repo := &taskRepoStub{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "gone")
	h.Get(ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, string(domain.ErrCodeNotFound), envelope.Code)
}

func TestTaskToggleComplete(t *testing.T) {
	repo := &taskRepoStub{
		ToggleStatusFunc: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, Status: domain.StatusCompleted}, nil
		},
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "t1")
	h.ToggleComplete(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"completed"`)
}

func TestTaskDelete(t *testing.T) {
	repo := &taskRepoStub{
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", "t1")
	h.Delete(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "task has been deleted successfully")
}

func TestTaskCategories(t *testing.T) {
	repo := &taskRepoStub{
		CategoriesFunc: func(ctx context.Context, userID string) ([]string, error) {
			return []string{"home", "work"}, nil
		},
	}
	h := NewTaskHandler(taskUC.New(repo, nil), nil, nil)

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set(middleware.HeaderUserID, "u1")
	h.Categories(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	assert.Equal(t, "success", envelope.Status)
	assert.ElementsMatch(t, []interface{}{"home", "work"}, envelope.Data)
}
