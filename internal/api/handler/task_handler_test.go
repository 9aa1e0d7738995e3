package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-management-api/internal/api/middleware"
	"github.com/taskhive/task-management-api/internal/core/domain"
	"github.com/taskhive/task-management-api/internal/core/ports"
)

type stubTaskService struct {
	listFn   func(ctx context.Context, ownerID string) ([]domain.Task, error)
	createFn func(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error)
	updateFn func(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error)
	toggleFn func(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	deleteFn func(ctx context.Context, ownerID, taskID string) error
}

func (s *stubTaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubTaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, ownerID, input)
}

func (s *stubTaskService) Update(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, ownerID, taskID, patch)
}

func (s *stubTaskService) Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.toggleFn(ctx, ownerID, taskID)
}

func (s *stubTaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.deleteFn(ctx, ownerID, taskID)
}

func newTaskContext(t *testing.T, method, path, body string, caller *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		c.Set(middleware.CallerKey, caller)
	}
	return c, rec
}

var testCaller = &domain.User{ID: "user_1", Name: "Ann", Email: "ann@x.com"}

func TestTaskHandler_List(t *testing.T) {
	stub := &stubTaskService{
		listFn: func(ctx context.Context, ownerID string) ([]domain.Task, error) {
			if ownerID != "user_1" {
				t.Fatalf("expected caller scoping, got %q", ownerID)
			}
			return []domain.Task{{ID: "task_1", Title: "Buy milk", OwnerID: ownerID}}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskContext(t, http.MethodGet, "/api/tasks", "", testCaller)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var tasks []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(tasks) != 1 || tasks[0]["title"] != "Buy milk" {
		t.Fatalf("unexpected payload: %+v", tasks)
	}
}

func TestTaskHandler_List_NoCaller(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})

	c, _ := newTaskContext(t, http.MethodGet, "/api/tasks", "", nil)
	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
			if input.Title != "Buy milk" || input.Priority != "high" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{ID: "task_1", Title: input.Title, Priority: domain.PriorityHigh, OwnerID: ownerID}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskContext(t, http.MethodPost, "/api/tasks",
		`{"title":"Buy milk","priority":"high"}`, testCaller)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTaskContext(t, http.MethodPost, "/api/tasks", `{"description":"no title"}`, testCaller)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Update_PartialPatch(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
			if taskID != "task_1" {
				t.Fatalf("unexpected task id %q", taskID)
			}
			if patch.Completed == nil || !*patch.Completed {
				t.Fatalf("expected completed=true in patch")
			}
			if patch.Title != nil {
				t.Fatalf("title should be absent from patch")
			}
			return &domain.Task{ID: taskID, Title: "unchanged", Completed: true, OwnerID: ownerID}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskContext(t, http.MethodPut, "/api/tasks/task_1", `{"completed":true}`, testCaller)
	c.SetParamNames("id")
	c.SetParamValues("task_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_UnknownFieldRejected(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTaskContext(t, http.MethodPut, "/api/tasks/task_1", `{"ownerId":"someone_else"}`, testCaller)
	c.SetParamNames("id")
	c.SetParamValues("task_1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Toggle_NotFound(t *testing.T) {
	stub := &stubTaskService{
		toggleFn: func(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTaskContext(t, http.MethodPatch, "/api/tasks/task_9/toggle", "", testCaller)
	c.SetParamNames("id")
	c.SetParamValues("task_9")

	if err := h.Toggle(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound to propagate, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	deleted := false
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, ownerID, taskID string) error {
			deleted = true
			if ownerID != "user_1" || taskID != "task_1" {
				t.Fatalf("unexpected args: %s %s", ownerID, taskID)
			}
			return nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTaskContext(t, http.MethodDelete, "/api/tasks/task_1", "", testCaller)
	c.SetParamNames("id")
	c.SetParamValues("task_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
