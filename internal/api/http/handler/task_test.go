package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/api/http/request"
	"github.com/dkarpov/taskman-server/internal/model"
	"github.com/dkarpov/taskman-server/internal/testutil"
)

// MockTaskService mocks the TaskService interface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, userID, taskID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	args := m.Called(ctx, userID, taskID, update)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

// newTaskEngine injects a fixed user ID, standing in for the auth middleware.
func newTaskEngine(svc TaskService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTask(svc, testutil.MakeNoopLogger())
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(request.WithUserID(c.Request.Context(), userID))
	})
	engine.GET("/api/tasks", h.List)
	engine.POST("/api/tasks", h.Create)
	engine.GET("/api/tasks/:id", h.Get)
	engine.PUT("/api/tasks/:id", h.Update)
	engine.DELETE("/api/tasks/:id", h.Delete)
	return engine
}

func TestTaskHandler_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreateTaskParams) bool {
			return p.UserID == userID && p.Title == "Buy milk"
		})).Return(model.Task{ID: uuid.New(), OwnerID: userID, Title: "Buy milk"}, nil)

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"Buy milk"}`))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Buy milk", resp["title"])
		assert.Equal(t, false, resp["completed"])
	})

	t.Run("empty title", func(t *testing.T) {
		svc := &MockTaskService{}
		engine := newTaskEngine(svc, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"  "}`))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title")
		svc.AssertNotCalled(t, "Create")
	})
}

func TestTaskHandler_List(t *testing.T) {
	userID := uuid.New()

	t.Run("empty list renders as JSON array", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("List", mock.Anything, userID).Return([]model.Task{}, nil)

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestTaskHandler_Get(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("GetByID", mock.Anything, userID, taskID).
			Return(model.Task{ID: taskID, OwnerID: userID, Title: "Buy milk"}, nil)

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID.String(), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unparseable id maps to not found", func(t *testing.T) {
		svc := &MockTaskService{}
		engine := newTaskEngine(svc, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks/garbage", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())
		svc.AssertNotCalled(t, "GetByID")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("GetByID", mock.Anything, userID, taskID).
			Return(model.Task{}, apierrors.NewTaskNotFound())

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID.String(), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())
	})
}

func TestTaskHandler_Update(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("partial body keeps absent fields nil", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Update", mock.Anything, userID, taskID, mock.MatchedBy(func(u model.TaskUpdate) bool {
			return u.Title == nil && u.Description == nil && u.DueDate == nil &&
				u.Completed != nil && *u.Completed
		})).Return(model.Task{ID: taskID, OwnerID: userID, Title: "Buy milk", Completed: true}, nil)

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(`{"completed":true}`))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("present but empty title rejected", func(t *testing.T) {
		svc := &MockTaskService{}
		engine := newTaskEngine(svc, userID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+taskID.String(), strings.NewReader(`{"title":" "}`))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Update")
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("acknowledged", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Delete", mock.Anything, userID, taskID).Return(nil)

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"task removed"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Delete", mock.Anything, userID, taskID).Return(apierrors.NewTaskNotFound())

		engine := newTaskEngine(svc, userID)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
