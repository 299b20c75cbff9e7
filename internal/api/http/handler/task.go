package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/api/http/request"
	"github.com/dkarpov/taskman-server/internal/logger"
	"github.com/dkarpov/taskman-server/internal/model"
)

// TaskService defines owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	GetByID(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, update model.TaskUpdate) (model.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

// Task handles HTTP endpoints for task CRUD.
type Task struct {
	service TaskService
	logger  *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(service TaskService, logger *logger.Logger) *Task {
	return &Task{service: service, logger: logger}
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *createTaskRequest) validate() []apierrors.FieldError {
	var errs []apierrors.FieldError
	errs = requireNonEmpty("title", r.Title, errs, "title is required")
	return errs
}

// updateTaskRequest carries a partial update; absent fields stay nil and are
// not touched.
type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *updateTaskRequest) validate() []apierrors.FieldError {
	var errs []apierrors.FieldError
	if r.Title != nil {
		errs = requireNonEmpty("title", *r.Title, errs, "title cannot be empty")
	}
	return errs
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Create stores a new task for the authenticated user.
func (h *Task) Create(c *gin.Context) {
	userID, ok := request.UserID(c.Request.Context())
	if !ok {
		unauthenticated(c)
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, h.logger, apierrors.NewValidation(apierrors.FieldError{
			Field:   "body",
			Message: "invalid request body",
		}))
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		handleError(c, h.logger, apierrors.NewValidation(errs...))
		return
	}

	task, err := h.service.Create(c.Request.Context(), model.CreateTaskParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// List returns all tasks of the authenticated user, newest first.
func (h *Task) List(c *gin.Context) {
	userID, ok := request.UserID(c.Request.Context())
	if !ok {
		unauthenticated(c)
		return
	}

	tasks, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	responses := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, toTaskResponse(task))
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns a single task by id.
func (h *Task) Get(c *gin.Context) {
	userID, ok := request.UserID(c.Request.Context())
	if !ok {
		unauthenticated(c)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), userID, taskID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update applies a partial update to a task.
func (h *Task) Update(c *gin.Context) {
	userID, ok := request.UserID(c.Request.Context())
	if !ok {
		unauthenticated(c)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, h.logger, apierrors.NewValidation(apierrors.FieldError{
			Field:   "body",
			Message: "invalid request body",
		}))
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		handleError(c, h.logger, apierrors.NewValidation(errs...))
		return
	}

	task, err := h.service.Update(c.Request.Context(), userID, taskID, model.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete permanently removes a task.
func (h *Task) Delete(c *gin.Context) {
	userID, ok := request.UserID(c.Request.Context())
	if !ok {
		unauthenticated(c)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, taskID); err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task removed"})
}

// parseTaskID maps an unparseable id to NotFound so probing with garbage ids
// is indistinguishable from probing with unknown ones.
func parseTaskID(c *gin.Context) (uuid.UUID, error) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierrors.NewTaskNotFound()
	}
	return taskID, nil
}

func unauthenticated(c *gin.Context) {
	apiErr := apierrors.NewMissingToken()
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}

func toTaskResponse(task model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
