package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/logger"
	"github.com/dkarpov/taskman-server/internal/model"
)

// Task enforces per-owner isolation and field validation over the task store.
// It holds no cache: every mutation re-reads current state first.
type Task struct {
	taskStore model.TaskStore
	logger    *logger.Logger
}

func NewTask(taskStore model.TaskStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		logger:    logger,
	}
}

// Create stores a new task owned by the caller. Title and description are
// trimmed; an empty trimmed title is rejected.
func (s *Task) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.Task{}, apierrors.NewValidation(apierrors.FieldError{
			Field:   "title",
			Message: "title is required",
		})
	}

	now := time.Now().UTC()
	task := model.Task{
		ID:          uuid.New(),
		OwnerID:     params.UserID,
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Completed:   false,
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created", "task_id", created.ID, "user_id", params.UserID)

	return created, nil
}

// List returns all tasks owned by the user, newest-created-first. A user with
// no tasks gets an empty slice, never an error.
func (s *Task) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskStore.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner id: %w", err)
	}

	if tasks == nil {
		tasks = []model.Task{}
	}

	return tasks, nil
}

// GetByID returns the task if it exists and is owned by the caller. A task
// owned by someone else is reported exactly like a missing one.
func (s *Task) GetByID(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierrors.NewTaskNotFound()
		}
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if task.OwnerID != userID {
		return model.Task{}, apierrors.NewTaskNotFound()
	}

	return task, nil
}

// Update applies the supplied fields only. Ownership is confirmed with a
// fresh read immediately before the write; the check-then-write window is
// benign because OwnerID is immutable.
func (s *Task) Update(ctx context.Context, userID, taskID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return model.Task{}, apierrors.NewValidation(apierrors.FieldError{
				Field:   "title",
				Message: "title cannot be empty",
			})
		}
		update.Title = &title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		update.Description = &description
	}

	if _, err := s.GetByID(ctx, userID, taskID); err != nil {
		return model.Task{}, err
	}

	updated, err := s.taskStore.Update(ctx, taskID, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierrors.NewTaskNotFound()
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task service: task updated", "task_id", taskID, "user_id", userID)

	return updated, nil
}

// Delete permanently removes the task after a fresh ownership check.
func (s *Task) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.GetByID(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewTaskNotFound()
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted", "task_id", taskID, "user_id", userID)

	return nil
}
