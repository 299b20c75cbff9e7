package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, id uuid.UUID, update TaskUpdate) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Task represents a stored task entity. OwnerID is immutable after creation.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	UserID      uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
}

// TaskUpdate describes a partial update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
}
