package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dkarpov/taskman-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

// taskDocument is the persisted shape of a task.
type taskDocument struct {
	ID          string     `bson:"_id"`
	OwnerID     string     `bson:"owner_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Completed   bool       `bson:"completed"`
	DueDate     *time.Time `bson:"due_date,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		collection: db.Database().Collection("tasks"),
	}
}

// EnsureIndexes creates the owner listing index used by GetByOwnerID.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create owner index: %w", err)
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	_, err := r.collection.InsertOne(ctx, taskToDocument(task))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	var doc taskDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return taskFromDocument(doc)
}

// GetByOwnerID returns the owner's tasks ordered newest-created-first.
func (r *TaskRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by owner id: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := taskFromDocument(doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Update applies only the fields present in the update and bumps updated_at.
// Concurrent updates to the same task resolve last-write-wins at the store.
func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
	}
	if update.DueDate != nil {
		set["due_date"] = *update.DueDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return taskFromDocument(doc)
}

// Delete permanently removes the task. No tombstone is kept.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func taskToDocument(task model.Task) taskDocument {
	return taskDocument{
		ID:          task.ID.String(),
		OwnerID:     task.OwnerID.String(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func taskFromDocument(doc taskDocument) (model.Task, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to parse task id %q: %w", doc.ID, err)
	}
	ownerID, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to parse task owner id %q: %w", doc.OwnerID, err)
	}

	return model.Task{
		ID:          id,
		OwnerID:     ownerID,
		Title:       doc.Title,
		Description: doc.Description,
		Completed:   doc.Completed,
		DueDate:     doc.DueDate,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
