package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dkarpov/taskman-server/internal/model"
)

// InMemoryUserStore is a map-backed UserStore for tests.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

var _ model.UserStore = (*InMemoryUserStore)(nil)

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *InMemoryUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *InMemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *InMemoryUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return model.User{}, model.ErrDuplicateEmail
		}
	}
	s.users[user.ID] = user
	return user, nil
}

// InMemoryTaskStore is a map-backed TaskStore for tests.
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]model.Task
}

var _ model.TaskStore = (*InMemoryTaskStore)(nil)

func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{tasks: make(map[uuid.UUID]model.Task)}
}

func (s *InMemoryTaskStore) Create(_ context.Context, task model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return task, nil
}

func (s *InMemoryTaskStore) GetByID(_ context.Context, id uuid.UUID) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	return task, nil
}

func (s *InMemoryTaskStore) GetByOwnerID(_ context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []model.Task
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *InMemoryTaskStore) Update(_ context.Context, id uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	s.tasks[id] = task
	return task, nil
}

func (s *InMemoryTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
