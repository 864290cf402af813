package memorystore

import (
	"context"
	"slices"
	"sync"

	"todo-api/internal/ids"
	"todo-api/internal/model"
)

// TodoStore keeps todos in memory. List returns them in insertion order.
type TodoStore struct {
	mu    sync.RWMutex
	todos map[string]model.Todo
	order []string
}

func NewTodoStore() *TodoStore {
	return &TodoStore{todos: make(map[string]model.Todo)}
}

func (s *TodoStore) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	t.ID = ids.NewID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[t.ID] = t
	s.order = append(s.order, t.ID)
	return t, nil
}

func (s *TodoStore) List(ctx context.Context) ([]model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Todo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.todos[id])
	}
	return out, nil
}

func (s *TodoStore) Update(ctx context.Context, id string, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return model.Todo{}, model.ErrNotFound
	}
	t.ID = id
	s.todos[id] = t
	return t, nil
}

func (s *TodoStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.todos, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func (s *TodoStore) PingContext(ctx context.Context) error {
	return nil
}
