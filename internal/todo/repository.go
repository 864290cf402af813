package todo

import (
	"context"

	"todo-api/internal/model"
)

// Repository is the record store behind the service. Update and Delete
// return model.ErrNotFound when id does not resolve to a stored todo.
type Repository interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	List(ctx context.Context) ([]model.Todo, error)
	Update(ctx context.Context, id string, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id string) error
	PingContext(ctx context.Context) error
}
