package todo

import (
	"context"
	"strings"
	"time"

	"todo-api/internal/model"
)

type Service struct {
	repo Repository
	loc  *time.Location
}

// NewService builds a service over repo. loc is the zone used to read
// offset-less timestamps and to derive calendar fields; nil means UTC.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc}
}

func (s *Service) ParseInput(body []byte) (Input, error) {
	return ParseInput(body, s.loc)
}

func (s *Service) Create(ctx context.Context, in Input) (model.Todo, error) {
	return s.repo.Create(ctx, in.todo(""))
}

func (s *Service) List(ctx context.Context) ([]model.Todo, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (model.Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Todo{}, model.ErrNotFound
	}
	return s.repo.Update(ctx, id, in.todo(id))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Query loads every stored todo and runs the filter engine over them.
func (s *Service) Query(ctx context.Context, opts FilterOptions) (Result, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return Apply(todos, opts, s.loc)
}

func (s *Service) PingContext(ctx context.Context) error {
	return s.repo.PingContext(ctx)
}
