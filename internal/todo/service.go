package todo

import (
	"context"

	"bookinventory/internal/entity"

	"github.com/sirupsen/logrus"
)

// Service is a thin pass-through over the repository.
type Service struct {
	repo Repository
	log  *logrus.Logger
}

func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context) ([]Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []Todo{}
	}
	return todos, nil
}

// Create ignores any client-supplied id.
func (s *Service) Create(ctx context.Context, t Todo) (Todo, error) {
	t.ID = ""
	t.DueDate = entity.OrNil(t.DueDate)
	if err := s.repo.Create(ctx, &t); err != nil {
		s.log.WithError(err).Error("failed to save todo")
		return Todo{}, err
	}
	s.log.WithField("id", t.ID).Debug("todo created")
	return t, nil
}

// Upsert replaces the todo stored under id, creating it when id is unknown.
func (s *Service) Upsert(ctx context.Context, id string, t Todo) (Todo, error) {
	t.ID = id
	t.DueDate = entity.OrNil(t.DueDate)
	if err := s.repo.Save(ctx, &t); err != nil {
		s.log.WithError(err).WithField("id", id).Error("failed to save todo")
		return Todo{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
