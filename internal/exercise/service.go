package exercise

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNameRequired  = errors.New("exercise name is required")
	ErrExerciseInUse = errors.New("exercise is referenced by a training plan")
)

type Service interface {
	Create(ctx context.Context, req CreateExerciseRequest) (*Exercise, error)
	GetByID(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	Update(ctx context.Context, id int, req UpdateExerciseRequest) (*Exercise, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateExerciseRequest) (*Exercise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Create(ctx, name, strings.TrimSpace(req.BodyPart), strings.TrimSpace(req.Description))
}

func (s *service) GetByID(ctx context.Context, id int) (*Exercise, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Exercise, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int, req UpdateExerciseRequest) (*Exercise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.repo.Update(ctx, id, name, strings.TrimSpace(req.BodyPart), strings.TrimSpace(req.Description))
}

func (s *service) Delete(ctx context.Context, id int) error {
	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrExerciseInUse
	}
	return s.repo.Delete(ctx, id)
}
