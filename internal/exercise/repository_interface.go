package exercise

import "context"

type Repository interface {
	Create(ctx context.Context, name, bodyPart, description string) (*Exercise, error)
	GetByID(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	Update(ctx context.Context, id int, name, bodyPart, description string) (*Exercise, error)
	Delete(ctx context.Context, id int) error
	InUse(ctx context.Context, id int) (bool, error)
}
