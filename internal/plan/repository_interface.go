package plan

import "context"

type Repository interface {
	Create(ctx context.Context, name string, durationMonths int, price int64, description string) (*Plan, error)
	GetByID(ctx context.Context, id int) (*Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
	ListAll(ctx context.Context) ([]Plan, error)
	Update(ctx context.Context, id int, name, description string) (*Plan, error)
	UpdatePrice(ctx context.Context, id int, price int64) (*Plan, error)
	Deactivate(ctx context.Context, id int) error
}
