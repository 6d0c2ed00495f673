package member

import (
	"context"
	"time"
)

type Repository interface {
	Register(ctx context.Context, m *Member, planID int) (*RegistrationResult, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]Member, error)
	AssignTrainer(ctx context.Context, memberID, trainerID int) (*Member, error)
	Deactivate(ctx context.Context, memberID int) error
}
