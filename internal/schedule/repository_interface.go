package schedule

import "context"

type Repository interface {
	Create(ctx context.Context, memberID, trainerID int, notes string, items []TrainingPlanItem) (*TrainingPlan, error)
	GetByID(ctx context.Context, planID int) (*TrainingPlan, error)
	ListByMember(ctx context.Context, memberID int) ([]TrainingPlan, error)
	Update(ctx context.Context, planID int, notes string, items []TrainingPlanItem) (*TrainingPlan, error)
	DeleteItem(ctx context.Context, planID, itemID int) error
}
