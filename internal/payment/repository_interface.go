package payment

import "context"

type Repository interface {
	RecordPlanPayment(ctx context.Context, memberID, planID int) (*RenewalResult, error)
	RecordAdjustment(ctx context.Context, memberID int, amount int64, note string) (*Payment, error)
	History(ctx context.Context, memberID int) ([]PaymentWithPlan, error)
	HistoryFiltered(ctx context.Context, filter HistoryFilter) ([]PaymentWithPlan, error)
}
