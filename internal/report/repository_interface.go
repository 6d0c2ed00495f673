package report

import (
	"context"
	"time"
)

type Repository interface {
	ActiveMemberCount(ctx context.Context, asOf time.Time) (int, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (int64, error)
	RevenueByMonth(ctx context.Context, year int) ([]MonthRevenue, error)
	ActiveByPlan(ctx context.Context, asOf time.Time) ([]PlanCount, error)
}
