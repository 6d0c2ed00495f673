package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// ActiveMemberCount counts members whose subscription covers asOf. The
// boundary day itself still counts; deactivated members never do.
func (r *repository) ActiveMemberCount(ctx context.Context, asOf time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM members WHERE active AND subscription_end >= $1`,
		asOf,
	)
	return count, err
}

func (r *repository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	)
	return total, err
}

func (r *repository) RevenueByMonth(ctx context.Context, year int) ([]MonthRevenue, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	months := []MonthRevenue{}
	err := r.db.SelectContext(ctx, &months,
		`SELECT EXTRACT(MONTH FROM created_at)::int AS month, COALESCE(SUM(amount), 0) AS total
		 FROM payments
		 WHERE created_at >= $1 AND created_at < $2
		 GROUP BY month
		 ORDER BY month`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return months, nil
}

func (r *repository) ActiveByPlan(ctx context.Context, asOf time.Time) ([]PlanCount, error) {
	counts := []PlanCount{}
	err := r.db.SelectContext(ctx, &counts,
		`SELECT p.id AS plan_id, p.name AS plan_name, COUNT(m.id) AS count
		 FROM plans p
		 JOIN members m ON m.plan_id = p.id
		 WHERE m.active AND m.subscription_end >= $1
		 GROUP BY p.id, p.name
		 ORDER BY count DESC, p.id`,
		asOf,
	)
	if err != nil {
		return nil, err
	}
	return counts, nil
}
