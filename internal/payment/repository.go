package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/db"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberInactive = errors.New("member is deactivated")
	ErrPlanInactive   = errors.New("plan is not open for payment")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type lockedMember struct {
	ID              int       `db:"id"`
	FullName        string    `db:"full_name"`
	Email           string    `db:"email"`
	SubscriptionEnd time.Time `db:"subscription_end"`
	Active          bool      `db:"active"`
}

// RecordPlanPayment appends a ledger entry with the plan's current price and
// extends the member's subscription, all in one transaction. The member row
// is locked first so concurrent renewals serialize and both extensions land.
func (r *repository) RecordPlanPayment(ctx context.Context, memberID, planID int) (*RenewalResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var m lockedMember
	err = tx.QueryRowxContext(ctx,
		`SELECT id, full_name, email, subscription_end, active
		 FROM members
		 WHERE id = $1
		 FOR UPDATE`,
		memberID,
	).StructScan(&m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !m.Active {
		return nil, ErrMemberInactive
	}

	var p plan.Plan
	err = tx.GetContext(ctx, &p,
		`SELECT id, name, duration_months, price, description, active, created_at, updated_at
		 FROM plans
		 WHERE id = $1`,
		planID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, err
	}
	if !p.Active {
		return nil, ErrPlanInactive
	}

	// Extend from the later of today and the current end, so renewing early
	// never loses remaining days and renewing late starts from today.
	now := time.Now()
	base := m.SubscriptionEnd
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, base.Location())
	if base.Before(today) {
		base = today
	}
	newEnd := plan.AddMonths(base, p.DurationMonths)

	payment := &Payment{}
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO payments (member_id, plan_id, amount, kind, note)
		 VALUES ($1, $2, $3, 'plan_payment', '')
		 RETURNING id, member_id, plan_id, amount, kind, note, created_at`,
		m.ID, p.ID, p.Price,
	).StructScan(payment)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE members
		 SET subscription_end = $1, plan_id = $2, updated_at = NOW()
		 WHERE id = $3`,
		newEnd, p.ID, m.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &RenewalResult{
		Payment:         payment,
		MemberName:      m.FullName,
		MemberEmail:     m.Email,
		PlanName:        p.Name,
		SubscriptionEnd: newEnd,
	}, nil
}

// RecordAdjustment appends a signed correction entry. Subscription state is
// untouched; only the ledger changes.
func (r *repository) RecordAdjustment(ctx context.Context, memberID int, amount int64, note string) (*Payment, error) {
	exists, err := r.memberExists(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	payment := &Payment{}
	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO payments (member_id, plan_id, amount, kind, note)
		 VALUES ($1, NULL, $2, 'adjustment', $3)
		 RETURNING id, member_id, plan_id, amount, kind, note, created_at`,
		memberID, amount, note,
	).StructScan(payment)
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *repository) memberExists(ctx context.Context, memberID int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, memberID)
}

// History returns a member's ledger entries in append order, oldest first.
func (r *repository) History(ctx context.Context, memberID int) ([]PaymentWithPlan, error) {
	exists, err := r.memberExists(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	query := `
		SELECT p.id, p.member_id, p.plan_id, p.amount, p.kind, p.note, p.created_at, pl.name AS plan_name
		FROM payments p
		LEFT JOIN plans pl ON p.plan_id = pl.id
		WHERE p.member_id = $1
		ORDER BY p.created_at ASC, p.id ASC
	`

	payments := []PaymentWithPlan{}
	err = r.db.SelectContext(ctx, &payments, query, memberID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) HistoryFiltered(ctx context.Context, filter HistoryFilter) ([]PaymentWithPlan, error) {
	query := `
		SELECT p.id, p.member_id, p.plan_id, p.amount, p.kind, p.note, p.created_at, pl.name AS plan_name
		FROM payments p
		LEFT JOIN plans pl ON p.plan_id = pl.id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.MemberID != nil {
		args = append(args, *filter.MemberID)
		query += fmt.Sprintf(" AND p.member_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND p.created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND p.created_at < $%d", len(args))
	}

	query += ` ORDER BY p.created_at DESC, p.id DESC`

	payments := []PaymentWithPlan{}
	err := r.db.SelectContext(ctx, &payments, query, args...)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
