package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/auth"
	"github.com/ndt123-fs/Code-Gym/internal/plan"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateEmail  = errors.New("email is already registered")
	ErrPlanInactive    = errors.New("plan is not open for registration")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrNotATrainer     = errors.New("account does not have the trainer role")
	ErrTrainerInactive = errors.New("trainer account is deactivated")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const memberColumns = `id, full_name, gender, birth_year, phone, email, channel, registration_date,
	trainer_id, plan_id, subscription_start, subscription_end, active, created_at, updated_at`

// Register inserts the member and the initial plan payment in one
// transaction. A member without a paid first period cannot exist.
func (r *repository) Register(ctx context.Context, m *Member, planID int) (*RegistrationResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`, m.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
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

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := plan.AddMonths(start, p.DurationMonths)

	member := &Member{}
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO members (full_name, gender, birth_year, phone, email, channel,
			registration_date, plan_id, subscription_start, subscription_end)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+memberColumns,
		m.FullName, m.Gender, m.BirthYear, m.Phone, m.Email, m.Channel,
		start, p.ID, start, end,
	).StructScan(member)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (member_id, plan_id, amount, kind, note)
		 VALUES ($1, $2, $3, 'plan_payment', 'registration')`,
		member.ID, p.ID, p.Price,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &RegistrationResult{
		Member:   member,
		PlanName: p.Name,
		Amount:   p.Price,
	}, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	m := &Member{}
	err := r.db.GetContext(ctx, m,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListExpiring returns active members whose subscription ends inside
// [from, to), soonest first.
func (r *repository) ListExpiring(ctx context.Context, from, to time.Time) ([]Member, error) {
	members := []Member{}
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members
		 WHERE active AND subscription_end >= $1 AND subscription_end < $2
		 ORDER BY subscription_end, id`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	return members, nil
}

// List returns members newest first for the reception dashboard.
func (r *repository) List(ctx context.Context) ([]Member, error) {
	members := []Member{}
	err := r.db.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members ORDER BY registration_date DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AssignTrainer links the member to an active trainer account. Training
// plans authored by the previous trainer stay untouched.
func (r *repository) AssignTrainer(ctx context.Context, memberID, trainerID int) (*Member, error) {
	var trainer struct {
		Role   string `db:"role"`
		Active bool   `db:"active"`
	}
	err := r.db.GetContext(ctx, &trainer,
		`SELECT role, active FROM users WHERE id = $1`,
		trainerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if trainer.Role != auth.RoleTrainer {
		return nil, ErrNotATrainer
	}
	if !trainer.Active {
		return nil, ErrTrainerInactive
	}

	m := &Member{}
	err = r.db.QueryRowxContext(ctx,
		`UPDATE members
		 SET trainer_id = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+memberColumns,
		trainerID, memberID,
	).StructScan(m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *repository) Deactivate(ctx context.Context, memberID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET active = false, updated_at = NOW() WHERE id = $1 AND active`,
		memberID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}
