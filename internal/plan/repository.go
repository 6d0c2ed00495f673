package plan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string, durationMonths int, price int64, description string) (*Plan, error) {
	query := `
		INSERT INTO plans (name, duration_months, price, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, duration_months, price, description, active, created_at, updated_at
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, name, durationMonths, price, description)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Plan, error) {
	query := `
		SELECT id, name, duration_months, price, description, active, created_at, updated_at
		FROM plans
		WHERE id = $1
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Plan, error) {
	query := `
		SELECT id, name, duration_months, price, description, active, created_at, updated_at
		FROM plans
		WHERE active
		ORDER BY duration_months ASC, price ASC
	`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Plan, error) {
	query := `
		SELECT id, name, duration_months, price, description, active, created_at, updated_at
		FROM plans
		ORDER BY duration_months ASC, price ASC
	`

	var plans []Plan
	err := r.db.SelectContext(ctx, &plans, query)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) Update(ctx context.Context, id int, name, description string) (*Plan, error) {
	query := `
		UPDATE plans
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, duration_months, price, description, active, created_at, updated_at
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, name, description, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdatePrice(ctx context.Context, id int, price int64) (*Plan, error) {
	query := `
		UPDATE plans
		SET price = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, duration_months, price, description, active, created_at, updated_at
	`

	var p Plan
	err := r.db.GetContext(ctx, &p, query, price, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) Deactivate(ctx context.Context, id int) error {
	query := `
		UPDATE plans
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPlanNotFound
	}

	return nil
}
