package exercise

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ndt123-fs/Code-Gym/internal/db"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, bodyPart, description string) (*Exercise, error) {
	e := &Exercise{}
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO exercises (name, body_part, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, body_part, description, created_at, updated_at`,
		name, bodyPart, description,
	).StructScan(e)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Exercise, error) {
	e := &Exercise{}
	err := r.db.GetContext(ctx, e,
		`SELECT id, name, body_part, description, created_at, updated_at FROM exercises WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *repository) List(ctx context.Context) ([]Exercise, error) {
	exercises := []Exercise{}
	err := r.db.SelectContext(ctx, &exercises,
		`SELECT id, name, body_part, description, created_at, updated_at FROM exercises ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *repository) Update(ctx context.Context, id int, name, bodyPart, description string) (*Exercise, error) {
	e := &Exercise{}
	err := r.db.QueryRowxContext(ctx,
		`UPDATE exercises
		 SET name = $1, body_part = $2, description = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING id, name, body_part, description, created_at, updated_at`,
		name, bodyPart, description, id,
	).StructScan(e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// InUse reports whether any training plan item still references the
// exercise, archived plans included. History keeps its exercise names.
func (r *repository) InUse(ctx context.Context, id int) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM training_plan_items WHERE exercise_id = $1)`, id)
}
