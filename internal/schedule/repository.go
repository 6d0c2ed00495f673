package schedule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ndt123-fs/Code-Gym/internal/db"
)

var (
	ErrPlanNotFound    = errors.New("training plan not found")
	ErrPlanArchived    = errors.New("training plan is archived")
	ErrItemNotFound    = errors.New("training plan item not found")
	ErrLastItem        = errors.New("a training plan must keep at least one item")
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberInactive  = errors.New("member is deactivated")
	ErrUnknownExercise = errors.New("unknown exercise in training plan")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the plan and its items, archiving the member's previous
// active plan in the same transaction so at most one stays active.
func (r *repository) Create(ctx context.Context, memberID, trainerID int, notes string, items []TrainingPlanItem) (*TrainingPlan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var active bool
	err = tx.GetContext(ctx, &active, `SELECT active FROM members WHERE id = $1`, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !active {
		return nil, ErrMemberInactive
	}

	if err := checkExercises(ctx, tx, items); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE training_plans
		 SET status = 'archived', updated_at = NOW()
		 WHERE member_id = $1 AND status = 'active'`,
		memberID,
	)
	if err != nil {
		return nil, err
	}

	plan := &TrainingPlan{}
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO training_plans (member_id, trainer_id, notes, status)
		 VALUES ($1, $2, $3, 'active')
		 RETURNING id, member_id, trainer_id, notes, status, created_at, updated_at`,
		memberID, trainerID, notes,
	).StructScan(plan)
	if err != nil {
		return nil, err
	}

	if err := insertItems(ctx, tx, plan.ID, items); err != nil {
		return nil, err
	}

	plan.Items, err = loadItems(ctx, tx, plan.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *repository) GetByID(ctx context.Context, planID int) (*TrainingPlan, error) {
	plan := &TrainingPlan{}
	err := r.db.GetContext(ctx, plan,
		`SELECT id, member_id, trainer_id, notes, status, created_at, updated_at
		 FROM training_plans
		 WHERE id = $1`,
		planID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan.Items, err = loadItems(ctx, r.db, planID)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ListByMember returns the member's plans newest first, active plan on top
// of its archived history.
func (r *repository) ListByMember(ctx context.Context, memberID int) ([]TrainingPlan, error) {
	exists, err := db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	plans := []TrainingPlan{}
	err = r.db.SelectContext(ctx, &plans,
		`SELECT id, member_id, trainer_id, notes, status, created_at, updated_at
		 FROM training_plans
		 WHERE member_id = $1
		 ORDER BY created_at DESC, id DESC`,
		memberID,
	)
	if err != nil {
		return nil, err
	}

	for i := range plans {
		plans[i].Items, err = loadItems(ctx, r.db, plans[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// Update replaces the notes and items of an active plan. Archived plans are
// read-only history.
func (r *repository) Update(ctx context.Context, planID int, notes string, items []TrainingPlanItem) (*TrainingPlan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	plan := &TrainingPlan{}
	err = tx.QueryRowxContext(ctx,
		`SELECT id, member_id, trainer_id, notes, status, created_at, updated_at
		 FROM training_plans
		 WHERE id = $1
		 FOR UPDATE`,
		planID,
	).StructScan(plan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.Status != StatusActive {
		return nil, ErrPlanArchived
	}

	if err := checkExercises(ctx, tx, items); err != nil {
		return nil, err
	}

	err = tx.QueryRowxContext(ctx,
		`UPDATE training_plans
		 SET notes = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING id, member_id, trainer_id, notes, status, created_at, updated_at`,
		notes, planID,
	).StructScan(plan)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM training_plan_items WHERE plan_id = $1`, planID)
	if err != nil {
		return nil, err
	}

	if err := insertItems(ctx, tx, planID, items); err != nil {
		return nil, err
	}

	plan.Items, err = loadItems(ctx, tx, planID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeleteItem removes one item from an active plan. The last item cannot be
// removed, a plan without items is meaningless.
func (r *repository) DeleteItem(ctx context.Context, planID, itemID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status Status
	err = tx.QueryRowxContext(ctx,
		`SELECT status FROM training_plans WHERE id = $1 FOR UPDATE`,
		planID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlanNotFound
		}
		return err
	}
	if status != StatusActive {
		return ErrPlanArchived
	}

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM training_plan_items WHERE plan_id = $1`,
		planID,
	)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastItem
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM training_plan_items WHERE id = $1 AND plan_id = $2`,
		itemID, planID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrItemNotFound
	}

	return tx.Commit()
}

func checkExercises(ctx context.Context, tx *sqlx.Tx, items []TrainingPlanItem) error {
	ids := make([]int, 0, len(items))
	seen := map[int]bool{}
	for _, it := range items {
		if !seen[it.ExerciseID] {
			seen[it.ExerciseID] = true
			ids = append(ids, it.ExerciseID)
		}
	}

	var count int
	err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM exercises WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return ErrUnknownExercise
	}
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, planID int, items []TrainingPlanItem) error {
	for _, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO training_plan_items (plan_id, exercise_id, sets, reps, weekdays)
			 VALUES ($1, $2, $3, $4, $5)`,
			planID, it.ExerciseID, it.Sets, it.Reps, it.Weekdays,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func loadItems(ctx context.Context, q sqlx.QueryerContext, planID int) ([]TrainingPlanItem, error) {
	items := []TrainingPlanItem{}
	err := sqlx.SelectContext(ctx, q, &items,
		`SELECT i.id, i.plan_id, i.exercise_id, e.name AS exercise_name, i.sets, i.reps, i.weekdays
		 FROM training_plan_items i
		 JOIN exercises e ON i.exercise_id = e.id
		 WHERE i.plan_id = $1
		 ORDER BY i.id`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	return items, nil
}
