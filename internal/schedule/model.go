package schedule

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// TrainingPlan is a trainer-authored weekly schedule for one member. A
// member has at most one active plan; older plans stay as archived history.
type TrainingPlan struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	TrainerID int       `db:"trainer_id" json:"trainer_id"`
	Notes     string    `db:"notes" json:"notes"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Items []TrainingPlanItem `db:"-" json:"items"`
}

type TrainingPlanItem struct {
	ID           int     `db:"id" json:"id"`
	PlanID       int     `db:"plan_id" json:"plan_id"`
	ExerciseID   int     `db:"exercise_id" json:"exercise_id"`
	ExerciseName *string `db:"exercise_name" json:"exercise_name,omitempty"`
	Sets         int     `db:"sets" json:"sets"`
	Reps         int     `db:"reps" json:"reps"`
	Weekdays     string  `db:"weekdays" json:"weekdays"`
}

type ItemRequest struct {
	ExerciseID int      `json:"exercise_id" binding:"required"`
	Sets       int      `json:"sets" binding:"required"`
	Reps       int      `json:"reps" binding:"required"`
	Weekdays   []string `json:"weekdays" binding:"required"`
}

type CreatePlanRequest struct {
	MemberID int           `json:"member_id" binding:"required"`
	Notes    string        `json:"notes"`
	Items    []ItemRequest `json:"items" binding:"required"`
}

type UpdatePlanRequest struct {
	Notes string        `json:"notes"`
	Items []ItemRequest `json:"items" binding:"required"`
}

var ErrInvalidWeekday = errors.New("weekday must be one of mon, tue, wed, thu, fri, sat, sun")

// weekdayOrder fixes the canonical mon-first storage order.
var weekdayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// NormalizeWeekdays lowercases, validates and deduplicates the given
// weekdays and returns them comma-joined in week order.
func NormalizeWeekdays(days []string) (string, error) {
	if len(days) == 0 {
		return "", ErrInvalidWeekday
	}

	seen := map[string]bool{}
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		valid := false
		for _, w := range weekdayOrder {
			if d == w {
				valid = true
				break
			}
		}
		if !valid {
			return "", ErrInvalidWeekday
		}
		seen[d] = true
	}

	ordered := make([]string, 0, len(seen))
	for _, w := range weekdayOrder {
		if seen[w] {
			ordered = append(ordered, w)
		}
	}
	return strings.Join(ordered, ","), nil
}

// SplitWeekdays is the inverse of NormalizeWeekdays for stored values.
func SplitWeekdays(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
