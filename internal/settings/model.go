package settings

import "time"

const (
	// KeyMaxTrainingDays caps how many distinct weekdays a training plan
	// may cover. One rest day per week is always kept.
	KeyMaxTrainingDays = "max_training_days"

	DefaultMaxTrainingDays = 6
)

type Setting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateMaxTrainingDaysRequest struct {
	MaxTrainingDays *int `json:"max_training_days" binding:"required"`
}
