package plan

import "time"

// Plan is a membership tier: a duration in whole months and a VND price.
// Prices on historical payments are snapshots, so editing a plan never
// rewrites the ledger.
type Plan struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	DurationMonths int       `db:"duration_months" json:"duration_months"`
	Price          int64     `db:"price" json:"price"`
	Description    string    `db:"description" json:"description"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ValidDurations is the fixed set of plan lengths the gym sells.
var ValidDurations = []int{1, 3, 6, 12}

func IsValidDuration(months int) bool {
	for _, d := range ValidDurations {
		if months == d {
			return true
		}
	}
	return false
}

type CreatePlanRequest struct {
	Name           string `json:"name" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"required,oneof=1 3 6 12"`
	Price          int64  `json:"price" binding:"gte=0"`
	Description    string `json:"description"`
}

type UpdatePlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePriceRequest struct {
	Price *int64 `json:"price" binding:"required,gte=0"`
}
