package member

import "time"

type Channel string

const (
	ChannelOnline    Channel = "online"
	ChannelFrontDesk Channel = "front_desk"
)

type Member struct {
	ID                int       `db:"id" json:"id"`
	FullName          string    `db:"full_name" json:"full_name"`
	Gender            string    `db:"gender" json:"gender"`
	BirthYear         int       `db:"birth_year" json:"birth_year"`
	Phone             string    `db:"phone" json:"phone"`
	Email             string    `db:"email" json:"email"`
	Channel           Channel   `db:"channel" json:"channel"`
	RegistrationDate  time.Time `db:"registration_date" json:"registration_date"`
	TrainerID         *int      `db:"trainer_id" json:"trainer_id,omitempty"`
	PlanID            int       `db:"plan_id" json:"plan_id"`
	SubscriptionStart time.Time `db:"subscription_start" json:"subscription_start"`
	SubscriptionEnd   time.Time `db:"subscription_end" json:"subscription_end"`
	Active            bool      `db:"active" json:"active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// RegistrationResult bundles the new member with the payment snapshot taken
// in the same transaction.
type RegistrationResult struct {
	Member   *Member `json:"member"`
	PlanName string  `json:"plan_name"`
	Amount   int64   `json:"amount"`
}

type RegisterRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Gender    string `json:"gender"`
	BirthYear int    `json:"birth_year" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	PlanID    int    `json:"plan_id" binding:"required"`
}

type AssignTrainerRequest struct {
	TrainerID int `json:"trainer_id" binding:"required"`
}

type RenewRequest struct {
	PlanID int `json:"plan_id" binding:"required"`
}
