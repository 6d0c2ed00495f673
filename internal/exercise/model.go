package exercise

import "time"

type Exercise struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	BodyPart    string    `db:"body_part" json:"body_part"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	BodyPart    string `json:"body_part"`
	Description string `json:"description"`
}

type UpdateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	BodyPart    string `json:"body_part"`
	Description string `json:"description"`
}
