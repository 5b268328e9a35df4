package models

import "time"

// Tour difficulties
const (
	DifficultyEasy      = "easy"
	DifficultyMedium    = "medium"
	DifficultyDifficult = "difficult"
)

type Tour struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Duration     int       `json:"duration"`
	MaxGroupSize int       `json:"maxGroupSize"`
	Difficulty   string    `json:"difficulty"`
	Price        float64   `json:"price"`
	Summary      string    `json:"summary"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
