package models

import (
	"time"

	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

// Team represents a club with its supplied strength ratings
type Team struct {
	ID              int64     `db:"team_id" json:"team_id" validate:"required,gt=0"`
	Name            string    `db:"name" json:"name" validate:"required"`
	AttackStrength  *float64  `db:"attack_strength" json:"attack_strength" validate:"omitempty,gt=0"`
	DefenseStrength *float64  `db:"defense_strength" json:"defense_strength" validate:"omitempty,gt=0"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Strength returns the team's ratings for the engine. Missing ratings are
// returned as zero, which the engine reads as league average.
func (t *Team) Strength() quant.Strength {
	var s quant.Strength
	if t.AttackStrength != nil {
		s.Attack = *t.AttackStrength
	}
	if t.DefenseStrength != nil {
		s.Defense = *t.DefenseStrength
	}
	return s
}

// HasRatings checks if both strength ratings are present
func (t *Team) HasRatings() bool {
	return t.AttackStrength != nil && t.DefenseStrength != nil
}
