package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

const uniqueViolation = "23505"

// Repositories holds all repository implementations
type Repositories struct {
	Team        TeamRepository
	Match       MatchRepository
	Prediction  PredictionRepository
	Odds        OddsRepository
	Opportunity OpportunityRepository
	Stats       StatsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Team:        NewPostgresTeamRepository(db),
		Match:       NewPostgresMatchRepository(db),
		Prediction:  NewPostgresPredictionRepository(db),
		Odds:        NewPostgresOddsRepository(db),
		Opportunity: NewPostgresOpportunityRepository(db),
		Stats:       NewPostgresStatsRepository(db),
	}, nil
}

// mapError translates driver errors into model errors
func mapError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("failed to %s: %w", action, models.ErrDuplicateKey)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
