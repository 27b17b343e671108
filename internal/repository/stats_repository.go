package repository

import (
	"context"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

// PostgresStatsRepository implements StatsRepository for PostgreSQL
type PostgresStatsRepository struct {
	db *database.DB
}

// NewPostgresStatsRepository creates a new stats repository
func NewPostgresStatsRepository(db *database.DB) StatsRepository {
	return &PostgresStatsRepository{db: db}
}

// GetStats counts the rows of every engine table
func (r *PostgresStatsRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM matches),
			(SELECT COUNT(*) FROM matches WHERE status = $1),
			(SELECT COUNT(*) FROM matches WHERE kickoff_time >= NOW()),
			(SELECT COUNT(*) FROM market_odds),
			(SELECT COUNT(*) FROM predictions),
			(SELECT COUNT(*) FROM opportunities),
			(SELECT COUNT(*) FROM bookmakers)
	`

	s := &models.Stats{}
	err := r.db.Conn(ctx).QueryRow(ctx, query, models.MatchStatusFinished).Scan(
		&s.Teams, &s.Matches, &s.FinishedMatches, &s.UpcomingMatches,
		&s.Odds, &s.Predictions, &s.Opportunities, &s.Bookmakers,
	)
	if err != nil {
		return nil, mapError(err, "get stats")
	}
	return s, nil
}
