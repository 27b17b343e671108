package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

const fixtureSelect = `
	SELECT m.match_id, m.home_team_id, m.away_team_id, m.kickoff_time, m.status, m.home_score, m.away_score,
	       ht.team_id, ht.name, ht.attack_strength, ht.defense_strength, ht.updated_at,
	       at.team_id, at.name, at.attack_strength, at.defense_strength, at.updated_at
	FROM matches m
	JOIN teams ht ON m.home_team_id = ht.team_id
	JOIN teams at ON m.away_team_id = at.team_id
`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// GetByID retrieves a fixture with both teams
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id int64) (*models.Fixture, error) {
	if id <= 0 {
		return nil, models.ErrInvalidID
	}

	f, err := scanFixture(r.db.Conn(ctx).QueryRow(ctx, fixtureSelect+` WHERE m.match_id = $1`, id))
	if err != nil {
		return nil, mapError(err, "get match by id")
	}
	return f, nil
}

// GetFixturesWithoutPrediction retrieves fixtures in the given status that have no stored prediction
func (r *PostgresMatchRepository) GetFixturesWithoutPrediction(ctx context.Context, status string, limit int) ([]*models.Fixture, error) {
	query := fixtureSelect + `
		LEFT JOIN predictions p ON m.match_id = p.match_id
		WHERE p.pred_id IS NULL AND m.status = $1
		ORDER BY m.kickoff_time ASC
		LIMIT $2
	`
	return r.list(ctx, "get fixtures without prediction", query, status, limit)
}

// GetUpcoming retrieves fixtures kicking off from now on
func (r *PostgresMatchRepository) GetUpcoming(ctx context.Context, limit int) ([]*models.Fixture, error) {
	query := fixtureSelect + `
		WHERE m.kickoff_time >= NOW()
		ORDER BY m.kickoff_time ASC
		LIMIT $1
	`
	return r.list(ctx, "get upcoming matches", query, limit)
}

// GetRecent retrieves the latest fixtures by kickoff, newest first
func (r *PostgresMatchRepository) GetRecent(ctx context.Context, limit int) ([]*models.Fixture, error) {
	query := fixtureSelect + `
		ORDER BY m.kickoff_time DESC
		LIMIT $1
	`
	return r.list(ctx, "get matches", query, limit)
}

func (r *PostgresMatchRepository) list(ctx context.Context, action, query string, args ...any) ([]*models.Fixture, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, action)
	}
	defer rows.Close()

	var fixtures []*models.Fixture
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, rows.Err()
}

func scanFixture(row pgx.Row) (*models.Fixture, error) {
	f := &models.Fixture{}
	err := row.Scan(
		&f.ID, &f.HomeTeamID, &f.AwayTeamID, &f.KickoffTime, &f.Status, &f.HomeScore, &f.AwayScore,
		&f.Home.ID, &f.Home.Name, &f.Home.AttackStrength, &f.Home.DefenseStrength, &f.Home.UpdatedAt,
		&f.Away.ID, &f.Away.Name, &f.Away.AttackStrength, &f.Away.DefenseStrength, &f.Away.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}
