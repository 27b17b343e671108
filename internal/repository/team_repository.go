package repository

import (
	"context"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

const teamColumns = `team_id, name, attack_strength, defense_strength, updated_at`

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// GetByID retrieves a team by ID
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	if id <= 0 {
		return nil, models.ErrInvalidID
	}

	team := &models.Team{}
	err := r.db.Conn(ctx).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE team_id = $1`, id).Scan(
		&team.ID, &team.Name, &team.AttackStrength, &team.DefenseStrength, &team.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "get team by id")
	}
	return team, nil
}

// GetByName retrieves a team by its name
func (r *PostgresTeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	team := &models.Team{}
	err := r.db.Conn(ctx).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE name = $1`, name).Scan(
		&team.ID, &team.Name, &team.AttackStrength, &team.DefenseStrength, &team.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "get team by name")
	}
	return team, nil
}
