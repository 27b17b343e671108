package repository

import (
	"context"
	"fmt"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Upsert stores a prediction, replacing any earlier one for the same match
func (r *PostgresPredictionRepository) Upsert(ctx context.Context, p *models.Prediction) error {
	query := `
		INSERT INTO predictions (match_id, prob_home, prob_draw, prob_away, xg_home, xg_away,
		                         prob_0_0, prob_over_2_5, prob_btts, model_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (match_id) DO UPDATE SET
			prob_home = EXCLUDED.prob_home,
			prob_draw = EXCLUDED.prob_draw,
			prob_away = EXCLUDED.prob_away,
			xg_home = EXCLUDED.xg_home,
			xg_away = EXCLUDED.xg_away,
			prob_0_0 = EXCLUDED.prob_0_0,
			prob_over_2_5 = EXCLUDED.prob_over_2_5,
			prob_btts = EXCLUDED.prob_btts,
			model_version = EXCLUDED.model_version,
			created_at = EXCLUDED.created_at
		RETURNING pred_id
	`

	err := r.db.Conn(ctx).QueryRow(ctx, query,
		p.MatchID,
		database.Numeric(p.ProbHome), database.Numeric(p.ProbDraw), database.Numeric(p.ProbAway),
		database.Numeric(p.XGHome), database.Numeric(p.XGAway),
		database.Numeric(p.Prob00), database.Numeric(p.ProbOver25), database.Numeric(p.ProbBTTS),
		p.ModelVersion, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return mapError(err, "upsert prediction")
	}
	return nil
}

// GetByMatchID retrieves the stored prediction for a match
func (r *PostgresPredictionRepository) GetByMatchID(ctx context.Context, matchID int64) (*models.Prediction, error) {
	query := `
		SELECT pred_id, match_id, prob_home, prob_draw, prob_away, xg_home, xg_away,
		       prob_0_0, prob_over_2_5, prob_btts, model_version, created_at
		FROM predictions
		WHERE match_id = $1
	`

	p := &models.Prediction{}
	err := r.db.Conn(ctx).QueryRow(ctx, query, matchID).Scan(
		&p.ID, &p.MatchID, &p.ProbHome, &p.ProbDraw, &p.ProbAway, &p.XGHome, &p.XGAway,
		&p.Prob00, &p.ProbOver25, &p.ProbBTTS, &p.ModelVersion, &p.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "get prediction by match")
	}
	return p, nil
}

// GetWithOdds retrieves predictions whose match has at least one bookmaker price
func (r *PostgresPredictionRepository) GetWithOdds(ctx context.Context, limit int) ([]*models.PredictionWithFixture, error) {
	query := `
		SELECT p.pred_id, p.match_id, p.prob_home, p.prob_draw, p.prob_away, p.xg_home, p.xg_away,
		       p.prob_0_0, p.prob_over_2_5, p.prob_btts, p.model_version, p.created_at,
		       ht.name, at.name, m.kickoff_time
		FROM matches m
		JOIN teams ht ON m.home_team_id = ht.team_id
		JOIN teams at ON m.away_team_id = at.team_id
		JOIN predictions p ON m.match_id = p.match_id
		WHERE EXISTS (SELECT 1 FROM market_odds mo WHERE mo.match_id = m.match_id)
		ORDER BY m.kickoff_time ASC
		LIMIT $1
	`

	rows, err := r.db.Conn(ctx).Query(ctx, query, limit)
	if err != nil {
		return nil, mapError(err, "get predictions with odds")
	}
	defer rows.Close()

	var out []*models.PredictionWithFixture
	for rows.Next() {
		p := &models.PredictionWithFixture{}
		err := rows.Scan(
			&p.ID, &p.MatchID, &p.ProbHome, &p.ProbDraw, &p.ProbAway, &p.XGHome, &p.XGAway,
			&p.Prob00, &p.ProbOver25, &p.ProbBTTS, &p.ModelVersion, &p.CreatedAt,
			&p.HomeTeam, &p.AwayTeam, &p.KickoffTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
