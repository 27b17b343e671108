package repository

import (
	"context"
	"fmt"

	"github.com/WarenOdhiambo1/lead-magnet/internal/database"
	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

// PostgresOpportunityRepository implements OpportunityRepository for PostgreSQL
type PostgresOpportunityRepository struct {
	db *database.DB
}

// NewPostgresOpportunityRepository creates a new opportunity repository
func NewPostgresOpportunityRepository(db *database.DB) OpportunityRepository {
	return &PostgresOpportunityRepository{db: db}
}

// Insert stores an opportunity. An opportunity already recorded for the same
// match, type and selection is left untouched.
func (r *PostgresOpportunityRepository) Insert(ctx context.Context, opp *models.Opportunity) (bool, error) {
	query := `
		INSERT INTO opportunities (opportunity_id, match_id, opportunity_type, selection, bookmaker,
		                           model_prob, best_odds, fair_odds, edge_percent, expected_value,
		                           profit_margin_percent, status, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT DO NOTHING
	`

	tag, err := r.db.Conn(ctx).Exec(ctx, query,
		opp.ID, opp.MatchID, string(opp.Type), opp.Selection, opp.Bookmaker,
		database.Numeric(opp.ModelProb), database.Numeric(opp.BestOdds), database.Numeric(opp.FairOdds),
		database.Numeric(opp.EdgePercent), database.Numeric(opp.ExpectedValue),
		database.Numeric(opp.ProfitMarginPercent), opp.Status, opp.Timestamp,
	)
	if err != nil {
		return false, mapError(err, "insert opportunity")
	}
	return tag.RowsAffected() == 1, nil
}

// ListOpen retrieves open opportunities, best first
func (r *PostgresOpportunityRepository) ListOpen(ctx context.Context, limit int) ([]*models.OpportunityWithFixture, error) {
	query := `
		SELECT o.opportunity_id, o.match_id, o.opportunity_type, o.selection, COALESCE(o.bookmaker, ''),
		       o.model_prob, o.best_odds, o.fair_odds, o.edge_percent, o.expected_value,
		       o.profit_margin_percent, o.status, o.timestamp,
		       ht.name, at.name, m.kickoff_time,
		       p.prob_home, p.prob_draw, p.prob_away
		FROM opportunities o
		JOIN matches m ON o.match_id = m.match_id
		JOIN teams ht ON m.home_team_id = ht.team_id
		JOIN teams at ON m.away_team_id = at.team_id
		LEFT JOIN predictions p ON m.match_id = p.match_id
		WHERE o.status = $1
		ORDER BY o.profit_margin_percent DESC, o.edge_percent DESC
		LIMIT $2
	`

	rows, err := r.db.Conn(ctx).Query(ctx, query, models.OpportunityStatusOpen, limit)
	if err != nil {
		return nil, mapError(err, "list open opportunities")
	}
	defer rows.Close()

	var out []*models.OpportunityWithFixture
	for rows.Next() {
		o := &models.OpportunityWithFixture{}
		var oppType string
		err := rows.Scan(
			&o.ID, &o.MatchID, &oppType, &o.Selection, &o.Bookmaker,
			&o.ModelProb, &o.BestOdds, &o.FairOdds, &o.EdgePercent, &o.ExpectedValue,
			&o.ProfitMarginPercent, &o.Status, &o.Timestamp,
			&o.HomeTeam, &o.AwayTeam, &o.KickoffTime,
			&o.ProbHome, &o.ProbDraw, &o.ProbAway,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		o.Type = models.OpportunityType(oppType)
		out = append(out, o)
	}
	return out, rows.Err()
}
