package repository

import (
	"context"

	"github.com/WarenOdhiambo1/lead-magnet/internal/models"
)

const formQuery = `
	SELECT COALESCE(SUM(points), 0), COUNT(*) FROM (
		SELECT CASE
			WHEN m.home_team_id = $1 THEN
				CASE WHEN m.home_score > m.away_score THEN 3 WHEN m.home_score = m.away_score THEN 1 ELSE 0 END
			ELSE
				CASE WHEN m.away_score > m.home_score THEN 3 WHEN m.away_score = m.home_score THEN 1 ELSE 0 END
		END AS points
		FROM matches m
		WHERE (m.home_team_id = $1 OR m.away_team_id = $1)
		  AND m.status = $2 AND m.kickoff_time < $3
		  AND m.home_score IS NOT NULL AND m.away_score IS NOT NULL
		ORDER BY m.kickoff_time DESC
		LIMIT $4
	) recent
`

const homeRecordQuery = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE home_score > away_score)
	FROM matches
	WHERE home_team_id = $1 AND status = $2 AND kickoff_time < $3
	  AND home_score IS NOT NULL AND away_score IS NOT NULL
`

const headToHeadQuery = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE (home_team_id = $1 AND home_score > away_score)
	                           OR (away_team_id = $1 AND away_score > home_score))
	FROM matches
	WHERE ((home_team_id = $1 AND away_team_id = $2) OR (home_team_id = $2 AND away_team_id = $1))
	  AND status = $3 AND kickoff_time < $4
	  AND home_score IS NOT NULL AND away_score IS NOT NULL
`

const injuriesQuery = `
	SELECT COUNT(*) FILTER (WHERE team_id = $1), COUNT(*) FILTER (WHERE team_id = $2)
	FROM players
	WHERE is_injured AND team_id IN ($1, $2)
`

// GetFixtureContext reads the finished-match history and injury counts behind
// a fixture's rate adjustments
func (r *PostgresMatchRepository) GetFixtureContext(ctx context.Context, f *models.Fixture, formWindow int) (*models.FixtureContext, error) {
	if f == nil || f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return nil, models.ErrInvalidID
	}

	conn := r.db.Conn(ctx)
	c := &models.FixtureContext{FormWindow: formWindow}

	if err := conn.QueryRow(ctx, formQuery, f.HomeTeamID, models.MatchStatusFinished, f.KickoffTime, formWindow).
		Scan(&c.HomeForm.Points, &c.HomeForm.Played); err != nil {
		return nil, mapError(err, "get home form")
	}
	if err := conn.QueryRow(ctx, formQuery, f.AwayTeamID, models.MatchStatusFinished, f.KickoffTime, formWindow).
		Scan(&c.AwayForm.Points, &c.AwayForm.Played); err != nil {
		return nil, mapError(err, "get away form")
	}
	if err := conn.QueryRow(ctx, homeRecordQuery, f.HomeTeamID, models.MatchStatusFinished, f.KickoffTime).
		Scan(&c.HomePlayed, &c.HomeWon); err != nil {
		return nil, mapError(err, "get home record")
	}
	if err := conn.QueryRow(ctx, headToHeadQuery, f.HomeTeamID, f.AwayTeamID, models.MatchStatusFinished, f.KickoffTime).
		Scan(&c.Meetings, &c.HomeWins); err != nil {
		return nil, mapError(err, "get head to head")
	}
	if err := conn.QueryRow(ctx, injuriesQuery, f.HomeTeamID, f.AwayTeamID).
		Scan(&c.HomeInjured, &c.AwayInjured); err != nil {
		return nil, mapError(err, "get injuries")
	}

	return c, nil
}
